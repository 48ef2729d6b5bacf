package geometry

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

// Relative tolerance when comparing c² with a² + b².
const rightAngleTolerance = 1e-9

type triangleOutput struct {
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	AngleA    float64 `json:"angle_a"`
	AngleB    float64 `json:"angle_b"`
	AngleC    float64 `json:"angle_c"`
	SideType  string  `json:"side_type"`
	AngleType string  `json:"angle_type"`
}

func (o triangleOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Area", f.Number(o.Area)),
		format.L("Perimeter", f.Number(o.Perimeter)),
		format.L("Angles", f.NumberN(o.AngleA, 2)+"°, "+f.NumberN(o.AngleB, 2)+"°, "+f.NumberN(o.AngleC, 2)+"°"),
		format.L("Type", o.SideType+", "+o.AngleType),
	}
}

// solveTriangle solves a triangle from its three sides. It reports false when
// the sides violate the strict triangle inequality.
func solveTriangle(a, b, c float64) (triangleOutput, bool) {
	if a <= 0 || b <= 0 || c <= 0 || a+b <= c || a+c <= b || b+c <= a {
		return triangleOutput{}, false
	}
	s := (a + b + c) / 2
	area := math.Sqrt(s * (s - a) * (s - b) * (s - c))

	angle := func(opp, x, y float64) float64 {
		cos := (x*x + y*y - opp*opp) / (2 * x * y)
		return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
	}
	out := triangleOutput{
		Area:      area,
		Perimeter: a + b + c,
		AngleA:    angle(a, b, c),
		AngleB:    angle(b, a, c),
	}
	out.AngleC = 180 - out.AngleA - out.AngleB

	switch {
	case a == b && b == c:
		out.SideType = "equilateral"
	case a == b || b == c || a == c:
		out.SideType = "isosceles"
	default:
		out.SideType = "scalene"
	}

	longest := math.Max(a, math.Max(b, c))
	others := a*a + b*b + c*c - longest*longest
	switch diff := longest*longest - others; {
	case math.Abs(diff) <= rightAngleTolerance*longest*longest:
		out.AngleType = "right"
	case diff > 0:
		out.AngleType = "obtuse"
	default:
		out.AngleType = "acute"
	}
	return out, true
}

type triangleInput struct {
	A input.Number `json:"a"`
	B input.Number `json:"b"`
	C input.Number `json:"c"`
}

func triangleFormula() formula.Formula {
	return formula.NewBuilder("triangle").
		WithTitle("Triangle").
		WithDescription("Area, perimeter, angles and classification of a triangle from three sides").
		WithCategory("geometry").
		WithFields(
			formula.Number("a", "Side a").AtLeast(0),
			formula.Number("b", "Side b").AtLeast(0),
			formula.Number("c", "Side c").AtLeast(0),
		).
		Pure().
		WithTags("geometry", "triangle").
		WithHandler(formula.Typed(func(_ context.Context, in triangleInput) (triangleOutput, error) {
			var fe input.FieldErrors
			a, b, c := in.A.Value(), in.B.Value(), in.C.Value()
			fe.Positive("a", a)
			fe.Positive("b", b)
			fe.Positive("c", c)
			if err := fe.Err(); err != nil {
				return triangleOutput{}, err
			}
			out, ok := solveTriangle(a, b, c)
			if !ok {
				return triangleOutput{}, formula.Invalidf("sides %g, %g and %g do not form a triangle", a, b, c)
			}
			return out, nil
		})).
		MustBuild()
}

type pointInput struct {
	X1 input.Number `json:"x1"`
	Y1 input.Number `json:"y1"`
	X2 input.Number `json:"x2"`
	Y2 input.Number `json:"y2"`
}

// Point is a coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type distanceOutput struct {
	Distance float64  `json:"distance"`
	Midpoint Point    `json:"midpoint"`
	Slope    *float64 `json:"slope"`
}

func (o distanceOutput) Summary(f *format.Formatter) []format.Line {
	slope := "undefined"
	if o.Slope != nil {
		slope = f.Number(*o.Slope)
	}
	return []format.Line{
		format.L("Distance", f.Number(o.Distance)),
		format.L("Midpoint", "("+f.Number(o.Midpoint.X)+", "+f.Number(o.Midpoint.Y)+")"),
		format.L("Slope", slope),
	}
}

func distanceFormula() formula.Formula {
	return formula.NewBuilder("distance").
		WithTitle("Distance").
		WithDescription("Distance, midpoint and slope between two points").
		WithCategory("geometry").
		WithFields(
			formula.Number("x1", "First point x"),
			formula.Number("y1", "First point y"),
			formula.Number("x2", "Second point x"),
			formula.Number("y2", "Second point y"),
		).
		Pure().
		WithTags("geometry", "coordinates").
		WithHandler(formula.Typed(func(_ context.Context, in pointInput) (distanceOutput, error) {
			dx := in.X2.Value() - in.X1.Value()
			dy := in.Y2.Value() - in.Y1.Value()
			out := distanceOutput{
				Distance: math.Hypot(dx, dy),
				Midpoint: Point{
					X: (in.X1.Value() + in.X2.Value()) / 2,
					Y: (in.Y1.Value() + in.Y2.Value()) / 2,
				},
			}
			if dx != 0 {
				out.Slope = ptr(dy / dx)
			}
			return out, nil
		})).
		MustBuild()
}

type pythagoreanInput struct {
	A input.Number `json:"a"`
	B input.Number `json:"b"`
	C input.Number `json:"c"`
}

type pythagoreanOutput struct {
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	C      float64 `json:"c"`
	Solved string  `json:"solved"`
}

func (o pythagoreanOutput) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("a", f.Number(o.A)),
		format.L("b", f.Number(o.B)),
		format.L("c (hypotenuse)", f.Number(o.C)),
	}
}

func pythagoreanFormula() formula.Formula {
	return formula.NewBuilder("pythagorean").
		WithTitle("Pythagorean Theorem").
		WithDescription("Missing side of a right triangle; c is the hypotenuse").
		WithCategory("geometry").
		WithFields(
			formula.Number("a", "Leg a").AtLeast(0),
			formula.Number("b", "Leg b").AtLeast(0),
			formula.Number("c", "Hypotenuse c").AtLeast(0),
		).
		Pure().
		WithTags("geometry", "triangle").
		WithHandler(formula.Typed(func(_ context.Context, in pythagoreanInput) (pythagoreanOutput, error) {
			a, b, c := in.A.Value(), in.B.Value(), in.C.Value()
			out := pythagoreanOutput{A: a, B: b, C: c}
			switch {
			case a > 0 && b > 0:
				out.C, out.Solved = math.Hypot(a, b), "c"
			case a > 0 && c > 0:
				if c <= a {
					return out, formula.Invalidf("hypotenuse must be longer than leg a")
				}
				out.B, out.Solved = math.Sqrt(c*c-a*a), "b"
			case b > 0 && c > 0:
				if c <= b {
					return out, formula.Invalidf("hypotenuse must be longer than leg b")
				}
				out.A, out.Solved = math.Sqrt(c*c-b*b), "a"
			default:
				return out, formula.Invalidf("need two positive sides")
			}
			return out, nil
		})).
		MustBuild()
}
