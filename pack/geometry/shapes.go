package geometry

import (
	"context"
	"math"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
)

type dimensions struct {
	Shape  string       `json:"shape"`
	Side   input.Number `json:"side"`
	Length input.Number `json:"length"`
	Width  input.Number `json:"width"`
	Height input.Number `json:"height"`
	Radius input.Number `json:"radius"`
	Base   input.Number `json:"base"`
	Top    input.Number `json:"top"`
	A      input.Number `json:"a"`
	B      input.Number `json:"b"`
	C      input.Number `json:"c"`
	Unit   string       `json:"unit"`
}

// need records a violation for every named dimension that is not positive
// and returns their values in order.
func (d dimensions) need(fe *input.FieldErrors, names ...string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		var n input.Number
		switch name {
		case "side":
			n = d.Side
		case "length":
			n = d.Length
		case "width":
			n = d.Width
		case "height":
			n = d.Height
		case "radius":
			n = d.Radius
		case "base":
			n = d.Base
		case "top":
			n = d.Top
		case "a":
			n = d.A
		case "b":
			n = d.B
		case "c":
			n = d.C
		}
		fe.Positive(name, n.Value())
		out[i] = n.Value()
	}
	return out
}

func dimensionFields(shapes []string) []formula.Field {
	return []formula.Field{
		formula.Enum("shape", "Shape", shapes...).Require(),
		formula.Number("side", "Side length").AtLeast(0),
		formula.Number("length", "Length").AtLeast(0),
		formula.Number("width", "Width").AtLeast(0),
		formula.Number("height", "Height").AtLeast(0),
		formula.Number("radius", "Radius").AtLeast(0),
		formula.Number("base", "Base, or the bottom side of a trapezoid").AtLeast(0),
		formula.Number("top", "Top side of a trapezoid").AtLeast(0),
		formula.Number("a", "Side a, or the semi-major axis of an ellipse").AtLeast(0),
		formula.Number("b", "Side b, or the semi-minor axis of an ellipse").AtLeast(0),
		formula.Number("c", "Side c").AtLeast(0),
		formula.Text("unit", "Length unit label for the summary"),
	}
}

var areaShapes = []string{"square", "rectangle", "circle", "triangle", "trapezoid", "ellipse", "parallelogram"}

type areaOutput struct {
	Shape     string   `json:"shape"`
	Area      float64  `json:"area"`
	Perimeter *float64 `json:"perimeter"`
	Unit      string   `json:"unit,omitempty"`
}

func (o areaOutput) Summary(f *format.Formatter) []format.Line {
	areaUnit := ""
	if o.Unit != "" {
		areaUnit = o.Unit + "²"
	}
	lines := []format.Line{format.L("Area", f.Unit(o.Area, areaUnit))}
	if o.Perimeter != nil {
		lines = append(lines, format.L("Perimeter", f.Unit(*o.Perimeter, o.Unit)))
	}
	return lines
}

func ptr(v float64) *float64 {
	return &v
}

// ellipsePerimeter uses Ramanujan's second approximation.
func ellipsePerimeter(a, b float64) float64 {
	h := (a - b) * (a - b) / ((a + b) * (a + b))
	return math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
}

func areaFormula() formula.Formula {
	return formula.NewBuilder("area").
		WithTitle("Area").
		WithDescription("Area and perimeter of common plane shapes").
		WithCategory("geometry").
		WithFields(dimensionFields(areaShapes)...).
		Pure().
		WithTags("geometry", "area").
		WithHandler(formula.Typed(func(_ context.Context, in dimensions) (areaOutput, error) {
			var fe input.FieldErrors
			out := areaOutput{Shape: in.Shape, Unit: in.Unit}
			switch in.Shape {
			case "square":
				d := in.need(&fe, "side")
				out.Area, out.Perimeter = d[0]*d[0], ptr(4*d[0])
			case "rectangle":
				d := in.need(&fe, "length", "width")
				out.Area, out.Perimeter = d[0]*d[1], ptr(2*(d[0]+d[1]))
			case "circle":
				d := in.need(&fe, "radius")
				out.Area, out.Perimeter = math.Pi*d[0]*d[0], ptr(2*math.Pi*d[0])
			case "triangle":
				d := in.need(&fe, "base", "height")
				out.Area = d[0] * d[1] / 2
			case "trapezoid":
				d := in.need(&fe, "base", "top", "height")
				out.Area = (d[0] + d[1]) / 2 * d[2]
			case "ellipse":
				d := in.need(&fe, "a", "b")
				out.Area, out.Perimeter = math.Pi*d[0]*d[1], ptr(ellipsePerimeter(d[0], d[1]))
			case "parallelogram":
				d := in.need(&fe, "base", "height")
				out.Area = d[0] * d[1]
			default:
				fe.OneOf("shape", in.Shape, areaShapes...)
			}
			if err := fe.Err(); err != nil {
				return areaOutput{}, err
			}
			return out, nil
		})).
		MustBuild()
}

var volumeShapes = []string{"cube", "box", "sphere", "cylinder", "cone", "pyramid"}

type volumeOutput struct {
	Shape       string  `json:"shape"`
	Volume      float64 `json:"volume"`
	SurfaceArea float64 `json:"surface_area"`
	Unit        string  `json:"unit,omitempty"`
}

func (o volumeOutput) Summary(f *format.Formatter) []format.Line {
	vu, au := "", ""
	if o.Unit != "" {
		vu, au = o.Unit+"³", o.Unit+"²"
	}
	return []format.Line{
		format.L("Volume", f.Unit(o.Volume, vu)),
		format.L("Surface area", f.Unit(o.SurfaceArea, au)),
	}
}

func volumeFormula() formula.Formula {
	return formula.NewBuilder("volume").
		WithTitle("Volume").
		WithDescription("Volume and surface area of common solids").
		WithCategory("geometry").
		WithFields(dimensionFields(volumeShapes)...).
		Pure().
		WithTags("geometry", "volume").
		WithHandler(formula.Typed(func(_ context.Context, in dimensions) (volumeOutput, error) {
			var fe input.FieldErrors
			out := volumeOutput{Shape: in.Shape, Unit: in.Unit}
			switch in.Shape {
			case "cube":
				d := in.need(&fe, "side")
				s := d[0]
				out.Volume, out.SurfaceArea = s*s*s, 6*s*s
			case "box":
				d := in.need(&fe, "length", "width", "height")
				l, w, h := d[0], d[1], d[2]
				out.Volume, out.SurfaceArea = l*w*h, 2*(l*w+l*h+w*h)
			case "sphere":
				d := in.need(&fe, "radius")
				r := d[0]
				out.Volume, out.SurfaceArea = 4.0/3.0*math.Pi*r*r*r, 4*math.Pi*r*r
			case "cylinder":
				d := in.need(&fe, "radius", "height")
				r, h := d[0], d[1]
				out.Volume, out.SurfaceArea = math.Pi*r*r*h, 2*math.Pi*r*(r+h)
			case "cone":
				d := in.need(&fe, "radius", "height")
				r, h := d[0], d[1]
				out.Volume = math.Pi * r * r * h / 3
				out.SurfaceArea = math.Pi * r * (r + math.Hypot(r, h))
			case "pyramid":
				d := in.need(&fe, "length", "width", "height")
				l, w, h := d[0], d[1], d[2]
				out.Volume = l * w * h / 3
				out.SurfaceArea = l*w + l*math.Hypot(w/2, h) + w*math.Hypot(l/2, h)
			default:
				fe.OneOf("shape", in.Shape, volumeShapes...)
			}
			if err := fe.Err(); err != nil {
				return volumeOutput{}, err
			}
			return out, nil
		})).
		MustBuild()
}
