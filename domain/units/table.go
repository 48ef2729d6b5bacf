package units

type kindTable struct {
	canonical string
	units     []Unit
}

func u(symbol, name string, factor float64, aliases ...string) Unit {
	return Unit{Symbol: symbol, Name: name, Factor: factor, Aliases: aliases}
}

var table = map[Kind]kindTable{
	Length: {canonical: "m", units: []Unit{
		u("mm", "millimeter", 0.001, "millimeters", "millimetre"),
		u("cm", "centimeter", 0.01, "centimeters", "centimetre"),
		u("m", "meter", 1, "meters", "metre"),
		u("km", "kilometer", 1000, "kilometers", "kilometre"),
		u("in", "inch", CentimetersPerInch/100, "inches"),
		u("ft", "foot", 0.3048, "feet"),
		u("yd", "yard", 0.9144, "yards"),
		u("mi", "mile", 1609.344, "miles"),
		u("nmi", "nautical mile", 1852, "nautical"),
	}},
	Mass: {canonical: "kg", units: []Unit{
		u("mg", "milligram", 1e-6, "milligrams"),
		u("g", "gram", 0.001, "grams"),
		u("kg", "kilogram", 1, "kilograms", "kilo"),
		u("t", "tonne", 1000, "tonnes", "metric ton"),
		u("oz", "ounce", KilogramsPerPound/16, "ounces"),
		u("lb", "pound", KilogramsPerPound, "lbs", "pounds"),
		u("st", "stone", KilogramsPerPound*14, "stones"),
	}},
	Volume: {canonical: "l", units: []Unit{
		u("ml", "milliliter", 0.001, "millilitre"),
		u("l", "liter", 1, "litre", "liters"),
		u("m3", "cubic meter", 1000),
		u("tsp", "teaspoon", 0.00492892159375),
		u("tbsp", "tablespoon", 0.01478676478125),
		u("floz", "fluid ounce", 0.0295735295625, "fl oz"),
		u("cup", "cup", 0.2365882365, "cups"),
		u("pt", "pint", 0.473176473, "pints"),
		u("qt", "quart", 0.946352946, "quarts"),
		u("gal", "gallon", 3.785411784, "gallons"),
	}},
	Area: {canonical: "m2", units: []Unit{
		u("mm2", "square millimeter", 1e-6),
		u("cm2", "square centimeter", 1e-4),
		u("m2", "square meter", 1),
		u("ha", "hectare", 1e4, "hectares"),
		u("km2", "square kilometer", 1e6),
		u("in2", "square inch", 0.00064516),
		u("ft2", "square foot", 0.09290304, "sqft"),
		u("yd2", "square yard", 0.83612736),
		u("ac", "acre", 4046.8564224, "acres"),
		u("mi2", "square mile", 2589988.110336),
	}},
	Speed: {canonical: "m/s", units: []Unit{
		u("m/s", "meters per second", 1, "mps"),
		u("km/h", "kilometers per hour", 1000.0/3600.0, "kph", "kmh"),
		u("mph", "miles per hour", 1609.344/3600.0),
		u("kn", "knot", 1852.0/3600.0, "knots", "kt"),
		u("ft/s", "feet per second", 0.3048, "fps"),
	}},
	Temperature: {canonical: "K", units: []Unit{
		{Symbol: "C", Name: "celsius", Factor: 1, Offset: 273.15, Aliases: []string{"°C", "degc"}},
		{Symbol: "F", Name: "fahrenheit", Factor: 5.0 / 9.0, Offset: 273.15 - 32*5.0/9.0, Aliases: []string{"°F", "degf"}},
		{Symbol: "K", Name: "kelvin", Factor: 1},
	}},
	Pressure: {canonical: "Pa", units: []Unit{
		u("Pa", "pascal", 1),
		u("kPa", "kilopascal", 1000),
		u("bar", "bar", 1e5),
		u("psi", "pound per square inch", 6894.757293168),
		u("atm", "atmosphere", 101325),
		u("mmHg", "millimeter of mercury", 133.322387415, "torr"),
	}},
	Energy: {canonical: "J", units: []Unit{
		u("J", "joule", 1, "joules"),
		u("kJ", "kilojoule", 1000),
		u("cal", "calorie", 4.184),
		u("kcal", "kilocalorie", 4184),
		u("Wh", "watt hour", 3600),
		u("kWh", "kilowatt hour", 3.6e6),
		u("BTU", "british thermal unit", 1055.05585262),
	}},
	Power: {canonical: "W", units: []Unit{
		u("W", "watt", 1, "watts"),
		u("kW", "kilowatt", 1000, "kilowatts"),
		u("hp", "horsepower", WattsPerHorsepower, "bhp"),
		u("PS", "metric horsepower", WattsPerMetricHP, "cv"),
	}},
	Torque: {canonical: "Nm", units: []Unit{
		u("Nm", "newton meter", 1, "N·m"),
		u("lbft", "pound-foot", NewtonMetersPerLbf, "lb-ft", "ftlb"),
		u("kgm", "kilogram meter", 9.80665, "kgf·m"),
	}},
	Data: {canonical: "B", units: []Unit{
		u("b", "bit", 0.125, "bits"),
		u("B", "byte", 1, "bytes"),
		u("KB", "kilobyte", 1e3),
		u("MB", "megabyte", 1e6),
		u("GB", "gigabyte", 1e9),
		u("TB", "terabyte", 1e12),
		u("KiB", "kibibyte", 1024),
		u("MiB", "mebibyte", 1 << 20),
		u("GiB", "gibibyte", 1 << 30),
		u("TiB", "tebibyte", 1 << 40),
	}},
	Time: {canonical: "s", units: []Unit{
		u("ms", "millisecond", 0.001),
		u("s", "second", 1, "sec", "seconds"),
		u("min", "minute", 60, "minutes"),
		u("h", "hour", 3600, "hr", "hours"),
		u("d", "day", 86400, "days"),
		u("wk", "week", 604800, "weeks"),
	}},
	Angle: {canonical: "rad", units: []Unit{
		u("rad", "radian", 1, "radians"),
		u("deg", "degree", 0.017453292519943295, "°", "degrees"),
		u("grad", "gradian", 0.015707963267948967, "gon"),
		u("turn", "turn", 6.283185307179586, "rev", "revolution"),
	}},
}
