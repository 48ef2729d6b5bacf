package format

import "strings"

// Line is one labelled value of a result summary.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// L builds a Line.
func L(label, value string) Line {
	return Line{Label: label, Value: value}
}

// Text renders the clipboard form of a summary: the title, then one
// "Label: Value" line per entry.
func Text(title string, lines []Line) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	for _, l := range lines {
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
