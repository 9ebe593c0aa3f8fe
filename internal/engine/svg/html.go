package svg

import "strings"

const inlineStyle = "vertical-align: -0.125em"

// ToHTML renders r as a standalone svg element.
func ToHTML(r *Result) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if strings.Contains(r.Body, "xlink:") {
		b.WriteString(` xmlns:xlink="http://www.w3.org/1999/xlink"`)
	}
	writeAttr(&b, "width", r.Attributes.Width)
	writeAttr(&b, "height", r.Attributes.Height)
	writeAttr(&b, "viewBox", r.Attributes.ViewBox)
	if r.Inline {
		writeAttr(&b, "style", inlineStyle)
	}
	b.WriteString(">")
	b.WriteString(r.Body)
	b.WriteString("</svg>")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteString(`"`)
}
