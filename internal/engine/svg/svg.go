// Package svg turns resolved icons into transformed, sized SVG markup.
package svg

import (
	"strconv"
	"strings"

	"go.trai.ch/ikon/internal/core/domain"
)

const defaultHeight = "1em"

// Customisations are render-time overrides applied on top of an icon.
type Customisations struct {
	Width  domain.Size
	Height domain.Size
	domain.Transformations
	// Inline adds a vertical-align style so the icon sits on the text baseline.
	Inline bool
}

// Attributes are the attributes of the root svg element.
// An empty Width or Height means the attribute is omitted.
type Attributes struct {
	Width   string
	Height  string
	ViewBox string
}

// Result is a rendered icon.
type Result struct {
	Attributes Attributes
	// ViewBox holds left, top, width and height.
	ViewBox [4]float64
	Body    string
	Inline  bool
}

type box struct {
	left, top, width, height float64
}

// Build renders icon with the given customisations.
//
// The icon's own flips and rotation are applied first, then the customisation's.
// Each layer wraps the body in its own transform group.
func Build(icon *domain.Icon, c Customisations) *Result {
	b := box{left: icon.Left, top: icon.Top, width: icon.Width, height: icon.Height}
	body := icon.Body

	for _, t := range []domain.Transformations{icon.Transformations, c.Transformations} {
		var transforms []string
		rotation := t.Rotate

		switch {
		case t.HFlip && t.VFlip:
			rotation += 2
		case t.HFlip:
			transforms = append(transforms,
				"translate("+formatNumber(b.width+b.left)+" "+formatNumber(0-b.top)+")",
				"scale(-1 1)",
			)
			b.left, b.top = 0, 0
		case t.VFlip:
			transforms = append(transforms,
				"translate("+formatNumber(0-b.left)+" "+formatNumber(b.height+b.top)+")",
				"scale(1 -1)",
			)
			b.left, b.top = 0, 0
		}

		rotation = domain.NormalizeRotate(rotation)
		switch rotation {
		case 1:
			center := formatNumber(b.height/2 + b.top)
			transforms = append([]string{"rotate(90 " + center + " " + center + ")"}, transforms...)
		case 2:
			transforms = append([]string{
				"rotate(180 " + formatNumber(b.width/2+b.left) + " " + formatNumber(b.height/2+b.top) + ")",
			}, transforms...)
		case 3:
			center := formatNumber(b.width/2 + b.left)
			transforms = append([]string{"rotate(-90 " + center + " " + center + ")"}, transforms...)
		}

		if rotation%2 == 1 {
			b.left, b.top = b.top, b.left
			b.width, b.height = b.height, b.width
		}

		if len(transforms) > 0 {
			body = WrapContent(body, `<g transform="`+strings.Join(transforms, " ")+`">`, "</g>")
		}
	}

	width, height := resolveSize(c.Width, c.Height, b)

	attrs := Attributes{
		ViewBox: formatNumber(b.left) + " " + formatNumber(b.top) + " " + formatNumber(b.width) + " " + formatNumber(b.height),
	}
	if !isUnset(width) {
		attrs.Width = width
	}
	if !isUnset(height) {
		attrs.Height = height
	}

	return &Result{
		Attributes: attrs,
		ViewBox:    [4]float64{b.left, b.top, b.width, b.height},
		Body:       body,
		Inline:     c.Inline,
	}
}

func resolveSize(w, h domain.Size, b box) (width, height string) {
	if w.Kind == domain.SizeDefault {
		switch h.Kind {
		case domain.SizeDefault:
			height = defaultHeight
		case domain.SizeAuto:
			height = formatNumber(b.height)
		default:
			height = sizeString(h)
		}
		return CalculateSize(height, b.width/b.height, 0), height
	}

	if w.Kind == domain.SizeAuto {
		width = formatNumber(b.width)
	} else {
		width = sizeString(w)
	}

	switch h.Kind {
	case domain.SizeDefault:
		height = CalculateSize(width, b.height/b.width, 0)
	case domain.SizeAuto:
		height = formatNumber(b.height)
	default:
		height = sizeString(h)
	}
	return width, height
}

func sizeString(s domain.Size) string {
	if s.Kind == domain.SizeUnset {
		return "unset"
	}
	return s.Value
}

func isUnset(v string) bool {
	return v == "unset" || v == "undefined" || v == "none"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
