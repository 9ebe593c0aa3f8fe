package svg_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/engine/svg"
)

const square = `<path d="M0 0h24v24H0z"/>`

func TestBuild_Golden(t *testing.T) {
	tests := []struct {
		name string
		icon *domain.Icon
		cust svg.Customisations
	}{
		{
			name: "rotate_quarter",
			icon: &domain.Icon{
				Body:            `<path d="M0 0h20v10H0z"/>`,
				Width:           20,
				Height:          10,
				Transformations: domain.Transformations{Rotate: 1},
			},
		},
		{
			name: "hflip_defs_inline",
			icon: &domain.Icon{
				Body:   `<defs><linearGradient id="g"/></defs><path fill="url(#g)" d="M0 0h24v24H0z"/>`,
				Width:  24,
				Height: 24,
			},
			cust: svg.Customisations{
				Width:           domain.SizeOf("24"),
				Transformations: domain.Transformations{HFlip: true},
				Inline:          true,
			},
		},
		{
			name: "vflip_then_half_turn",
			icon: &domain.Icon{
				Body:            `<path d="M2 4h20v10H2z"/>`,
				Left:            2,
				Top:             4,
				Width:           20,
				Height:          10,
				Transformations: domain.Transformations{VFlip: true},
			},
			cust: svg.Customisations{
				Height:          domain.Size{Kind: domain.SizeAuto},
				Transformations: domain.Transformations{Rotate: 2},
			},
		},
		{
			name: "unset_size",
			icon: &domain.Icon{Body: square, Width: 24, Height: 24},
			cust: svg.Customisations{Width: domain.Size{Kind: domain.SizeUnset}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			out := svg.ToHTML(svg.Build(tt.icon, tt.cust))
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestBuild_QuarterTurnSwapsBox(t *testing.T) {
	icon := &domain.Icon{Body: square, Width: 20, Height: 10, Transformations: domain.Transformations{Rotate: 1}}

	r := svg.Build(icon, svg.Customisations{})

	assert.Equal(t, [4]float64{0, 0, 10, 20}, r.ViewBox)
	assert.Equal(t, "0 0 10 20", r.Attributes.ViewBox)
	assert.Contains(t, r.Body, `rotate(90 5 5)`)
}

func TestBuild_BothFlipsAreHalfTurn(t *testing.T) {
	icon := &domain.Icon{Body: square, Width: 24, Height: 16}

	r := svg.Build(icon, svg.Customisations{Transformations: domain.Transformations{HFlip: true, VFlip: true}})

	assert.Equal(t, `<g transform="rotate(180 12 8)">`+square+`</g>`, r.Body)
	assert.Equal(t, [4]float64{0, 0, 24, 16}, r.ViewBox)
}

func TestBuild_ThreeQuarterTurnWithOffset(t *testing.T) {
	icon := &domain.Icon{Body: square, Left: 1, Top: 3, Width: 20, Height: 10}

	r := svg.Build(icon, svg.Customisations{Transformations: domain.Transformations{Rotate: 3}})

	assert.Equal(t, `<g transform="rotate(-90 11 11)">`+square+`</g>`, r.Body)
	assert.Equal(t, [4]float64{3, 1, 10, 20}, r.ViewBox)
}

func TestBuild_FlipBeforeRotateWithinLayer(t *testing.T) {
	icon := &domain.Icon{Body: square, Width: 24, Height: 24}

	r := svg.Build(icon, svg.Customisations{Transformations: domain.Transformations{HFlip: true, Rotate: 1}})

	assert.Equal(t, `<g transform="rotate(90 12 12) translate(24 0) scale(-1 1)">`+square+`</g>`, r.Body)
}

func TestBuild_Sizes(t *testing.T) {
	icon := &domain.Icon{Body: square, Width: 24, Height: 16}

	tests := []struct {
		name   string
		width  domain.Size
		height domain.Size
		wantW  string
		wantH  string
	}{
		{name: "defaults", wantW: "1.5em", wantH: "1em"},
		{name: "height only", height: domain.SizeOf("32"), wantW: "48", wantH: "32"},
		{name: "width only", width: domain.SizeOf("12px"), wantW: "12px", wantH: "8px"},
		{name: "both", width: domain.SizeOf("10"), height: domain.SizeOf("10"), wantW: "10", wantH: "10"},
		{name: "auto width", width: domain.Size{Kind: domain.SizeAuto}, wantW: "24", wantH: "16"},
		{name: "auto height", height: domain.Size{Kind: domain.SizeAuto}, wantW: "24", wantH: "16"},
		{name: "unset height", width: domain.SizeOf("2em"), height: domain.Size{Kind: domain.SizeUnset}, wantW: "2em", wantH: ""},
		{name: "unset width derives unset height", width: domain.Size{Kind: domain.SizeUnset}, wantW: "", wantH: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := svg.Build(icon, svg.Customisations{Width: tt.width, Height: tt.height})
			assert.Equal(t, tt.wantW, r.Attributes.Width)
			assert.Equal(t, tt.wantH, r.Attributes.Height)
		})
	}
}

func TestCalculateSize(t *testing.T) {
	assert.Equal(t, "24px", svg.CalculateSize("24px", 1, 0))
	assert.Equal(t, "36", svg.CalculateSize("24", 1.5, 0))
	assert.Equal(t, "0.34em", svg.CalculateSize("1em", 1.0/3, 0))
	assert.Equal(t, "0.4em", svg.CalculateSize("1em", 1.0/3, 10))
	assert.Equal(t, "calc(2px + 4em)", svg.CalculateSize("calc(1px + 2em)", 2, 0))
	assert.Equal(t, "auto", svg.CalculateSize("auto", 2, 0))
	assert.Equal(t, "-10", svg.CalculateSize("-5", 2, 0))
}

func TestCalculateSize_Monotonic(t *testing.T) {
	for _, ratio := range []float64{0.25, 1.0 / 3, 0.75, 1.5, 2} {
		prev := -1.0
		for n := range 200 {
			v := float64(n) / 4
			got := svg.CalculateSize(formatFloat(v), ratio, 0)
			f := parseFloat(t, got)
			assert.GreaterOrEqual(t, f, prev)
			prev = f
		}
	}
}

func TestSplitDefs(t *testing.T) {
	defs, rest := svg.SplitDefs(`<defs><a/></defs><g/><defs/><defs id="x"> <b/> </defs><c/>`)
	assert.Equal(t, `<a/><b/>`, defs)
	assert.Equal(t, `<g/><c/>`, rest)

	assert.Equal(t, `<g>x</g>`, svg.WrapContent(`x`, `<g>`, `</g>`))
	assert.Equal(t, `<defs><a/></defs><g><p/></g>`, svg.WrapContent(`<defs><a/></defs><p/>`, `<g>`, `</g>`))
}

func TestToHTML_Xlink(t *testing.T) {
	out := svg.ToHTML(&svg.Result{Body: `<use xlink:href="#a"/>`, Attributes: svg.Attributes{ViewBox: "0 0 1 1"}})
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 1 1"><use xlink:href="#a"/></svg>`, out)
}
