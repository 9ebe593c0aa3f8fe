package domain

import (
	"encoding/json"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

const (
	// DefaultIconSize is the width and height of an icon that does not declare its own.
	DefaultIconSize = 16

	// MaxAliasDepth bounds the length of an alias chain.
	MaxAliasDepth = 36
)

// Transformations holds the rotation and flips applied to an icon.
type Transformations struct {
	HFlip  bool
	VFlip  bool
	Rotate int
}

// Merge composes parent and child, where child is applied after parent.
// Flips combine with XOR and quarter turns are added modulo 4.
func (p Transformations) Merge(child Transformations) Transformations {
	return Transformations{
		HFlip:  p.HFlip != child.HFlip,
		VFlip:  p.VFlip != child.VFlip,
		Rotate: NormalizeRotate(p.Rotate + child.Rotate),
	}
}

// NormalizeRotate maps any number of quarter turns to the range 0-3.
func NormalizeRotate(r int) int {
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}

// Icon is a fully resolved icon: body, viewBox and transformations.
type Icon struct {
	Body   string
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Transformations
}

// Box returns the icon's viewBox as left, top, width and height.
func (i *Icon) Box() [4]float64 {
	return [4]float64{i.Left, i.Top, i.Width, i.Height}
}

// Dimensions holds optional viewBox overrides.
type Dimensions struct {
	Left   *float64 `json:"left,omitempty"`
	Top    *float64 `json:"top,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Or returns d with every unset field taken from fallback.
func (d Dimensions) Or(fallback Dimensions) Dimensions {
	return Dimensions{
		Left:   cmpOr(d.Left, fallback.Left),
		Top:    cmpOr(d.Top, fallback.Top),
		Width:  cmpOr(d.Width, fallback.Width),
		Height: cmpOr(d.Height, fallback.Height),
	}
}

func cmpOr(v, fallback *float64) *float64 {
	if v != nil {
		return v
	}
	return fallback
}

// Optional holds the optional transformation fields of the icon set format.
type Optional struct {
	Rotate *int  `json:"rotate,omitempty"`
	HFlip  *bool `json:"hFlip,omitempty"`
	VFlip  *bool `json:"vFlip,omitempty"`
}

// Transformations returns the fields as a Transformations value, unset fields being zero.
func (o Optional) Transformations() Transformations {
	var t Transformations
	if o.Rotate != nil {
		t.Rotate = NormalizeRotate(*o.Rotate)
	}
	if o.HFlip != nil {
		t.HFlip = *o.HFlip
	}
	if o.VFlip != nil {
		t.VFlip = *o.VFlip
	}
	return t
}

// IconData is a single icon record as stored in an icon set.
type IconData struct {
	Body string `json:"body"`
	Dimensions
	Optional
}

// UnmarshalJSON decodes an icon record and rejects records without a body.
func (d *IconData) UnmarshalJSON(b []byte) error {
	type plain IconData
	var shadow struct {
		plain
		Body *string `json:"body"`
	}
	if err := json.Unmarshal(b, &shadow); err != nil {
		return err
	}
	if shadow.Body == nil {
		return ErrMissingIconBody
	}
	*d = IconData(shadow.plain)
	d.Body = *shadow.Body
	return nil
}

// AliasData is an icon defined as a transformation of another icon.
type AliasData struct {
	Parent string `json:"parent"`
	Dimensions
	Optional
}

// IconSetData is the bulk icon set format, used both by API responses and local files.
type IconSetData struct {
	Provider     string               `json:"provider,omitempty"`
	Prefix       string               `json:"prefix"`
	Icons        map[string]IconData  `json:"icons"`
	Aliases      map[string]AliasData `json:"aliases,omitempty"`
	NotFound     []string             `json:"not_found,omitempty"`
	LastModified int64                `json:"lastModified,omitempty"`
	Dimensions
}

// Names returns every icon, alias and missing name in the set, sorted.
func (s *IconSetData) Names() []string {
	names := slices.Collect(maps.Keys(s.Icons))
	names = slices.AppendSeq(names, maps.Keys(s.Aliases))
	names = append(names, s.NotFound...)
	slices.Sort(names)
	return slices.Compact(names)
}

// DecodeIconSet decodes an icon set document.
// An icon without a body, or a document without an icons object, is rejected.
func DecodeIconSet(b []byte) (*IconSetData, error) {
	var data IconSetData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, zerr.Wrap(err, ErrInvalidIconSet.Error())
	}
	if data.Icons == nil {
		return nil, zerr.With(ErrInvalidIconSet, "reason", "missing icons object")
	}
	return &data, nil
}
