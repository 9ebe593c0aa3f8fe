package domain

import "strings"

// SizeKind tells how a requested dimension should be resolved.
type SizeKind uint8

const (
	// SizeDefault means no value was requested; the dimension is derived.
	SizeDefault SizeKind = iota
	// SizeAuto means the dimension equals the icon's viewBox dimension.
	SizeAuto
	// SizeUnset means the attribute is omitted from the output.
	SizeUnset
	// SizeValue means Value is used, e.g. "24", "1.5em" or "24px".
	SizeValue
)

// Size is a requested width or height.
type Size struct {
	Kind  SizeKind
	Value string
}

// SizeOf returns a Size holding an explicit value.
func SizeOf(v string) Size {
	return Size{Kind: SizeValue, Value: v}
}

// ParseSize maps user input to a Size.
func ParseSize(s string) Size {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "":
		return Size{}
	case "auto":
		return Size{Kind: SizeAuto}
	case "unset", "none", "undefined":
		return Size{Kind: SizeUnset}
	default:
		return SizeOf(strings.TrimSpace(s))
	}
}
