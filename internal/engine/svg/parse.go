package svg

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/ikon/internal/core/domain"
)

var (
	leadingNumber = regexp.MustCompile(`^-?[0-9.]*`)
	flipSeparator = regexp.MustCompile(`[\s,]+`)
)

// ParseRotate converts "90deg", "25%" or a bare quarter-turn count into 0-3.
// Angles that are not a whole number of quarter turns yield 0.
func ParseRotate(value string) int {
	value = strings.TrimSpace(value)
	units := leadingNumber.ReplaceAllString(value, "")

	if units == "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			f, ferr := strconv.ParseFloat(value, 64)
			if ferr != nil {
				return 0
			}
			n = int(f)
		}
		return domain.NormalizeRotate(n)
	}
	if units == value {
		return 0
	}

	var split float64
	switch units {
	case "%":
		split = 25
	case "deg":
		split = 90
	default:
		return 0
	}

	num, err := strconv.ParseFloat(strings.TrimSuffix(value, units), 64)
	if err != nil {
		return 0
	}
	num /= split
	if num != math.Trunc(num) {
		return 0
	}
	return domain.NormalizeRotate(int(num))
}

// ParseFlip parses a list such as "horizontal,vertical" or "h v".
func ParseFlip(value string) (hFlip, vFlip bool) {
	for _, part := range flipSeparator.Split(strings.ToLower(value), -1) {
		switch part {
		case "horizontal", "h":
			hFlip = true
		case "vertical", "v":
			vFlip = true
		case "both":
			hFlip, vFlip = true, true
		}
	}
	return hFlip, vFlip
}

// ParseCustomisations builds customisations from string inputs, such as query parameters or flags.
func ParseCustomisations(width, height, flip, rotate string, inline bool) Customisations {
	c := Customisations{
		Width:  domain.ParseSize(width),
		Height: domain.ParseSize(height),
		Inline: inline,
	}
	c.HFlip, c.VFlip = ParseFlip(flip)
	if rotate != "" {
		c.Rotate = ParseRotate(rotate)
	}
	return c
}
