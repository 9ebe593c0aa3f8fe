package svg

import (
	"math"
	"regexp"
	"strconv"
)

// DefaultPrecision rounds scaled sizes up to 1/100.
const DefaultPrecision = 100

var numberToken = regexp.MustCompile(`-?[0-9.]*[0-9]+[0-9.]*`)

// CalculateSize scales every number embedded in size by ratio, rounding up to
// 1/precision. Text around the numbers, such as units, is kept.
// A precision of 0 uses DefaultPrecision. A ratio of 1 returns size unchanged.
func CalculateSize(size string, ratio float64, precision int) string {
	if ratio == 1 {
		return size
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}
	p := float64(precision)

	return numberToken.ReplaceAllStringFunc(size, func(token string) string {
		n, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return token
		}
		return formatNumber(math.Ceil(n*ratio*p) / p)
	})
}
