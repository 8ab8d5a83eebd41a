package report

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders price with comma-grouped integer digits and exactly
// the requested number of decimals, e.g. 97123.5 → "97,123.50".
func FormatPrice(price float64, decimals int) string {
	s := strconv.FormatFloat(price, 'f', decimals, 64)

	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	if n, err := strconv.ParseFloat(intPart, 64); err == nil {
		intPart = humanize.Commaf(n)
	}
	if neg {
		intPart = "-" + intPart
	}
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}
