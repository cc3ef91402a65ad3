package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// thousands matches an amount grouped only by dots: "1.500", "-2.345.678".
var thousands = regexp.MustCompile(`^[-+]?\d{1,3}(\.\d{3})+$`)

// ParseAmount reads a Brazilian formatted amount: "1.234,56", "-588,74",
// "R$ 10,00", "1.500". Without a comma, dots followed by groups of exactly
// three digits are thousands separators; any other dot is the decimal point.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	clean = strings.ReplaceAll(clean, " ", "")

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case thousands.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	return decimal.NewFromString(clean)
}
