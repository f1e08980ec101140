package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount in rupees with Indian digit grouping,
// e.g. 12345678.5 -> "₹1,23,45,678.50".
func FormatCurrency(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := groupIndian(whole)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(grouped)
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}

// groupIndian inserts commas in the lakh/crore pattern: the last three
// digits form one group, everything above groups in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// FormatPercentage renders a percentage value with two decimals and a
// trailing percent sign.
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatOptionalPercentage renders a nullable percentage, with a dash
// placeholder when the value is not available.
func FormatOptionalPercentage(pct *decimal.Decimal) string {
	if pct == nil {
		return "n/a"
	}
	return FormatPercentage(*pct)
}
