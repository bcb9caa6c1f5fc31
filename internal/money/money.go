// Package money converts between kobo (minor units) and naira (major units).
//
// It is the only place in the module that scales amounts by 100. Everything
// past the normalizer works in naira.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Symbol is prefixed to every formatted amount.
const Symbol = "₦"

var minorPerMajor = decimal.NewFromInt(100)

// ToMajor converts a kobo amount to naira rounded to 2 decimal places.
// An invalid (null or missing) amount converts to zero.
func ToMajor(minor decimal.NullDecimal) decimal.Decimal {
	if !minor.Valid {
		return decimal.Zero
	}
	return minor.Decimal.Div(minorPerMajor).Round(2)
}

// MinorToMajor is ToMajor for a known integer amount.
func MinorToMajor(minor int64) decimal.Decimal {
	return ToMajor(decimal.NewNullDecimal(decimal.NewFromInt(minor)))
}

// ToMinor converts naira to kobo, rounding half away from zero to the
// nearest whole kobo.
func ToMinor(major decimal.Decimal) int64 {
	return major.Mul(minorPerMajor).Round(0).IntPart()
}

// Format renders a naira amount for display, e.g. "₦1,234.50" or "-₦20.00".
func Format(major decimal.Decimal) string {
	major = major.Round(2)
	sign := ""
	if major.IsNegative() {
		sign = "-"
		major = major.Abs()
	}
	f, _ := major.Float64()
	return sign + Symbol + humanize.FormatFloat("#,###.##", f)
}
