// Package format renders figures as display strings. Every function here is
// total: non-finite input renders as constants.NotApplicable.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var million = decimal.NewFromInt(1_000_000)

// Naira returns a currency string with the Naira sign, thousands separators
// and two decimals (e.g., "-₦1,234.56").
func Naira(amount float64) string {
	return nairaFixed(amount, 2)
}

// NairaWhole returns a currency string rounded to whole Naira (e.g., "₦1,200").
func NairaWhole(amount float64) string {
	return nairaFixed(amount, 0)
}

// Millions renders amount in millions of Naira with the given number of
// decimals (e.g., "₦15.00M").
func Millions(amount float64, places int) string {
	if !mathutil.IsFinite(amount) {
		return constants.NotApplicable
	}
	value := decimal.NewFromFloat(amount).Div(million).Round(int32(places))
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}
	return sign + constants.CurrencySymbol + group(value.StringFixed(int32(places))) + "M"
}

// Number renders a plain number with thousands separators and the given
// number of decimals.
func Number(value float64, places int) string {
	if !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	d := decimal.NewFromFloat(value).Round(int32(places))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + group(d.StringFixed(int32(places)))
}

// Percent renders a percentage (e.g., "76.7%").
func Percent(value float64, places int) string {
	if !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	return decimal.NewFromFloat(value).StringFixed(int32(places)) + "%"
}

// SignedPercent renders a percentage with a leading plus for positive values.
func SignedPercent(value float64, places int) string {
	rendered := Percent(value, places)
	if value > 0 && rendered != constants.NotApplicable {
		return "+" + rendered
	}
	return rendered
}

// Kilograms renders a mass rounded up to the whole kg (e.g., "2,917kg").
func Kilograms(value float64) string {
	if !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	d := decimal.NewFromFloat(value).Ceil()
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + group(d.StringFixed(0)) + "kg"
}

// Factor renders a multiplier (e.g., "1.00x").
func Factor(value float64) string {
	if !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	return decimal.NewFromFloat(value).StringFixed(2) + "x"
}

// Guard renders value with render unless it is NaN or infinite.
func Guard(value float64, render func(float64) string) string {
	if !mathutil.IsFinite(value) {
		return constants.NotApplicable
	}
	return render(value)
}

// GuardNonNegative is Guard that also treats negative values as not
// applicable. Quantities such as the break-even point have no meaning below 0.
func GuardNonNegative(value float64, render func(float64) string) string {
	if !mathutil.IsFinite(value) || value < 0 {
		return constants.NotApplicable
	}
	return render(value)
}

func nairaFixed(amount float64, places int32) string {
	if !mathutil.IsFinite(amount) {
		return constants.NotApplicable
	}
	d := decimal.NewFromFloat(amount).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + constants.CurrencySymbol + group(d.StringFixed(places))
}

// group inserts thousands separators into the integer part of a fixed-point
// string such as "1234567.89".
func group(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	var intPart string
	if n, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		intPart = printer.Sprintf("%d", n)
	} else {
		intPart = groupDigits(parts[0])
	}
	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}

// groupDigits separates thousands in a digit string too long for int64.
func groupDigits(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
