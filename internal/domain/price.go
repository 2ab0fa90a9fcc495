package domain

import "github.com/shopspring/decimal"

// Prices are carried internally as int64 quanta, the marketplace's smallest
// unit: hundredths of display currency. Conversion between the two happens
// here and nowhere else; config values arrive in display currency and are
// converted once at load time.

const quantaPerUnit = 100

// ToQuanta converts a display-currency amount to quanta.
func ToQuanta(display decimal.Decimal) int64 {
	return display.Mul(decimal.NewFromInt(quantaPerUnit)).IntPart()
}

// FromQuanta converts quanta back to display currency.
func FromQuanta(quanta int64) decimal.Decimal {
	return decimal.NewFromInt(quanta).Div(decimal.NewFromInt(quantaPerUnit))
}

// ApplyMarkup derives a resale listing price from an acquisition price.
// The result is truncated to whole quanta.
func ApplyMarkup(priceQuanta int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(priceQuanta).Mul(factor).IntPart()
}
