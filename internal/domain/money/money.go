// Package money provides an exact fixed-point currency value.
//
// Amounts are stored as integer milliunits (1000 milliunits = 1.00 of
// currency), matching the ledger API's wire representation. All arithmetic
// stays in int64 so repeated addition never accumulates floating-point drift.
//
// Example usage:
//
//	a, _ := money.FromString("100.00")
//	b := money.FromMilliunits(-25500) // -25.50
//	sum := a.Add(b)
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable fixed-point currency amount in milliunits.
// The zero value is a valid zero amount.
type Money struct {
	milliunits int64
}

// FromMilliunits creates a Money from a raw milliunit count.
func FromMilliunits(v int64) Money {
	return Money{milliunits: v}
}

// FromDecimal converts a decimal currency amount (e.g. 100.00) to Money.
// Fractions smaller than one milliunit are rounded half away from zero.
func FromDecimal(d decimal.Decimal) Money {
	return Money{milliunits: d.Shift(3).Round(0).IntPart()}
}

// FromString parses a decimal string like "100.00" into Money.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// FromFloat converts a float currency amount to Money. Conversion goes
// through decimal so 0.1+0.2 style artifacts don't leak into the result.
func FromFloat(f float64) Money {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Milliunits returns the raw milliunit count.
func (m Money) Milliunits() int64 {
	return m.milliunits
}

// Decimal returns the amount as a decimal currency value (e.g. 100.00).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.milliunits, -3)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.milliunits == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.milliunits > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.milliunits < 0
}

// Equal reports whether two amounts are exactly equal.
func (m Money) Equal(other Money) bool {
	return m.milliunits == other.milliunits
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.milliunits < other.milliunits:
		return -1
	case m.milliunits > other.milliunits:
		return 1
	default:
		return 0
	}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{milliunits: m.milliunits + other.milliunits}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{milliunits: m.milliunits - other.milliunits}
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{milliunits: -m.milliunits}
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	if m.milliunits < 0 {
		return Money{milliunits: -m.milliunits}
	}
	return m
}

// String formats the amount as a plain decimal, e.g. "100.00" -> "100".
func (m Money) String() string {
	return m.Decimal().String()
}
