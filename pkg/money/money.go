// Package money converts between ledger amounts and their display strings.
//
// Invariants:
//   - Amounts are stored as integers in the smallest currency unit (1/100 of a tenge).
//   - Display strings are "<decimal> <suffix>", e.g. "12345 ₸" or "-12.5 ₸".
//   - Parse(Format(a)) == a for every Amount a.
package money

import (
	"fmt"
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

// Amount represents a signed monetary amount in the smallest currency unit.
type Amount int64

const (
	// MinorUnits is the number of decimal places between the display unit and Amount.
	MinorUnits = 2

	// DefaultSuffix is the currency sign appended by the default codec.
	DefaultSuffix = "₸"
)

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)

	// nonNumeric matches every rune that is not part of a plain decimal number.
	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
)

// Codec formats and parses display strings for amounts.
type Codec struct {
	Suffix string
}

// Default is the codec used for persisted and displayed balances.
var Default = Codec{Suffix: DefaultSuffix}

// NewCodec returns a codec that appends the given currency suffix.
func NewCodec(suffix string) Codec {
	return Codec{Suffix: suffix}
}

// Format renders an amount with trailing fractional zeros trimmed and the suffix appended.
func (c Codec) Format(a Amount) string {
	s := a.Decimal().String()
	if c.Suffix == "" {
		return s
	}
	return s + " " + c.Suffix
}

// Parse strips everything except digits, '.' and '-' and reads the rest as a decimal number.
// Values with more precision than the minor unit are rounded half away from zero.
func (c Codec) Parse(s string) (Amount, error) {
	d, err := readDecimal(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d)
}

// ParseExact is Parse without rounding: values finer than the minor unit fail with
// ErrTooPrecise.
func (c Codec) ParseExact(s string) (Amount, error) {
	d, err := readDecimal(s)
	if err != nil {
		return 0, err
	}
	return FromDecimalExact(d)
}

func readDecimal(s string) (decimal.Decimal, error) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Format formats a using the default codec.
func Format(a Amount) string {
	return Default.Format(a)
}

// Parse parses s using the default codec.
func Parse(s string) (Amount, error) {
	return Default.Parse(s)
}

// FromDecimal converts a value expressed in display units into an Amount.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Shift(MinorUnits).Round(0)
	if minor.GreaterThan(maxAmount) || minor.LessThan(minAmount) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, d.String())
	}
	return Amount(minor.IntPart()), nil
}

// FromDecimalExact is FromDecimal for values that must already be whole minor units.
func FromDecimalExact(d decimal.Decimal) (Amount, error) {
	if !d.Shift(MinorUnits).IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrTooPrecise, d.String())
	}
	return FromDecimal(d)
}

// FromFloat converts a float in display units (e.g. a JSON number) into an Amount.
func FromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromFloatExact converts a float like FromFloat but rejects values finer than the
// minor unit instead of rounding them.
func FromFloatExact(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return FromDecimalExact(decimal.NewFromFloat(f))
}

// FromMajor converts a whole number of display units into an Amount.
func FromMajor(units int64) Amount {
	return Amount(units * 100)
}

// Decimal returns the amount in display units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -MinorUnits)
}

// Float64 returns the amount in display units as a float.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return -a
}

// String returns the default display form.
func (a Amount) String() string {
	return Default.Format(a)
}

// Add returns a+b, or ErrAmountOutOfRange when the sum does not fit.
func (a Amount) Add(b Amount) (Amount, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOutOfRange, a, b)
	}
	return a + b, nil
}
