package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"

	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// maxNumberLength bounds the textual form of a numeric input.
	maxNumberLength = 64
	// maxExponent bounds the decimal exponent of a numeric input.
	maxExponent = 32
	// maxCoefficientBits bounds the coefficient of a decimal input (about 77 digits).
	maxCoefficientBits = 256
)

func (f Field) precision() int32 {
	if f.Kind == KindInteger {
		return 0
	}

	return f.Precision
}

// toDecimal converts supported numeric inputs without losing precision.
func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0), true
	case uint8:
		return decimal.NewFromInt(int64(v)), true
	case uint16:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), true
	case json.Number:
		return parseNumber(string(v))
	case string:
		return parseNumber(strings.TrimSpace(v))
	}

	return decimal.Zero, false
}

func parseNumber(s string) (decimal.Decimal, bool) {
	if len(s) > maxNumberLength {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// describe renders an input for error messages, truncated.
func describe(value any) string {
	s := fmt.Sprint(value)
	if len(s) > maxNumberLength {
		return s[:maxNumberLength] + "..."
	}
	return s
}

// number converts value to a decimal whose size is bounded, so comparing and
// rounding it stays cheap.
func number(f Field, value any) (decimal.Decimal, error) {
	d, ok := toDecimal(value)
	if !ok {
		return decimal.Zero, errors.Newf(errors.ErrCodeInvalidType, "%s expects a number, got %s", f.Key, describe(value))
	}

	if d.Exponent() > maxExponent || d.Coefficient().BitLen() > maxCoefficientBits {
		return decimal.Zero, errors.Newf(errors.ErrCodeOutOfRange, "%s: %s is outside the supported range", f.Key, describe(value))
	}

	if d.Exponent() < -maxExponent {
		return decimal.Zero, errors.Newf(errors.ErrCodeInvalidType, "%s: %s has more than %d decimal places", f.Key, describe(value), maxExponent)
	}

	return d, nil
}

// check validates value and returns its decimal form for numeric fields.
func check(f Field, value any) (decimal.Decimal, error) {
	if f.Kind == KindCategorical {
		s, ok := value.(string)
		if !ok {
			return decimal.Zero, errors.Newf(errors.ErrCodeInvalidType, "%s expects one of %s, got %T", f.Key, strings.Join(f.Choices, ", "), value)
		}

		if !slices.Contains(f.Choices, s) {
			return decimal.Zero, errors.Newf(errors.ErrCodeInvalidChoice, "%s: %q is not one of %s", f.Key, describe(s), strings.Join(f.Choices, ", "))
		}

		return decimal.Zero, nil
	}

	d, err := number(f, value)
	if err != nil {
		return decimal.Zero, err
	}

	if f.Kind == KindInteger && !d.IsInteger() {
		return decimal.Zero, errors.Newf(errors.ErrCodeInvalidType, "%s expects a whole number, got %s", f.Key, d.String())
	}

	r := f.Range.Unwrap()
	if d.LessThan(decimal.NewFromFloat(r.Min)) || d.GreaterThan(decimal.NewFromFloat(r.Max)) {
		return decimal.Zero, errors.Newf(errors.ErrCodeOutOfRange, "%s: %s is outside [%s, %s]",
			f.Key, d.String(), decimal.NewFromFloat(r.Min).String(), decimal.NewFromFloat(r.Max).String())
	}

	return d, nil
}

func coerce(f Field, value any) (any, error) {
	if f.Kind == KindCategorical {
		s, ok := value.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidType, "%s expects a label, got %T", f.Key, value)
		}
		return s, nil
	}

	d, err := number(f, value)
	if err != nil {
		return nil, err
	}

	return canonical(f, d), nil
}

func normalize(f Field, value any) (any, error) {
	d, err := check(f, value)
	if err != nil {
		return nil, err
	}

	if f.Kind == KindCategorical {
		return value.(string), nil
	}

	return canonical(f, d), nil
}

func canonical(f Field, d decimal.Decimal) any {
	if f.Kind == KindInteger {
		return d.Round(0).IntPart()
	}

	return d.Round(f.precision()).InexactFloat64()
}

func representable(v float64, places int32) bool {
	d := decimal.NewFromFloat(v)
	return d.Equal(d.Round(places))
}

func format(f Field, value any) string {
	if f.Kind == KindCategorical {
		return fmt.Sprint(value)
	}

	d, err := number(f, value)
	if err != nil {
		return describe(value)
	}

	return d.StringFixed(f.precision())
}
