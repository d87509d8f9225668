// Package schema declares the tunable parameters of the synthetic data generator
// and validates values against them.
//
// A Group (Price or Volume) is an ordered set of Fields. Each Field has a kind,
// a valid range or choice set, a default and, for continuous values, a precision.
// All functions in this package are pure: they never mutate their inputs.
package schema

import (
	"maps"
	"slices"

	"github.com/moznion/go-optional"
)

// Kind is the semantic type of a parameter value.
type Kind string

const (
	// KindContinuous values are stored as float64 rounded to the field precision.
	KindContinuous Kind = "continuous"
	// KindInteger values are stored as int64.
	KindInteger Kind = "integer"
	// KindCategorical values are stored as one of the field's choice labels.
	KindCategorical Kind = "categorical"
)

// IsNumeric reports whether values of this kind are range checked.
func (k Kind) IsNumeric() bool {
	return k == KindContinuous || k == KindInteger
}

// GroupName identifies a parameter group. Every group has its own preset namespace.
type GroupName string

const (
	GroupPrice  GroupName = "Price"
	GroupVolume GroupName = "Volume"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Field declares one tunable parameter.
type Field struct {
	Key   string
	Label string
	Kind  Kind
	// Range is set for numeric kinds only.
	Range optional.Option[Range]
	// Choices is set for categorical kinds only, in display order.
	Choices []string
	// Default is float64, int64 or string depending on Kind.
	Default any
	// Precision is the number of decimal places kept for continuous values.
	Precision int32
}

// Continuous declares a floating point field.
func Continuous(key, label string, minValue, maxValue, def float64, precision int32) Field {
	return Field{
		Key:       key,
		Label:     label,
		Kind:      KindContinuous,
		Range:     optional.Some(Range{Min: minValue, Max: maxValue}),
		Choices:   nil,
		Default:   def,
		Precision: precision,
	}
}

// Integer declares a whole-number field.
func Integer(key, label string, minValue, maxValue, def int64) Field {
	return Field{
		Key:       key,
		Label:     label,
		Kind:      KindInteger,
		Range:     optional.Some(Range{Min: float64(minValue), Max: float64(maxValue)}),
		Choices:   nil,
		Default:   def,
		Precision: 0,
	}
}

// Categorical declares a field restricted to a fixed set of labels.
func Categorical(key, label string, choices []string, def string) Field {
	return Field{
		Key:       key,
		Label:     label,
		Kind:      KindCategorical,
		Range:     optional.None[Range](),
		Choices:   slices.Clone(choices),
		Default:   def,
		Precision: 0,
	}
}

// Bundle maps parameter keys to canonical values.
type Bundle map[string]any

// Clone returns a shallow copy; canonical values are immutable scalars.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return Bundle{}
	}

	return maps.Clone(b)
}

// Keys returns the bundle keys in sorted order.
func (b Bundle) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}

// Equal reports whether both bundles hold the same keys and values.
func (b Bundle) Equal(other Bundle) bool {
	return maps.Equal(b, other)
}
