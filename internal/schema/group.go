package schema

import (
	"slices"
	"strings"

	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
)

// Group is an ordered, immutable collection of fields sharing one preset namespace.
type Group struct {
	name   GroupName
	fields []Field
	index  map[string]int
}

// NewGroup builds a group and checks that it is self-consistent: keys are unique,
// numeric fields have a sensible range and every default satisfies its own field.
func NewGroup(name GroupName, fields ...Field) (*Group, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "group name cannot be empty")
	}

	g := &Group{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Key == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "%s: field key cannot be empty", name)
		}

		if _, exists := g.index[f.Key]; exists {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "%s: duplicate field key %q", name, f.Key)
		}

		if err := checkField(f); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "%s: invalid field %q", name, f.Key)
		}

		canonical, err := normalize(f, f.Default)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "%s: default of %q is invalid", name, f.Key)
		}

		f.Default = canonical
		f.Choices = slices.Clone(f.Choices)
		g.index[f.Key] = len(g.fields)
		g.fields = append(g.fields, f)
	}

	return g, nil
}

func checkField(f Field) error {
	switch f.Kind {
	case KindContinuous, KindInteger:
		r, err := f.Range.Take()
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfiguration, "numeric field requires a range")
		}

		if r.Min > r.Max {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "range minimum %v exceeds maximum %v", r.Min, r.Max)
		}

		if f.Precision < 0 {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "negative precision %d", f.Precision)
		}

		// bounds must survive rounding so that coercion never leaves the range
		if !representable(r.Min, f.precision()) || !representable(r.Max, f.precision()) {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "range bounds need more than %d decimal places", f.precision())
		}

		if len(f.Choices) > 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration, "numeric field cannot declare choices")
		}
	case KindCategorical:
		if len(f.Choices) == 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration, "categorical field requires choices")
		}

		if f.Range.IsSome() {
			return errors.New(errors.ErrCodeInvalidConfiguration, "categorical field cannot declare a range")
		}

		seen := make(map[string]struct{}, len(f.Choices))
		for _, c := range f.Choices {
			if _, dup := seen[c]; dup {
				return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate choice %q", c)
			}
			seen[c] = struct{}{}
		}
	default:
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown kind %q", f.Kind)
	}

	return nil
}

// Name returns the group name.
func (g *Group) Name() GroupName {
	return g.name
}

// Fields returns the fields in declaration order.
func (g *Group) Fields() []Field {
	out := make([]Field, len(g.fields))
	for i, f := range g.fields {
		f.Choices = slices.Clone(f.Choices)
		out[i] = f
	}

	return out
}

// Keys returns the field keys in declaration order.
func (g *Group) Keys() []string {
	keys := make([]string, len(g.fields))
	for i, f := range g.fields {
		keys[i] = f.Key
	}

	return keys
}

// Field looks up a field by key.
func (g *Group) Field(key string) (Field, error) {
	i, ok := g.index[key]
	if !ok {
		return Field{}, errors.Newf(errors.ErrCodeUnknownKey, "%s has no parameter %q", g.name, key)
	}

	f := g.fields[i]
	f.Choices = slices.Clone(f.Choices)

	return f, nil
}

// Validate checks value against the field named key.
// It returns an UnknownKey, OutOfRange, InvalidChoice or InvalidType error.
func (g *Group) Validate(key string, value any) error {
	f, err := g.Field(key)
	if err != nil {
		return err
	}

	_, err = check(f, value)

	return err
}

// CoercePrecision converts value to the canonical representation of the field
// named key, rounding continuous values to the field precision. It does not
// range check; use Normalize for validated input.
func (g *Group) CoercePrecision(key string, value any) (any, error) {
	f, err := g.Field(key)
	if err != nil {
		return nil, err
	}

	return coerce(f, value)
}

// Normalize validates value and returns its canonical form.
func (g *Group) Normalize(key string, value any) (any, error) {
	f, err := g.Field(key)
	if err != nil {
		return nil, err
	}

	return normalize(f, value)
}

// NormalizeBundle normalizes every entry of b. On the first failure it returns
// the offending key together with the error and no bundle.
func (g *Group) NormalizeBundle(b Bundle) (Bundle, string, error) {
	out := make(Bundle, len(b))

	// sorted for a deterministic first failure
	for _, key := range b.Keys() {
		v, err := g.Normalize(key, b[key])
		if err != nil {
			return nil, key, err
		}
		out[key] = v
	}

	return out, "", nil
}

// DefaultBundle returns one default value per field.
func (g *Group) DefaultBundle() Bundle {
	b := make(Bundle, len(g.fields))
	for _, f := range g.fields {
		b[f.Key] = f.Default
	}

	return b
}

// Format renders value the way the front-ends display it.
func (g *Group) Format(key string, value any) string {
	f, err := g.Field(key)
	if err != nil {
		return ""
	}

	return format(f, value)
}

// ParseGroupName resolves a group name case-insensitively.
func ParseGroupName(s string) (GroupName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return GroupPrice, nil
	case "volume":
		return GroupVolume, nil
	}

	return "", errors.Newf(errors.ErrCodeUnknownGroup, "unknown parameter group %q", s)
}
