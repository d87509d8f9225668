package preset

import (
	"slices"
	"strings"

	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
)

// CustomPresetName is the sentinel preset. It is always listed first, holds an
// empty bundle and marks a configuration edited outside of any preset.
const CustomPresetName = "Custom"

// Preset is a named bundle of parameter values for one group.
type Preset struct {
	Name        string
	Description string
	Values      schema.Bundle
}

// IsCustom reports whether p is the sentinel preset.
func (p Preset) IsCustom() bool {
	return p.Name == CustomPresetName
}

// Catalog is the fixed, pre-validated set of presets of one group.
type Catalog struct {
	group   *schema.Group
	presets []Preset
	index   map[string]int
}

// NewCatalog validates every preset against group and returns the catalog.
// The Custom sentinel is prepended automatically and may not be declared.
// Any invalid preset makes the whole catalog invalid.
func NewCatalog(group *schema.Group, presets ...Preset) (*Catalog, error) {
	if group == nil {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog requires a parameter group")
	}

	c := &Catalog{
		group:   group,
		presets: make([]Preset, 0, len(presets)+1),
		index:   make(map[string]int, len(presets)+1),
	}
	c.add(Preset{Name: CustomPresetName, Description: "Values edited by hand", Values: schema.Bundle{}})

	for _, p := range presets {
		if p.Name == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidCatalog, "%s: preset name cannot be empty", group.Name())
		}

		if p.IsCustom() {
			return nil, errors.Wrapf(errors.ErrCodeInvalidCatalog,
				errors.Newf(errors.ErrCodeReservedPreset, "%q is reserved", CustomPresetName),
				"%s: invalid preset", group.Name())
		}

		if _, exists := c.index[p.Name]; exists {
			return nil, errors.Wrapf(errors.ErrCodeInvalidCatalog,
				errors.Newf(errors.ErrCodeDuplicatePreset, "preset %q declared twice", p.Name),
				"%s: invalid preset", group.Name())
		}

		values, key, err := group.NormalizeBundle(p.Values)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidCatalog,
				errors.NewInvalidPresetError(p.Name, key, err),
				"%s: invalid preset", group.Name())
		}

		if len(values) == 0 {
			return nil, errors.Wrapf(errors.ErrCodeInvalidCatalog,
				errors.Newf(errors.ErrCodeInvalidPreset, "preset %q sets no parameters", p.Name),
				"%s: invalid preset", group.Name())
		}

		c.add(Preset{Name: p.Name, Description: p.Description, Values: values})
	}

	return c, nil
}

func (c *Catalog) add(p Preset) {
	c.index[p.Name] = len(c.presets)
	c.presets = append(c.presets, p)
}

// Group returns the schema the catalog was validated against.
func (c *Catalog) Group() *schema.Group {
	return c.group
}

// Lookup returns a copy of the named preset.
func (c *Catalog) Lookup(name string) (Preset, error) {
	i, ok := c.index[name]
	if !ok {
		return Preset{}, errors.Newf(errors.ErrCodeUnknownPreset, "%s has no preset %q", c.group.Name(), name)
	}

	p := c.presets[i]
	p.Values = p.Values.Clone()

	return p, nil
}

// Names returns the preset names in declaration order, Custom first.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}

	return names
}

// Presets returns copies of all presets in declaration order, Custom first.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.presets))
	for i, p := range c.presets {
		p.Values = p.Values.Clone()
		out[i] = p
	}

	return out
}

// declared returns the presets without the Custom sentinel.
func (c *Catalog) declared() []Preset {
	return slices.DeleteFunc(c.Presets(), Preset.IsCustom)
}

// Catalogs holds one catalog per parameter group.
type Catalogs map[schema.GroupName]*Catalog

// Get returns the catalog of group.
func (cs Catalogs) Get(group schema.GroupName) (*Catalog, error) {
	c, ok := cs[group]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownGroup, "no catalog for group %q", group)
	}

	return c, nil
}

// Groups returns the group names with Price and Volume first.
func (cs Catalogs) Groups() []schema.GroupName {
	names := make([]schema.GroupName, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b schema.GroupName) int {
		if r := groupRank(a) - groupRank(b); r != 0 {
			return r
		}
		return strings.Compare(string(a), string(b))
	})

	return names
}

func groupRank(name schema.GroupName) int {
	switch name {
	case schema.GroupPrice:
		return 0
	case schema.GroupVolume:
		return 1
	}

	return 2
}

// Merge returns new catalogs holding the presets of cs followed by those of extra.
// A name declared in both is rejected.
func (cs Catalogs) Merge(extra Catalogs) (Catalogs, error) {
	out := make(Catalogs, len(cs))
	for name, c := range cs {
		out[name] = c
	}

	for name, add := range extra {
		base, ok := cs[name]
		if !ok {
			out[name] = add
			continue
		}

		merged, err := NewCatalog(base.group, append(base.declared(), add.declared()...)...)
		if err != nil {
			return nil, err
		}
		out[name] = merged
	}

	return out, nil
}
