package preset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/internal/version"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Document is the on-disk form of a preset catalog.
type Document struct {
	Version string `yaml:"version" json:"version" jsonschema:"title=Version,description=Catalog format version (semantic version),default=1.0.0" validate:"required,semver"`
	Groups  Groups `yaml:"groups" json:"groups" jsonschema:"title=Groups,description=Presets per parameter group"`
}

// Groups lists the declared presets per parameter group.
type Groups struct {
	Price  []PresetSpec `yaml:"price,omitempty" json:"price,omitempty" jsonschema:"title=Price Presets,description=Presets for the price process parameters" validate:"dive"`
	Volume []PresetSpec `yaml:"volume,omitempty" json:"volume,omitempty" jsonschema:"title=Volume Presets,description=Presets for the volume process parameters" validate:"dive"`
}

// PresetSpec declares one preset. Values are checked against the group schema
// when the catalog is built.
type PresetSpec struct {
	Name        string         `yaml:"name" json:"name" jsonschema:"title=Name,description=Unique preset name within its group" validate:"required,max=64"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty" jsonschema:"title=Description,description=Short explanation shown next to the preset"`
	Values      map[string]any `yaml:"values" json:"values" jsonschema:"title=Values,description=Parameter values keyed by parameter name" validate:"required,min=1"`
}

// Validate checks the document structure and version.
func (d *Document) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, "invalid catalog document", err)
	}

	return version.CheckCatalogVersion(d.Version)
}

// ParseDocument decodes and validates a YAML catalog document.
// Unknown top-level or preset fields are rejected.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, "failed to parse catalog document", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Build validates every preset against the matching group and returns the catalogs.
// Only groups that declare presets get a catalog. Declared groups without a
// schema in groups are rejected.
func (d *Document) Build(groups ...*schema.Group) (Catalogs, error) {
	byName := make(map[schema.GroupName]*schema.Group, len(groups))
	for _, g := range groups {
		byName[g.Name()] = g
	}

	declared := []struct {
		name  schema.GroupName
		specs []PresetSpec
	}{
		{name: schema.GroupPrice, specs: d.Groups.Price},
		{name: schema.GroupVolume, specs: d.Groups.Volume},
	}

	catalogs := make(Catalogs, len(declared))
	for _, entry := range declared {
		if len(entry.specs) == 0 {
			continue
		}

		group, ok := byName[entry.name]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeUnknownGroup, "no schema for group %q", entry.name)
		}

		presets := make([]Preset, len(entry.specs))
		for i, spec := range entry.specs {
			presets[i] = Preset{Name: spec.Name, Description: spec.Description, Values: schema.Bundle(spec.Values)}
		}

		c, err := NewCatalog(group, presets...)
		if err != nil {
			return nil, err
		}
		catalogs[entry.name] = c
	}

	return catalogs, nil
}

// LoadCatalogs parses a YAML catalog document against the built-in groups.
func LoadCatalogs(data []byte) (Catalogs, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	return doc.Build(schema.Builtin()...)
}

// LoadCatalogsFile reads a YAML catalog document from path.
func LoadCatalogsFile(path string) (Catalogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidCatalog, err, "failed to read catalog %s", path)
	}

	return LoadCatalogs(data)
}

// DefaultCatalogs returns the built-in catalogs.
func DefaultCatalogs() (Catalogs, error) {
	return LoadCatalogs(builtinCatalog)
}

// MustDefaultCatalogs returns the built-in catalogs and panics if they are invalid.
// Call it during startup, before any front-end is shown.
func MustDefaultCatalogs() Catalogs {
	catalogs, err := DefaultCatalogs()
	if err != nil {
		panic(err)
	}

	return catalogs
}

// BuiltinDocument returns the YAML source of the built-in catalog.
func BuiltinDocument() []byte {
	return bytes.Clone(builtinCatalog)
}

// GenerateSchema generates a JSON schema for the catalog document.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: false,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
	}

	//nolint:exhaustruct // Empty struct is intentional for schema generation
	s := reflector.Reflect(&Document{})

	s.Title = "preset-catalog"
	s.Description = "Scenario presets for the Synthetic Data Lab parameter groups"
	s.Version = "http://json-schema.org/draft-07/schema#"

	return s
}

// GenerateSchemaJSON generates an indented JSON schema string for the catalog document.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
