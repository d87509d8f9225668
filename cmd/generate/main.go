package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"gopkg.in/yaml.v3"
)

const (
	configDir        = "./config"
	schemaName       = "preset-catalog.json"
	sampleConfigName = "preset-catalog.yaml"
)

// validatePaths checks that both output paths are set.
func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return errors.New("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return errors.New("sample config path cannot be empty")
	}

	return nil
}

// validateSchemaName checks that name is a JSON file name.
func validateSchemaName(name string) error {
	if name == "" {
		return errors.New("schema name cannot be empty")
	}

	if filepath.Ext(name) != ".json" {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

// getSchemaReference returns the YAML language server header pointing at schemaName.
func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}

// generateSchemaFile writes the JSON schema of the preset catalog to schemaPath.
func generateSchemaFile(schemaPath string) error {
	schemaJSON, err := preset.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes doc as YAML to samplePath unless the file already exists.
func generateSampleConfig(doc *preset.Document, samplePath, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check sample config: %w", err)
	}

	var body strings.Builder
	encoder := yaml.NewEncoder(&body)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(samplePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content := getSchemaReference(schemaName) + body.String()
	if err := os.WriteFile(samplePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

func run() error {
	schemaPath := filepath.Join(configDir, schemaName)
	sampleConfigPath := filepath.Join(configDir, sampleConfigName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		return err
	}

	if err := validateSchemaName(schemaName); err != nil {
		return err
	}

	if err := generateSchemaFile(schemaPath); err != nil {
		return err
	}

	// the built-in catalog is the sample
	doc, err := preset.ParseDocument(preset.BuiltinDocument())
	if err != nil {
		return fmt.Errorf("failed to parse built-in catalog: %w", err)
	}

	if err := generateSampleConfig(doc, sampleConfigPath, schemaName); err != nil {
		return err
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
