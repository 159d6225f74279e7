package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"manzily/internal/models"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed seed/properties.yaml
var defaultSeed []byte

const seedSchemaURL = "seed.schema.json"

const seedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["properties"],
  "properties": {
    "property_types": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "uniqueItems": true
    },
    "properties": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "type", "availability", "price", "address"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "type": {"type": "string"},
          "availability": {"enum": ["for_sale", "for_rent"]},
          "price": {"type": "integer", "minimum": 0},
          "size": {"type": "number", "minimum": 0},
          "size_unit": {"type": "string"},
          "address": {"type": "string"},
          "rooms": {"type": "integer", "minimum": 0},
          "bathrooms": {"type": "integer", "minimum": 0},
          "year_built": {"type": ["integer", "null"]},
          "description": {"type": "string"},
          "features": {"type": "array", "items": {"type": "string"}},
          "image": {"type": "string"}
        }
      }
    }
  }
}`

var compiledSeedSchema = jsonschema.MustCompileString(seedSchemaURL, seedSchema)

// seedDocument is the on-disk layout of a seed file.
type seedDocument struct {
	PropertyTypes []models.PropertyType `yaml:"property_types"`
	Properties    []models.Property     `yaml:"properties"`
}

// LoadSeed builds the catalog from a YAML seed file. An empty path selects
// the sample listings compiled into the binary.
func LoadSeed(path string) (*Catalog, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed validates the document shape, decodes it and builds the catalog.
func ParseSeed(data []byte) (*Catalog, error) {
	if err := validateSeed(data); err != nil {
		return nil, err
	}

	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	types := models.DefaultTypes
	if len(doc.PropertyTypes) > 0 {
		types = models.NewTypeSet(doc.PropertyTypes...)
	}

	return New(types, doc.Properties)
}

// validateSeed runs the JSON schema over the YAML document. The document is
// round-tripped through encoding/json so the validator only sees JSON types.
func validateSeed(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to convert seed file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("failed to convert seed file: %w", err)
	}

	if err := compiledSeedSchema.Validate(doc); err != nil {
		return fmt.Errorf("seed file does not match schema: %w", err)
	}
	return nil
}
