// Package schema compiles and applies the JSON Schema documents that gate
// World and LawCard input before they ever reach the typed model: malformed
// documents are rejected here, with a schema-shaped error, rather than
// surfacing as a confusing unmarshal failure deeper in the pipeline.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	worldSchemaURL   = "https://worldsim.local/schema/world.schema.json"
	lawCardSchemaURL = "https://worldsim.local/schema/lawcard.schema.json"
)

// worldSchemaDoc is a minimal structural schema: it enforces the required
// top-level shape without duplicating every invariant the validator package
// already checks semantically.
const worldSchemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "entities", "dynamics"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "entities": {"type": "array", "items": {"type": "object", "required": ["id", "mass", "state"]}},
    "dynamics": {"type": "array", "items": {"type": "object", "required": ["ref"]}}
  }
}`

const lawCardSchemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "parameters"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "version": {"type": "string"},
    "parameters": {"type": "object"}
  }
}`

var (
	once       sync.Once
	compiled   map[string]*jsonschema.Schema
	compileErr error
)

func compileAll() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(worldSchemaURL, strings.NewReader(worldSchemaDoc)); err != nil {
		compileErr = fmt.Errorf("schema: load world schema: %w", err)
		return
	}
	if err := c.AddResource(lawCardSchemaURL, strings.NewReader(lawCardSchemaDoc)); err != nil {
		compileErr = fmt.Errorf("schema: load lawcard schema: %w", err)
		return
	}

	world, err := c.Compile(worldSchemaURL)
	if err != nil {
		compileErr = fmt.Errorf("schema: compile world schema: %w", err)
		return
	}
	card, err := c.Compile(lawCardSchemaURL)
	if err != nil {
		compileErr = fmt.Errorf("schema: compile lawcard schema: %w", err)
		return
	}
	compiled = map[string]*jsonschema.Schema{"world": world, "lawcard": card}
}

func schemas() (map[string]*jsonschema.Schema, error) {
	once.Do(compileAll)
	return compiled, compileErr
}

// ValidateWorldDocument checks raw JSON bytes against the World structural
// schema before they are unmarshaled into model.World.
func ValidateWorldDocument(data []byte) error {
	return validate("world", data)
}

// ValidateLawCardDocument checks raw JSON bytes against the LawCard
// structural schema before they are unmarshaled into model.LawCard.
func ValidateLawCardDocument(data []byte) error {
	return validate("lawcard", data)
}

func validate(name string, data []byte) error {
	ss, err := schemas()
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("schema: invalid JSON: %w", err)
	}
	if err := ss[name].Validate(v); err != nil {
		return fmt.Errorf("schema: %s document failed validation: %w", name, err)
	}
	return nil
}
