// Package schema validates and writes the outline interchange format.
//
// The JSON shape is fixed by the embedded draft-07 schema: a title string
// plus an outline array of {level, text, page} objects. Validate guards
// the contract at the serialization boundary so a pipeline regression can
// never silently emit a malformed document.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/colmreid/strata/model"
)

//go:embed outline.schema.json
var outlineSchema []byte

// compiled is built once at init; the embedded schema is part of the
// binary, so a compile failure is a programming error.
var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("outline.schema.json", bytes.NewReader(outlineSchema)); err != nil {
		panic(fmt.Sprintf("schema: add resource: %v", err))
	}
	s, err := compiler.Compile("outline.schema.json")
	if err != nil {
		panic(fmt.Sprintf("schema: compile: %v", err))
	}
	return s
}

// Raw returns the embedded schema document.
func Raw() []byte {
	return outlineSchema
}

// Validate checks an outline against the interchange schema.
func Validate(out model.Outline) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}
	return ValidateJSON(data)
}

// ValidateJSON checks raw JSON against the interchange schema.
func ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode outline JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("outline does not match schema: %w", err)
	}
	return nil
}

// Marshal serializes an outline with two-space indentation after
// validating it.
func Marshal(out model.Outline) ([]byte, error) {
	if err := Validate(out); err != nil {
		return nil, err
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteFile validates an outline and writes it to path with a trailing
// newline.
func WriteFile(path string, out model.Outline) error {
	data, err := Marshal(out)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write outline %s: %w", path, err)
	}
	return nil
}
