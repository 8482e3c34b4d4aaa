package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds *jsonschema.Schema values keyed by Schema.Name.
// A name must always carry the same definition.
var compiledSchemas sync.Map

// CompileSchema compiles a JSON Schema written as Go maps. The definition
// is round-tripped through JSON so the compiler only sees decoded values.
func CompileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	url := "schema://wizquest/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	return c.Compile(url)
}

func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if v, ok := compiledSchemas.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}
	sch, err := CompileSchema(s.Name, s.Definition)
	if err != nil {
		return nil, err
	}
	v, _ := compiledSchemas.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}

// Validate checks raw against the schema. Failures are reported as
// an *Error of KindInvalidOutput carrying the offending content. A nil schema
// accepts anything.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	invalid := func(err error) error {
		return invalidOutput("", raw, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	sch, err := s.compiled()
	if err != nil {
		return invalid(err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid(fmt.Errorf("does not match schema %q: %w", s.Name, err))
	}
	return nil
}
