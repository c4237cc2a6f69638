package tools

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Parameter describes one argument of a tool
type Parameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Spec is the declarative description of a tool shown to the model
type Spec struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Call is a tool invocation requested by the model. Arguments is the raw
// JSON payload exactly as the model produced it.
type Call struct {
	ID        string
	Name      string
	Arguments string
}

// Required returns the names of the required parameters in declaration order
func (s Spec) Required() []string {
	var required []string
	for _, p := range s.Parameters {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return required
}

// Schema renders the parameters as a JSON Schema object
func (s Spec) Schema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Parameters))
	for _, p := range s.Parameters {
		properties[p.Name] = map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if required := s.Required(); len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (s Spec) compile() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.Schema()))
	if err != nil {
		return nil, fmt.Errorf("invalid schema for tool %s: %w", s.Name, err)
	}
	return schema, nil
}
