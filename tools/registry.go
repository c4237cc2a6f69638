package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Executor runs a tool with already validated arguments. It always returns
// text; failures are reported inside the text rather than as an error.
type Executor func(ctx context.Context, args map[string]interface{}) string

type entry struct {
	spec     Spec
	schema   *gojsonschema.Schema
	executor Executor
}

// Registry manages the registration of AI tools
type Registry struct {
	specs   []Spec
	entries map[string]entry
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		specs:   make([]Spec, 0),
		entries: make(map[string]entry),
	}
}

// Register adds a tool to the registry with its executor
func (r *Registry) Register(spec Spec, executor Executor) error {
	if spec.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if executor == nil {
		return fmt.Errorf("tool %s has no executor", spec.Name)
	}
	if _, ok := r.entries[spec.Name]; ok {
		return fmt.Errorf("tool %s already registered", spec.Name)
	}

	schema, err := spec.compile()
	if err != nil {
		return err
	}

	r.specs = append(r.specs, spec)
	r.entries[spec.Name] = entry{spec: spec, schema: schema, executor: executor}
	return nil
}

// Specs returns all registered tool specs in registration order
func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Resolve returns the executor registered under name
func (r *Registry) Resolve(name string) (Executor, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return e.executor, nil
}

// ParseArguments decodes the call's JSON payload and checks it against the
// tool's parameter schema.
func (r *Registry) ParseArguments(call Call) (map[string]interface{}, error) {
	e, ok := r.entries[call.Name]
	if !ok {
		return nil, &UnknownToolError{Name: call.Name}
	}

	payload := strings.TrimSpace(call.Arguments)
	if payload == "" {
		payload = "{}"
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &args); err != nil {
		return nil, &ArgumentParseError{Tool: call.Name, Err: fmt.Errorf("failed to parse arguments: %w", err)}
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	result, err := e.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return nil, &ArgumentParseError{Tool: call.Name, Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			msgs = append(msgs, verr.String())
		}
		return nil, &ArgumentParseError{Tool: call.Name, Err: fmt.Errorf("validation errors: %s", strings.Join(msgs, "; "))}
	}

	return args, nil
}

// Execute resolves the call's tool, validates its arguments and runs it.
// The executor is never invoked when resolution or validation fails.
func (r *Registry) Execute(ctx context.Context, call Call) (string, error) {
	executor, err := r.Resolve(call.Name)
	if err != nil {
		return "", err
	}
	args, err := r.ParseArguments(call)
	if err != nil {
		return "", err
	}
	return executor(ctx, args), nil
}
