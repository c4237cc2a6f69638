package tools

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every typed error below matches exactly one.
var (
	ErrTransport         = errors.New("transport error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnknownTool       = errors.New("unknown tool")
	ErrArgumentParse     = errors.New("argument parse error")
	ErrNoToolSelected    = errors.New("no tool selected")
)

// TransportError is a network or HTTP status failure talking to the
// inference endpoint or a data provider.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// MalformedResponseError means a response arrived but lacked the expected field.
type MalformedResponseError struct {
	Op    string
	Field string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: response has no %q", e.Op, e.Field)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }

// UnknownToolError means the model named a tool outside the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ArgumentParseError means the tool call payload was not valid JSON or did
// not satisfy the tool's parameter schema.
type ArgumentParseError struct {
	Tool string
	Err  error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentParseError) Unwrap() []error { return []error{ErrArgumentParse, e.Err} }

// NoToolSelectedError is returned when tool choice is "required" but the
// model answered without a tool call.
type NoToolSelectedError struct{}

func (e *NoToolSelectedError) Error() string { return "unable to select a tool" }

func (e *NoToolSelectedError) Unwrap() error { return ErrNoToolSelected }
