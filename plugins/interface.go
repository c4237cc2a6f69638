package plugins

import (
	"context"

	"github.com/armankhl/smart-info-desk-agent/tools"
)

// Chat message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Tool-choice modes understood by the inference endpoint
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"
	ToolChoiceNone     = "none"
)

// Message is one entry of the ordered conversation sent to the model
type Message struct {
	Role    string
	Content string
}

// ChatRequest is a single chat-completion request. Tools and ToolChoice are
// left empty for calls that must not select a tool.
type ChatRequest struct {
	Model      string
	Messages   []Message
	Tools      []tools.Spec
	ToolChoice string
}

// ChatResponse exposes the assistant content (possibly empty) and any tool
// invocations the model asked for.
type ChatResponse struct {
	Content   string
	ToolCalls []tools.Call
}

// LLMClient defines the interface for LLM interaction
type LLMClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
