// Package together talks to Together AI, or any other OpenAI-compatible
// chat-completions endpoint, on behalf of the agent.
package together

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

const (
	// DefaultBaseURL is Together AI's OpenAI-compatible API
	DefaultBaseURL = "https://api.together.xyz/v1"

	op = "inference"
)

// Client handles chat-completion requests
type Client struct {
	BaseURL string
	client  openai.Client
}

// Ensure Client satisfies LLMClient
var _ plugins.LLMClient = (*Client)(nil)

// NewClient creates a chat-completion client. Retries are disabled so every
// Chat call is exactly one request.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("inference API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
			option.WithHTTPClient(plugins.NewHTTPClient(timeout)),
		),
	}, nil
}

// Chat sends one chat-completion request and returns the first choice
func (c *Client) Chat(ctx context.Context, req plugins.ChatRequest) (*plugins.ChatResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: toMessages(req.Messages),
	}

	if len(req.Tools) > 0 {
		params.Tools = toTools(req.Tools)
	}
	if req.ToolChoice != "" {
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String(req.ToolChoice),
		}
	}

	log.Debugf(ctx, "[%s] model=%s messages=%d tools=%d tool_choice=%q", op, req.Model, len(req.Messages), len(req.Tools), req.ToolChoice)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &tools.TransportError{Op: op, Status: apiErr.StatusCode, Err: fmt.Errorf("chat completion failed with status %d: %s", apiErr.StatusCode, apiErrMessage(apiErr))}
		}
		return nil, &tools.TransportError{Op: op, Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &tools.MalformedResponseError{Op: op, Field: "choices"}
	}

	msg := resp.Choices[0].Message
	out := &plugins.ChatResponse{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, tools.Call{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	log.Debugf(ctx, "[%s] content=%d bytes tool_calls=%d", op, len(out.Content), len(out.ToolCalls))
	return out, nil
}

func apiErrMessage(err *openai.Error) string {
	if err.Message != "" {
		return err.Message
	}
	return "no error message"
}

func toMessages(msgs []plugins.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case plugins.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case plugins.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func toTools(specs []tools.Spec) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(specs))
	for _, s := range specs {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        s.Name,
				Description: openai.String(s.Description),
				Parameters:  openai.FunctionParameters(s.Schema()),
			},
		})
	}
	return out
}
