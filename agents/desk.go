package agents

import (
	"context"
	"fmt"
	"strings"

	turncontext "github.com/armankhl/smart-info-desk-agent/context"
	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/plugins"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

const selectionPrompt = `You are a helpful information desk assistant. You can look up the current weather, top news headlines, cryptocurrency prices and movie summaries.
When one of the available tools can answer the user's question, call it with the arguments the question implies.`

const synthesisPrompt = `You are a helpful information desk assistant. Answer the user's question in one or two friendly sentences.
Use only the information provided with the question. Do not mention tools or raw data.`

// Options configures the two model calls of a turn
type Options struct {
	Model          string
	SynthesisModel string
	ToolChoice     string
}

// Turn records what happened while answering one question. Call is nil
// when the model answered without a tool.
type Turn struct {
	ID         string
	Question   string
	Call       *tools.Call
	ToolOutput string
	Answer     string
}

// Desk answers questions by letting the model pick one tool, running it,
// and asking the model again to phrase the tool's output.
type Desk struct {
	llm      plugins.LLMClient
	registry *tools.Registry
	opts     Options
}

// NewDesk creates a new Desk
func NewDesk(llm plugins.LLMClient, registry *tools.Registry, opts Options) *Desk {
	if opts.ToolChoice == "" {
		opts.ToolChoice = plugins.ToolChoiceAuto
	}
	if opts.SynthesisModel == "" {
		opts.SynthesisModel = opts.Model
	}
	return &Desk{
		llm:      llm,
		registry: registry,
		opts:     opts,
	}
}

// Ask runs one select, dispatch and synthesize cycle. The returned Turn is
// never nil and holds whatever was completed before an error.
func (d *Desk) Ask(ctx context.Context, question string) (*Turn, error) {
	turn := &Turn{
		ID:       turncontext.TurnIDFromContext(ctx),
		Question: question,
	}
	log.Infof(ctx, "Desk: question %q", question)

	selection, err := d.llm.Chat(ctx, plugins.ChatRequest{
		Model: d.opts.Model,
		Messages: []plugins.Message{
			{Role: plugins.RoleSystem, Content: selectionPrompt},
			{Role: plugins.RoleUser, Content: question},
		},
		Tools:      d.registry.Specs(),
		ToolChoice: d.opts.ToolChoice,
	})
	if err != nil {
		return turn, fmt.Errorf("tool selection failed: %w", err)
	}

	if len(selection.ToolCalls) == 0 {
		if d.opts.ToolChoice == plugins.ToolChoiceRequired {
			return turn, &tools.NoToolSelectedError{}
		}
		turn.Answer = strings.TrimSpace(selection.Content)
		if turn.Answer == "" {
			return turn, &tools.MalformedResponseError{Op: "inference", Field: "content"}
		}
		log.Infof(ctx, "Desk: answered without a tool")
		return turn, nil
	}

	if len(selection.ToolCalls) > 1 {
		log.Warnf(ctx, "Desk: model requested %d tool calls, using the first", len(selection.ToolCalls))
	}
	call := selection.ToolCalls[0]
	turn.Call = &call
	log.Infof(ctx, "Desk: model selected %s with %s", call.Name, call.Arguments)

	output, err := d.registry.Execute(ctx, call)
	if err != nil {
		return turn, err
	}
	turn.ToolOutput = output
	log.Debugf(ctx, "Desk: tool output %q", output)

	synthesis, err := d.llm.Chat(ctx, plugins.ChatRequest{
		Model: d.opts.SynthesisModel,
		Messages: []plugins.Message{
			{Role: plugins.RoleSystem, Content: synthesisPrompt},
			{Role: plugins.RoleUser, Content: fmt.Sprintf("Question: %s\n\nInformation: %s", question, output)},
		},
	})
	if err != nil {
		return turn, fmt.Errorf("answer synthesis failed: %w", err)
	}

	// The tool output already reads as a sentence, so it stands in for an empty narration.
	turn.Answer = strings.TrimSpace(synthesis.Content)
	if turn.Answer == "" {
		log.Warnf(ctx, "Desk: synthesis returned no content, using tool output")
		turn.Answer = output
	}
	return turn, nil
}
