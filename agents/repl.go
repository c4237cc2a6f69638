package agents

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	turncontext "github.com/armankhl/smart-info-desk-agent/context"
	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

const (
	inputPrompt  = "You: "
	answerPrefix = "Agent: "

	// maxQuestionBytes bounds a single question sent to the model
	maxQuestionBytes = 64 << 10
)

// Run reads one question per line from in and writes each answer to out.
// It returns nil on quit, exit or end of input, and ctx.Err() once ctx is
// done. A failed turn is reported on out and the loop continues.
func (d *Desk) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, inputPrompt)
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			fmt.Fprintln(out)
			return fmt.Errorf("failed to read input: %w", readErr)
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			if readErr != nil {
				fmt.Fprintln(out)
				return nil
			}
			continue
		}
		if isQuit(line) {
			fmt.Fprintln(out, answerPrefix+"Goodbye!")
			return nil
		}
		if len(line) > maxQuestionBytes {
			log.Warnf(ctx, "Input of %d bytes rejected", len(line))
			fmt.Fprintf(out, "%sSorry, that input is too long. Please keep questions under %d KB.\n", answerPrefix, maxQuestionBytes>>10)
			continue
		}

		turnCtx, _ := turncontext.StartTurn(ctx)
		turn, err := d.Ask(turnCtx, line)
		if err != nil {
			log.Warnf(turnCtx, "Turn failed: %v", err)
			fmt.Fprintln(out, answerPrefix+describeError(err))
			continue
		}
		fmt.Fprintln(out, answerPrefix+turn.Answer)
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit":
		return true
	}
	return false
}

// describeError turns a turn failure into the line shown to the user
func describeError(err error) string {
	var (
		unknown *tools.UnknownToolError
		badArgs *tools.ArgumentParseError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, tools.ErrNoToolSelected):
		return "Sorry, I was unable to select a tool for that question. Try asking about the weather, news, crypto prices or a movie."
	case errors.As(err, &unknown):
		return fmt.Sprintf("Sorry, the model asked for a tool I don't have (%s).", unknown.Name)
	case errors.As(err, &badArgs):
		return fmt.Sprintf("Sorry, I couldn't understand the details for %s. Please rephrase your question.", badArgs.Tool)
	case errors.Is(err, tools.ErrTransport):
		return fmt.Sprintf("Sorry, I couldn't reach the language model: %v", err)
	case errors.Is(err, tools.ErrMalformedResponse):
		return "Sorry, the language model returned an unexpected response. Please try again."
	default:
		return fmt.Sprintf("Sorry, something went wrong: %v", err)
	}
}
