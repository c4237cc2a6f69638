// Package context carries the id of the conversation turn being answered,
// so log lines from the model calls and the tool call of one question can
// be grouped.
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

type turnKey struct{}

// NewTurnID returns a random uuid for a turn
func NewTurnID() string {
	return uuid.NewString()
}

// WithTurnID attaches an existing turn id
func WithTurnID(parent stdctx.Context, turnID string) stdctx.Context {
	return stdctx.WithValue(parent, turnKey{}, turnID)
}

// StartTurn derives the context for a new question and returns it with the
// turn's id.
func StartTurn(parent stdctx.Context) (stdctx.Context, string) {
	id := NewTurnID()
	return WithTurnID(parent, id), id
}

// TurnIDFromContext returns the turn id, or "" outside a turn
func TurnIDFromContext(ctx stdctx.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(turnKey{}).(string)
	return id
}
