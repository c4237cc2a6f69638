package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTurnID(t *testing.T) {
	id := NewTurnID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewTurnID())

	ctx := WithTurnID(stdctx.Background(), id)
	assert.Equal(t, id, TurnIDFromContext(ctx))
	assert.Empty(t, TurnIDFromContext(stdctx.Background()))
}

func TestStartTurn(t *testing.T) {
	parent := WithTurnID(stdctx.Background(), "previous")

	first, firstID := StartTurn(parent)
	second, secondID := StartTurn(parent)

	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, firstID, TurnIDFromContext(first))
	assert.Equal(t, secondID, TurnIDFromContext(second))
	assert.Equal(t, "previous", TurnIDFromContext(parent))
}
