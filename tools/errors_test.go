package tools

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"Transport", &TransportError{Op: "weather", Err: cause}, ErrTransport, "weather: connection refused"},
		{"TransportStatus", &TransportError{Op: "news", Status: http.StatusUnauthorized}, ErrTransport, "news: unexpected status 401"},
		{"Malformed", &MalformedResponseError{Op: "crypto", Field: "bitcoin.usd"}, ErrMalformedResponse, `crypto: response has no "bitcoin.usd"`},
		{"UnknownTool", &UnknownToolError{Name: "get_time"}, ErrUnknownTool, `unknown tool "get_time"`},
		{"ArgumentParse", &ArgumentParseError{Tool: "get_weather", Err: cause}, ErrArgumentParse, "invalid arguments for get_weather: connection refused"},
		{"NoToolSelected", &NoToolSelectedError{}, ErrNoToolSelected, "unable to select a tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("turn failed: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}

	assert.ErrorIs(t, &TransportError{Op: "x", Err: cause}, cause)
	assert.NotErrorIs(t, &UnknownToolError{}, ErrArgumentParse)
}
