package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/armankhl/smart-info-desk-agent/log"
	"github.com/armankhl/smart-info-desk-agent/tools"
)

var (
	// ErrMissingAPIKey is returned before any request is made when a provider has no key
	ErrMissingAPIKey = errors.New("API key is not configured")
	// ErrInvalidInput is returned before any request is made when an argument is unusable
	ErrInvalidInput = errors.New("invalid input")
)

// maxBodyBytes bounds how much of a provider response is read
const maxBodyBytes = 4 << 20

// NewHTTPClient returns the client every provider adapter uses
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetJSON issues exactly one GET to baseURL+path with the given query and
// returns the body once it is known to be JSON. Failures are typed:
// *tools.TransportError for network and status problems,
// *tools.MalformedResponseError for a body that is not JSON.
func GetJSON(ctx context.Context, client *http.Client, op, baseURL, path string, query url.Values, header http.Header) ([]byte, error) {
	endpoint := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &tools.TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	log.Debugf(ctx, "[%s] GET %s%s", op, strings.TrimRight(baseURL, "/"), path)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &tools.TransportError{Op: op, Err: redactKeys(err, query)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &tools.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "status_message").String()
		}
		if msg == "" {
			return nil, &tools.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("API request failed with status %d", resp.StatusCode)}
		}
		return nil, &tools.TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, msg)}
	}

	if !gjson.ValidBytes(body) {
		return nil, &tools.MalformedResponseError{Op: op, Field: "body"}
	}

	log.Debugf(ctx, "[%s] received %d bytes", op, len(body))
	return body, nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redactKeys strips credential query values out of a transport error, which
// would otherwise echo the full request URL back to the user.
func redactKeys(err error, query url.Values) error {
	msg := err.Error()
	for _, name := range []string{"appid", "apiKey", "api_key"} {
		if v := query.Get(name); v != "" {
			msg = strings.ReplaceAll(msg, url.QueryEscape(v), "REDACTED")
		}
	}
	return &redactedError{msg: msg, err: err}
}
