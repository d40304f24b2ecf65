// Package netx holds small HTTP helpers shared by the blob collaborator
// client and its tests.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/quotekeeper/internal/common"
)

// maxErrorBody bounds how much of an unexpected response body ends up in an
// error message.
const maxErrorBody = 512

// MaxResponseBody is the largest response body PostJSON reads.
const MaxResponseBody = 1 << 20

// ErrResponseTooLarge is returned by PostJSON when the response body exceeds
// MaxResponseBody.
var ErrResponseTooLarge = errors.New("response body too large")

// StatusError is returned by PostJSON when the response body could not be
// decoded into the expected shape.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %d %s; body: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// PostJSON sends in as a JSON body to url and decodes the JSON response into
// out. A non-empty token is sent as a bearer credential. Responses with any
// status are decoded when they carry a JSON body so that callers can read
// error envelopes; a body that does not decode yields a *StatusError.
func PostJSON(ctx context.Context, client *http.Client, url, token string, in, out any) (int, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBody+1))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(raw) > MaxResponseBody {
		return resp.StatusCode, fmt.Errorf("read response: %w", ErrResponseTooLarge)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp.StatusCode, nil
}
