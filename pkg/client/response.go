package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Response is the normalized result of every SDK call
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status"`
	Error   string `json:"error,omitempty"`

	// SessionError is set when a 401/403 could not clear the stored credentials
	SessionError error `json:"-"`
}

// Err returns nil on success, otherwise the best message available joined
// with any session reset failure
func (r Response[T]) Err() error {
	if r.Success {
		return nil
	}
	var err error
	switch {
	case r.Message != "":
		err = errors.New(r.Message)
	case r.Error != "":
		err = errors.New(r.Error)
	default:
		err = fmt.Errorf("request failed with status %d", r.Status)
	}
	if r.SessionError != nil {
		err = errors.Join(err, fmt.Errorf("clear session: %w", r.SessionError))
	}
	return err
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Error   string          `json:"error"`
}

type call struct {
	method  string
	path    string
	query   url.Values
	body    any
	private bool
}

func do[T any](ctx context.Context, c *Client, rc call) Response[T] {
	var out Response[T]

	var body io.Reader
	if rc.body != nil {
		data, err := json.Marshal(rc.body)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + rc.path
	if len(rc.query) > 0 {
		endpoint += "?" + rc.query.Encode()
	}

	ctx, state := withRequestState(ctx, rc.private)
	req, err := http.NewRequestWithContext(ctx, rc.method, endpoint, body)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	req.Header.Set("Accept", "application/json")
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	out.SessionError = state.clearErr
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	var env envelope
	parsed := len(raw) > 0 && json.Unmarshal(raw, &env) == nil
	wrapped := parsed && env.Success != nil
	payload := json.RawMessage(raw)
	if wrapped {
		payload = env.Data
		out.Message = env.Message
		out.Error = env.Error
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(payload) > 0 && string(payload) != "null" {
			if err := json.Unmarshal(payload, &out.Data); err != nil {
				out.Error = fmt.Sprintf("decode response: %v", err)
				return out
			}
		}
		out.Success = true
		return out
	}

	out.Message = failureMessage(env, parsed, raw, resp.StatusCode)
	if out.Error == "" {
		out.Error = env.Error
	}
	if out.Error == "" {
		out.Error = http.StatusText(resp.StatusCode)
	}
	return out
}

// failureMessage picks the envelope message, then the envelope error, then
// the raw body, then the status text.
func failureMessage(env envelope, parsed bool, raw []byte, status int) string {
	if parsed {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return http.StatusText(status)
}
