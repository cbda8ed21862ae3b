// Package client is a small HTTP client for the staybook API. The session
// token travels as the "token" cookie, exactly like a browser would send it.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/staybook/cmd/cli/config"
)

const tokenCookie = "token"

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a client for the configured API URL carrying token (may be empty).
func New(token string) *Client {
	return &Client{
		BaseURL: config.APIURL(),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Authenticated returns a client with the saved token, or an error if none is saved.
func Authenticated() (*Client, error) {
	token, err := config.ReadToken()
	if err != nil {
		return nil, err
	}
	return New(token), nil
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("status %d: %s", e.Status, e.Message)
	for k, v := range e.Fields {
		msg += fmt.Sprintf("\n  %s: %s", k, v)
	}
	return msg
}

// Do sends payload (if any) as JSON and decodes the response into out (if non-nil).
// It returns the raw response body as well so callers can print it verbatim.
func (c *Client) Do(method, path string, payload, out any) ([]byte, *http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: c.Token})
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(raw))}
		var parsed struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
			apiErr.Message = parsed.Error
			apiErr.Fields = parsed.Fields
		}
		return raw, resp, apiErr
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return raw, resp, nil
}

// TokenFrom returns the session token set by resp, if any.
func TokenFrom(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == tokenCookie {
			return c.Value
		}
	}
	return ""
}
