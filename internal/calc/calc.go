// Package calc is the client for the remote recognition endpoint. It posts a
// PNG data URL together with the known variable bindings and decodes the
// reply into an Outcome.
package calc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/canvas"
)

// Path is the endpoint path appended to the base URL.
const Path = "/calculate-results"

// DefaultTimeout bounds a single request when the caller's context does not.
const DefaultTimeout = 30 * time.Second

// ErrTransport marks failures to obtain a usable reply: network errors,
// non-2xx statuses and undecodable bodies.
var ErrTransport = errors.New("transport failure")

// Request is the JSON body sent to the endpoint.
type Request struct {
	Image string            `json:"image"`
	Vars  map[string]string `json:"dict_of_vars"`
}

// Calculator is implemented by Client and by test doubles.
type Calculator interface {
	Calculate(ctx context.Context, img image.Image, vars map[string]string) (Outcome, error)
}

// Client talks to one endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for baseURL with DefaultTimeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Endpoint returns the full request URL.
func (c *Client) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + Path
}

// Calculate encodes img and posts it. Network, status and decode failures
// wrap ErrTransport; application-level failures are reported as Failure.
func (c *Client) Calculate(ctx context.Context, img image.Image, vars map[string]string) (Outcome, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, fmt.Errorf("calculate: no endpoint configured: %w", ErrTransport)
	}
	url, err := canvas.DataURL(img)
	if err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}
	if vars == nil {
		vars = map[string]string{}
	}
	body, err := json.Marshal(Request{Image: url, Vars: vars})
	if err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("calculate: %v: %w", err, ErrTransport)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calculate: %v: %w", err, ErrTransport)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("calculate: read body: %v: %w", err, ErrTransport)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("calculate: status %d: %s: %w", resp.StatusCode, snippet(respBody), ErrTransport)
	}
	out, err := Decode(respBody)
	if err != nil {
		return nil, fmt.Errorf("calculate: %v: %w", err, ErrTransport)
	}
	return out, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
