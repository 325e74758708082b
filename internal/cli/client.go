// Package cli implements the vibectl command line client. It talks to a
// running server over REST rather than opening the store directly, so the
// single-running-timer invariant is enforced in exactly one process.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/summary"
)

// Client calls the vibe timer REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ServerError is a non-2xx reply decoded from the server's error body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server: %s (status %d)", e.Message, e.Status)
}

type sessionPayload struct {
	Date  string `json:"date"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// List returns the ledger entries for a date.
func (c *Client) List(ctx context.Context, date string) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	err := c.do(ctx, http.MethodGet, "/api/vibe-sessions?date="+url.QueryEscape(date), nil, &entries)
	return entries, err
}

// Create registers a new vibe on the given date.
func (c *Client) Create(ctx context.Context, date, name, color string) (*ledger.Entry, error) {
	var entry ledger.Entry
	err := c.do(ctx, http.MethodPost, "/api/vibe-sessions",
		sessionPayload{Date: date, Name: name, Color: color}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Edit renames or recolors a vibe.
func (c *Client) Edit(ctx context.Context, date, vibeID, name, color string) error {
	return c.do(ctx, http.MethodPut, "/api/vibe-sessions/"+url.PathEscape(vibeID),
		sessionPayload{Date: date, Name: name, Color: color}, nil)
}

// Delete removes a vibe and its entry for the given date.
func (c *Client) Delete(ctx context.Context, date, vibeID string) error {
	path := fmt.Sprintf("/api/vibe-sessions/%s?date=%s", url.PathEscape(vibeID), url.QueryEscape(date))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Start starts the timer for a vibe.
func (c *Client) Start(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	var entry ledger.Entry
	err := c.do(ctx, http.MethodPost, "/api/vibe-sessions/"+url.PathEscape(vibeID)+"/start",
		sessionPayload{Date: date}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Stop stops the timer for a vibe.
func (c *Client) Stop(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	var entry ledger.Entry
	err := c.do(ctx, http.MethodPost, "/api/vibe-sessions/"+url.PathEscape(vibeID)+"/stop",
		sessionPayload{Date: date}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Reset zeroes every entry on the given date.
func (c *Client) Reset(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodPost, "/api/vibe-sessions/reset", sessionPayload{Date: date}, nil)
}

// Running returns the currently running entry, or nil when idle.
func (c *Client) Running(ctx context.Context) (*ledger.Entry, error) {
	var resp struct {
		Running *ledger.Entry `json:"running"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vibe-sessions/running", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Running, nil
}

// Summary returns the distribution report for a date.
func (c *Client) Summary(ctx context.Context, date string) (*summary.Report, error) {
	var report summary.Report
	err := c.do(ctx, http.MethodGet, "/api/summary?date="+url.QueryEscape(date), nil, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveVibe finds a vibe on a date by id or case-insensitive name.
func (c *Client) ResolveVibe(ctx context.Context, date, ref string) (*ledger.Entry, error) {
	entries, err := c.List(ctx, date)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].VibeID == ref || strings.EqualFold(entries[i].Name, ref) {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("no vibe named %q on %s", ref, date)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
