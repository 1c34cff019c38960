package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pefman/champion-duel/internal/game"
	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/stats"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

var ErrNotFound = errors.New("session not found")

// Config holds API configuration
type Config struct {
	BaseURL string
}

type Client struct {
	config Config
	http   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL},
		http:   httpClient,
	}
}

// Session mirrors the server's session view.
type Session struct {
	ID    string          `json:"id"`
	State models.Snapshot `json:"state"`
	Log   []string        `json:"log"`
}

type Turn struct {
	Outcome game.TurnOutcome `json:"outcome"`
	Session Session          `json:"session"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, method, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiError
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Message != "" {
			return fmt.Errorf("api status %d: %s", resp.StatusCode, e.Message)
		}
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) CreateSession(ctx context.Context) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/sessions", &s)
	return s, err
}

func (c *Client) GetSession(ctx context.Context, id string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodGet, "/api/sessions/"+id, &s)
	return s, err
}

func (c *Client) Attack(ctx context.Context, id string) (Turn, error) {
	var t Turn
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+id+"/attack", &t)
	return t, err
}

func (c *Client) Reset(ctx context.Context, id string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+id+"/reset", &s)
	return s, err
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+id, nil)
}

func (c *Client) Stats(ctx context.Context) (stats.Summary, error) {
	var s stats.Summary
	err := c.do(ctx, http.MethodGet, "/api/stats", &s)
	return s, err
}
