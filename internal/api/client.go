// Package api talks to the Disney characters endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/verte-zerg/disneydash/internal/logging"
	"github.com/verte-zerg/disneydash/internal/model"
	"github.com/verte-zerg/disneydash/internal/query"
)

const (
	// DefaultBaseURL is the public Disney API.
	DefaultBaseURL = "https://api.disneyapi.dev"

	charactersPath   = "/character"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "disneydash"
	maxBodyBytes     = 8 << 20
	breakerTrips     = 5
	breakerCooldown  = 30 * time.Second
)

// Fetcher performs the characters request.
type Fetcher interface {
	GetCharacters(ctx context.Context, params map[string]any) (model.CharactersResponse, error)
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second; 0 disables pacing.
	RateLimit float64
	Burst     int
	UserAgent string
}

// Client is an HTTP Fetcher with pacing and a circuit breaker.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[model.CharactersResponse]
}

// New builds a Client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, burst),
	}
	c.cb = gobreaker.NewCircuitBreaker[model.CharactersResponse](gobreaker.Settings{
		Name:    "characters-api",
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return c
}

// GetCharacters requests one page of characters. params are normalized
// before they are encoded, so empty filters never reach the server.
func (c *Client) GetCharacters(ctx context.Context, params map[string]any) (model.CharactersResponse, error) {
	resp, err := c.cb.Execute(func() (model.CharactersResponse, error) {
		return c.get(ctx, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return model.CharactersResponse{}, fmt.Errorf("characters api unavailable: %w", err)
		}
		return model.CharactersResponse{}, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, params map[string]any) (model.CharactersResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.CharactersResponse{}, fmt.Errorf("rate limiter: %w", err)
	}
	url := c.baseURL + charactersPath
	if encoded := query.Encode(params).Encode(); encoded != "" {
		url += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return model.CharactersResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return model.CharactersResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return model.CharactersResponse{}, fmt.Errorf("unexpected status: %s", res.Status)
	}

	var payload model.CharactersResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return model.CharactersResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload, nil
}
