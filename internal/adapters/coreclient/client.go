// Package coreclient adapts the guardcore SDK to the CLI's CoreClient port.
package coreclient

import (
	"context"
	"net/http"
	"time"

	"github.com/bnema/guardcore-cli/internal/ports"
	"github.com/bnema/guardcore-cli/pkg/guardcore"
	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/rs/zerolog"
)

// Client builds a guardcore.API per call so profiles on different servers
// share one HTTP client.
type Client struct {
	httpClient   *http.Client
	timeout      time.Duration
	usageSegment string
	logger       zerolog.Logger
}

var _ ports.CoreClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUsageSegment switches the usage-log path segment, for example to
// guardcore.UsageSegmentLegacy.
func WithUsageSegment(segment string) Option {
	return func(c *Client) {
		c.usageSegment = segment
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		timeout:    core.DefaultTimeout,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// API returns the SDK entry point for baseURL.
func (c *Client) API(baseURL string) guardcore.API {
	if baseURL == "" {
		baseURL = core.DefaultBaseURL
	}

	return guardcore.API{
		Core:         core.Core{BaseURL: baseURL, HTTPClient: c.httpClient, Timeout: c.timeout},
		UsageSegment: c.usageSegment,
	}
}

func (c *Client) GenerateAdminToken(ctx context.Context, baseURL, username, password string) (types.AdminToken, error) {
	defer c.trace("generate_admin_token", baseURL)()
	return c.API(baseURL).GenerateAdminToken(ctx, username, password)
}

func (c *Client) GetCurrentAdmin(ctx context.Context, baseURL string, creds core.Credentials) (types.AdminResponse, error) {
	defer c.trace("get_current_admin", baseURL)()
	return c.API(baseURL).GetCurrentAdmin(ctx, creds)
}

func (c *Client) GetCurrentAdminUsages(ctx context.Context, baseURL string, creds core.Credentials) (types.AdminUsageLogsResponse, error) {
	defer c.trace("get_current_admin_usages", baseURL)()
	return c.API(baseURL).GetCurrentAdminUsages(ctx, creds)
}

func (c *Client) GetSubscriptionStats(ctx context.Context, baseURL string, creds core.Credentials) (types.SubscriptionStatsResponse, error) {
	defer c.trace("get_subscription_stats", baseURL)()
	return c.API(baseURL).GetSubscriptionStats(ctx, creds)
}

func (c *Client) trace(op string, baseURL string) func() {
	start := time.Now()
	return func() {
		c.logger.Debug().Str("op", op).Str("base_url", baseURL).Dur("elapsed", time.Since(start)).Msg("core request")
	}
}
