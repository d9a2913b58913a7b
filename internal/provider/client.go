package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/threat-ingest/internal/config"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/phrazzld/threat-ingest/internal/redact"
)

// maxBodySize caps how much of a provider response is read.
const maxBodySize = 64 << 20

// Client fetches both provider feeds over HTTP.
type Client struct {
	httpClient *http.Client
	urlA       string
	urlB       string
	schema     *payloadSchema
	logger     *slog.Logger
}

// NewClient creates a Client for the configured provider URLs. If logger is
// nil, the default logger is used.
func NewClient(cfg config.ProvidersConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := loadProviderASchema()
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		// The default client follows redirects.
		httpClient: &http.Client{Timeout: timeout},
		urlA:       cfg.ProviderAURL,
		urlB:       cfg.ProviderBURL,
		schema:     schema,
		logger:     logger.With(slog.String("component", "provider_client")),
	}, nil
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, name, url string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger).With(
		slog.String("provider", name),
		slog.String("url", redact.URL(url)),
	)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for provider %s: %w", name, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("provider request failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("provider %s request failed: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("provider returned error status", slog.Int("status", resp.StatusCode))
		return nil, &StatusError{Provider: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider %s response: %w", name, err)
	}

	log.Debug("provider response received",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return body, nil
}
