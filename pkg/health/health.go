package health

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// Endpoint is the health check path every provisioned application must
	// serve.
	Endpoint = "/health"

	defaultRequestTimeout = 5 * time.Second
	defaultPollInterval   = 2 * time.Second
)

// Checker probes application health endpoints.
type Checker struct {
	client   *resty.Client
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewChecker builds a Checker. A nil logger disables logging.
func NewChecker(log *zap.SugaredLogger) *Checker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Checker{
		client:   resty.New().SetTimeout(defaultRequestTimeout),
		interval: defaultPollInterval,
		log:      log.With("component", "HealthChecker"),
	}
}

// WithInterval overrides the poll interval used by Wait.
func (c *Checker) WithInterval(interval time.Duration) *Checker {
	c.interval = interval
	return c
}

// Check performs one probe against baseURL's /health endpoint. Healthy means
// an HTTP 200 response.
func (c *Checker) Check(ctx context.Context, baseURL string) error {
	resp, err := c.client.R().SetContext(ctx).Get(baseURL + Endpoint)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}
	return nil
}

// Wait polls /health until it reports healthy or the context is done. Used
// after starting the service and before registering the scrape target, so a
// dead application never reaches the proxy config.
func (c *Checker) Wait(ctx context.Context, baseURL string) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		err := c.Check(ctx, baseURL)
		if err == nil {
			c.log.Infow("application healthy", "url", baseURL)
			return nil
		}
		c.log.Debugw("application not healthy yet", "url", baseURL, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up waiting for %s%s: %w", baseURL, Endpoint, ctx.Err())
		case <-ticker.C:
		}
	}
}
