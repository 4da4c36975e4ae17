// Package tradingview posts scan payloads to the TradingView scanner endpoint.
package tradingview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"FinScreen/internal/domain/repository"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://scanner.tradingview.com"
	defaultUserAgent = "FinScreen/1.0"
)

type Config struct {
	// RPS caps outgoing requests per second. Zero disables the limit.
	RPS       float64
	Burst     int
	UserAgent string
}

// Client implements repository.Transport with resty.
type Client struct {
	rc      *resty.Client
	limiter *rate.Limiter
}

var _ repository.Transport = (*Client)(nil)

func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	rc := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", ua)

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{rc: rc, limiter: rate.NewLimiter(limit, burst)}
}

// Post sends body to url. Elapsed timeouts wrap repository.ErrTransportTimeout.
func (c *Client) Post(ctx context.Context, url string, body []byte, timeout time.Duration) (*repository.TransportResponse, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails early, with ctx.Err() still nil, when the reservation would outlive the deadline.
		if _, ok := ctx.Deadline(); ok && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: rate limit wait: %v", repository.ErrTransportTimeout, err)
		}
		return nil, classify(ctx, fmt.Errorf("rate limit wait: %w", err))
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return &repository.TransportResponse{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

func classify(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", repository.ErrTransportTimeout, err)
	}
	return err
}

// StatusOK is the only status treated as success by the scanner API.
func StatusOK(code int) bool { return code == http.StatusOK }
