package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/rs/zerolog"

	"github.com/Williamfew09/youtube-dashboard/internal/metrics"
)

// upstream wraps a Fiber HTTP client with the per-call timeout, metrics and
// logging shared by every reader.
type upstream struct {
	http    *client.Client
	timeout time.Duration
	log     zerolog.Logger
}

func newUpstream(timeout time.Duration, log zerolog.Logger) upstream {
	return upstream{
		http:    client.New(),
		timeout: timeout,
		log:     log,
	}
}

// get issues one GET and returns the body of a 2xx response. No retries.
func (u upstream) get(ctx context.Context, source, url string, params map[string]string) ([]byte, error) {
	start := time.Now()
	body, err := u.do(ctx, url, params)
	metrics.Metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	return body, err
}

func (u upstream) do(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	resp, err := u.http.Get(url, client.Config{
		Ctx:     ctx,
		Param:   params,
		Timeout: u.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("get %s: %w (%d)", url, ErrUpstreamStatus, status)
	}

	// Body is backed by a pooled buffer released on Close.
	return append([]byte(nil), resp.Body()...), nil
}

// fail records a degraded read.
func (u upstream) fail(source string, err error, msg string) {
	metrics.Metrics.UpstreamFailures.WithLabelValues(source).Inc()
	u.log.Warn().Err(err).Str("source", source).Msg(msg)
}
