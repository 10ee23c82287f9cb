package client

import (
	"time"

	"stockplatform/metrics"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// NewOutboundLimiter is shared by every provider client so a burst of inbound
// requests cannot turn into an unbounded burst of outbound calls. A
// non-positive rps disables throttling.
func NewOutboundLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// instrument wires the shared limiter and provider metrics into a resty client.
func instrument(c *resty.Client, provider string, limiter *rate.Limiter, m *metrics.Metrics) {
	if limiter != nil {
		c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		var err error
		if resp.IsError() {
			err = errStatus
		}
		m.ObserveUpstream(provider, err, resp.Time())
		return nil
	})
	c.OnError(func(req *resty.Request, err error) {
		m.ObserveUpstream(provider, err, time.Since(req.Time))
	})
}
