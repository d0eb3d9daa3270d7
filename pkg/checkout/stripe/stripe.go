// Package stripe looks up checkout sessions with the Stripe REST API.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/igolaizola/musicprompt/pkg/checkout"
)

const defaultBaseURL = "https://api.stripe.com/v1"

type Config struct {
	// Key is the secret api key.
	Key     string
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

type Client struct {
	client  *http.Client
	key     string
	baseURL string
	debug   bool
}

func New(cfg *Config) (*Client, error) {
	if cfg.Key == "" {
		return nil, errors.New("stripe: key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		key:     cfg.Key,
		baseURL: base,
		debug:   cfg.Debug,
	}, nil
}

func (c *Client) log(format string, args ...interface{}) {
	if c.debug {
		format += "\n"
		log.Printf(format, args...)
	}
}

type session struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
}

// Payment returns the checkout session. Only complete sessions that are paid,
// or that required no payment, count as paid.
func (c *Client) Payment(ctx context.Context, sessionID string) (*checkout.Payment, error) {
	var s session
	if err := c.do(ctx, "checkout/sessions/"+url.PathEscape(sessionID), &s); err != nil {
		return nil, err
	}
	paid := s.Status == "complete" &&
		(s.PaymentStatus == "paid" || s.PaymentStatus == "no_payment_required")
	return &checkout.Payment{
		SessionID: s.ID,
		Reference: s.ClientReferenceID,
		Paid:      paid,
	}, nil
}

var backoff = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	15 * time.Second,
}

func (c *Client) do(ctx context.Context, path string, out any) error {
	maxAttempts := 3
	attempts := 0
	for {
		err := c.doAttempt(ctx, path, out)
		if err == nil {
			return nil
		}
		attempts++
		if attempts >= maxAttempts {
			return err
		}

		var netErr net.Error
		var errStatus errStatusCode
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
		case errors.As(err, &errStatus):
			switch int(errStatus) {
			case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
				http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			default:
				return err
			}
		default:
			return err
		}

		idx := attempts - 1
		if idx >= len(backoff) {
			idx = len(backoff) - 1
		}
		wait := backoff[idx]
		c.log("stripe: %v, waiting %s before retrying", err, wait)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

type errStatusCode int

func (e errStatusCode) Error() string {
	return fmt.Sprintf("%d", e)
}

func (c *Client) doAttempt(ctx context.Context, path string, out any) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	c.log("stripe: do GET %s", u)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("stripe: couldn't create request: %w", err)
	}
	req.SetBasicAuth(c.key, "")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("stripe: couldn't do request: %w", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("stripe: couldn't read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stripe: %s returned %s: %w", path, string(b), errStatusCode(resp.StatusCode))
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("stripe: couldn't unmarshal response body (%s): %w", string(b), err)
	}
	return nil
}
