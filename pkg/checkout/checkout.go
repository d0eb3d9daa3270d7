// Package checkout sends users to the hosted payment page and validates the
// redirect that brings them back.
//
// The payment link must redirect to the success endpoint with the provider
// session id, e.g. /api/checkout/success?session_id={CHECKOUT_SESSION_ID}.
// The session is looked up with the provider before the user is upgraded and
// each session and state can only be redeemed once.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	DefaultTTL = time.Hour
	audience   = "checkout"
)

var (
	ErrInvalidState = errors.New("checkout: invalid state")
	ErrNotPaid      = errors.New("checkout: payment not completed")
	ErrRedeemed     = errors.New("checkout: already redeemed")
)

// Payment is the provider's view of a checkout session.
type Payment struct {
	SessionID string
	// Reference is the client reference id sent with the payment link.
	Reference string
	Paid      bool
}

// Provider looks up checkout sessions with the payment provider.
type Provider interface {
	Payment(ctx context.Context, sessionID string) (*Payment, error)
}

// Ledger remembers redeemed sessions and states.
type Ledger interface {
	Redeem(ctx context.Context, sessionID, stateID, userID string) (bool, error)
}

type Config struct {
	// PaymentLink is the hosted payment page, e.g. a Stripe payment link.
	PaymentLink string
	// Secret signs the state tokens.
	Secret string
	TTL    time.Duration
	Debug  bool

	// Provider and Ledger are only needed to complete checkouts.
	Provider Provider
	Ledger   Ledger
}

// Session is a started checkout. State travels in a cookie, never in the
// response body.
type Session struct {
	URL   string `json:"url" yaml:"url"`
	State string `json:"-" yaml:"-"`
}

type Checkout struct {
	link     *url.URL
	secret   []byte
	ttl      time.Duration
	provider Provider
	ledger   Ledger
	debug    func(format string, args ...interface{})
	now      func() time.Time
}

func New(cfg *Config) (*Checkout, error) {
	if cfg.PaymentLink == "" {
		return nil, errors.New("checkout: payment link is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("checkout: secret is required")
	}
	u, err := url.Parse(cfg.PaymentLink)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("checkout: invalid payment link %q", cfg.PaymentLink)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}
	return &Checkout{
		link:     u,
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		provider: cfg.Provider,
		ledger:   cfg.Ledger,
		debug:    debug,
		now:      time.Now,
	}, nil
}

type stateClaims struct {
	jwt.RegisteredClaims
}

// Start returns the payment URL for the user and the state to check when the
// user comes back.
func (c *Checkout) Start(userID, email string) (*Session, error) {
	if userID == "" {
		return nil, errors.New("checkout: user id is required")
	}
	now := c.now()
	claims := stateClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        ulid.Make().String(),
		Subject:   userID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("checkout: couldn't sign state: %w", err)
	}

	u := *c.link
	q := u.Query()
	q.Set("client_reference_id", userID)
	if email != "" {
		q.Set("prefilled_email", email)
	}
	u.RawQuery = q.Encode()
	c.debug("checkout: started for %s", userID)
	return &Session{URL: u.String(), State: state}, nil
}

// Complete checks that the state was issued to the user and that the provider
// session of the redirect is paid for that user. A session or state that was
// already redeemed returns ErrRedeemed.
func (c *Checkout) Complete(ctx context.Context, userID, state, sessionID string) error {
	claims := &stateClaims{}
	t, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !t.Valid || claims.ID == "" || claims.Subject == "" || claims.Subject != userID {
		return ErrInvalidState
	}
	if sessionID == "" {
		return ErrNotPaid
	}
	if c.provider == nil || c.ledger == nil {
		return errors.New("checkout: payment provider isn't configured")
	}

	p, err := c.provider.Payment(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("checkout: couldn't get session %s: %w", sessionID, err)
	}
	if p.Reference != claims.Subject {
		return ErrInvalidState
	}
	if !p.Paid {
		return ErrNotPaid
	}

	ok, err := c.ledger.Redeem(ctx, sessionID, claims.ID, claims.Subject)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if !ok {
		return ErrRedeemed
	}
	c.debug("checkout: completed for %s (%s)", claims.Subject, sessionID)
	return nil
}

// Cancel handles the user returning without paying. Nothing is stored.
func (c *Checkout) Cancel(userID string) {
	log.Printf("checkout: cancelled by %s\n", userID)
}
