package checkout

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payments map[string]*Payment

func (p payments) Payment(_ context.Context, id string) (*Payment, error) {
	if v, ok := p[id]; ok {
		return v, nil
	}
	return nil, errors.New("no such session")
}

type ledger struct {
	sessions map[string]bool
	states   map[string]bool
}

func newLedger() *ledger {
	return &ledger{sessions: map[string]bool{}, states: map[string]bool{}}
}

func (l *ledger) Redeem(_ context.Context, sessionID, stateID, _ string) (bool, error) {
	if l.sessions[sessionID] || l.states[stateID] {
		return false, nil
	}
	l.sessions[sessionID] = true
	l.states[stateID] = true
	return true, nil
}

func newCheckout(t *testing.T, p payments) *Checkout {
	t.Helper()
	c, err := New(&Config{
		PaymentLink: "https://buy.stripe.com/test_123?locale=en",
		Secret:      "s3cr3t",
		Provider:    p,
		Ledger:      newLedger(),
	})
	require.NoError(t, err)
	return c
}

func TestStartComplete(t *testing.T) {
	ctx := context.Background()
	c := newCheckout(t, payments{
		"cs_paid": {SessionID: "cs_paid", Reference: "u1", Paid: true},
	})

	s, err := c.Start("u1", "a+b@example.com")
	require.NoError(t, err)

	u, err := url.Parse(s.URL)
	require.NoError(t, err)
	assert.Equal(t, "buy.stripe.com", u.Host)
	assert.Equal(t, "u1", u.Query().Get("client_reference_id"))
	assert.Equal(t, "a+b@example.com", u.Query().Get("prefilled_email"))
	assert.Equal(t, "en", u.Query().Get("locale"))

	require.NoError(t, c.Complete(ctx, "u1", s.State, "cs_paid"))
}

func TestCompleteRequiresPayment(t *testing.T) {
	ctx := context.Background()
	c := newCheckout(t, payments{
		"cs_paid":   {SessionID: "cs_paid", Reference: "u1", Paid: true},
		"cs_unpaid": {SessionID: "cs_unpaid", Reference: "u1"},
		"cs_other":  {SessionID: "cs_other", Reference: "u2", Paid: true},
	})
	s, err := c.Start("u1", "")
	require.NoError(t, err)

	// The state alone doesn't prove a payment.
	err = c.Complete(ctx, "u1", s.State, "")
	assert.ErrorIs(t, err, ErrNotPaid)
	err = c.Complete(ctx, "u1", s.State, "cs_unpaid")
	assert.ErrorIs(t, err, ErrNotPaid)
	err = c.Complete(ctx, "u1", s.State, "cs_other")
	assert.ErrorIs(t, err, ErrInvalidState)
	// Someone else holding the state can't use it.
	err = c.Complete(ctx, "u2", s.State, "cs_paid")
	assert.ErrorIs(t, err, ErrInvalidState)
	require.NoError(t, c.Complete(ctx, "u1", s.State, "cs_paid"))
	err = c.Complete(ctx, "u1", s.State, "cs_missing")
	assert.Error(t, err)
}

func TestCompleteOnce(t *testing.T) {
	ctx := context.Background()
	c := newCheckout(t, payments{
		"cs_1": {SessionID: "cs_1", Reference: "u1", Paid: true},
		"cs_2": {SessionID: "cs_2", Reference: "u1", Paid: true},
	})
	s, err := c.Start("u1", "")
	require.NoError(t, err)

	err = c.Complete(ctx, "u1", s.State, "cs_1")
	require.NoError(t, err)
	err = c.Complete(ctx, "u1", s.State, "cs_1")
	assert.ErrorIs(t, err, ErrRedeemed)
	err = c.Complete(ctx, "u1", s.State, "cs_2")
	assert.ErrorIs(t, err, ErrRedeemed)

	// A new state can't reuse a redeemed session either.
	s, err = c.Start("u1", "")
	require.NoError(t, err)
	err = c.Complete(ctx, "u1", s.State, "cs_1")
	assert.ErrorIs(t, err, ErrRedeemed)
}

func TestCompleteInvalid(t *testing.T) {
	ctx := context.Background()
	p := payments{"cs_paid": {SessionID: "cs_paid", Reference: "u1", Paid: true}}
	c, err := New(&Config{PaymentLink: "https://pay.example.com/link", Secret: "one", TTL: time.Minute, Provider: p, Ledger: newLedger()})
	require.NoError(t, err)
	other, err := New(&Config{PaymentLink: "https://pay.example.com/link", Secret: "two"})
	require.NoError(t, err)

	s, err := other.Start("u1", "")
	require.NoError(t, err)
	err = c.Complete(ctx, "u1", s.State, "cs_paid")
	assert.ErrorIs(t, err, ErrInvalidState)

	err = c.Complete(ctx, "u1", "", "cs_paid")
	assert.ErrorIs(t, err, ErrInvalidState)

	s, err = c.Start("u1", "")
	require.NoError(t, err)
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	err = c.Complete(ctx, "u1", s.State, "cs_paid")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCompleteWithoutProvider(t *testing.T) {
	c, err := New(&Config{PaymentLink: "https://pay.example.com/link", Secret: "one"})
	require.NoError(t, err)
	s, err := c.Start("u1", "")
	require.NoError(t, err)
	err = c.Complete(context.Background(), "u1", s.State, "cs_paid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidState)
}

func TestNewValidation(t *testing.T) {
	_, err := New(&Config{Secret: "x"})
	assert.Error(t, err)
	_, err = New(&Config{PaymentLink: "https://pay.example.com"})
	assert.Error(t, err)
	_, err = New(&Config{PaymentLink: "not a url", Secret: "x"})
	assert.Error(t, err)
}
