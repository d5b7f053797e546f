// Package paymenttest provides an in-memory payment.Provider for tests.
package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/sefazor/gracex-storefront/pkg/payment"
)

// Provider records every call and answers from its fields. Prices is keyed by
// lookup key, Sessions by checkout session id. The *Err fields force failures.
type Provider struct {
	mu sync.Mutex

	Prices   map[string]payment.Price
	Sessions map[string]payment.CheckoutSession

	CheckoutURL string
	PortalURL   string

	ListErr     error
	CheckoutErr error
	GetErr      error
	PortalErr   error

	LookupCalls   []string
	CheckoutCalls []payment.CheckoutSessionParams
	GetCalls      []string
	PortalCalls   []PortalCall
}

type PortalCall struct {
	CustomerID string
	ReturnURL  string
}

var _ payment.Provider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{
		Prices:      map[string]payment.Price{},
		Sessions:    map[string]payment.CheckoutSession{},
		CheckoutURL: "https://checkout.stripe.test/c/pay/cs_test_fake",
		PortalURL:   "https://billing.stripe.test/p/session/bps_test_fake",
	}
}

func (p *Provider) FindPriceByLookupKey(_ context.Context, lookupKey string) (*payment.Price, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.LookupCalls = append(p.LookupCalls, lookupKey)
	if p.ListErr != nil {
		return nil, p.ListErr
	}
	pr, ok := p.Prices[lookupKey]
	if !ok {
		return nil, payment.ErrPriceNotFound
	}
	return &pr, nil
}

func (p *Provider) CreateCheckoutSession(_ context.Context, params payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.CheckoutCalls = append(p.CheckoutCalls, params)
	if p.CheckoutErr != nil {
		return nil, p.CheckoutErr
	}
	id := fmt.Sprintf("cs_test_%d", len(p.CheckoutCalls))
	return &payment.CheckoutSession{ID: id, URL: p.CheckoutURL}, nil
}

func (p *Provider) GetCheckoutSession(_ context.Context, id string) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.GetCalls = append(p.GetCalls, id)
	if p.GetErr != nil {
		return nil, p.GetErr
	}
	sess, ok := p.Sessions[id]
	if !ok {
		return nil, fmt.Errorf("retrieve checkout session: No such checkout.session: '%s'", id)
	}
	return &sess, nil
}

func (p *Provider) CreatePortalSession(_ context.Context, customerID, returnURL string) (*payment.PortalSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.PortalCalls = append(p.PortalCalls, PortalCall{CustomerID: customerID, ReturnURL: returnURL})
	if p.PortalErr != nil {
		return nil, p.PortalErr
	}
	return &payment.PortalSession{ID: "bps_test_fake", URL: p.PortalURL}, nil
}

// ConstructEvent uses the real Stripe signing scheme so tests can sign payloads
// with webhook.GenerateTestSignedPayload.
func (p *Provider) ConstructEvent(payload []byte, signature, secret string) (*payment.Event, error) {
	return payment.VerifyEvent(payload, signature, secret)
}
