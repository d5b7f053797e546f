package payment

import (
	"context"
	"errors"
)

// ErrPriceNotFound is returned when no active price carries the requested lookup key.
var ErrPriceNotFound = errors.New("price not found")

type Price struct {
	ID          string
	LookupKey   string
	ProductName string
}

type CheckoutSessionParams struct {
	PriceID                  string
	Quantity                 int64
	TrialPeriodDays          int64
	AllowPromotionCodes      bool
	BillingAddressCollection string
	Metadata                 map[string]string
	SuccessURL               string
	CancelURL                string
}

type CheckoutSession struct {
	ID         string
	URL        string
	CustomerID string
}

type PortalSession struct {
	ID  string
	URL string
}

type Event struct {
	ID   string
	Type string
}

// Provider is the subset of the billing API the storefront needs.
type Provider interface {
	// FindPriceByLookupKey returns ErrPriceNotFound when nothing matches.
	FindPriceByLookupKey(ctx context.Context, lookupKey string) (*Price, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error)
	// ConstructEvent verifies the signature header against secret and decodes the event.
	ConstructEvent(payload []byte, signature, secret string) (*Event, error)
}
