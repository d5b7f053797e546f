package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	portalsession "github.com/stripe/stripe-go/v74/billingportal/session"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/webhook"
)

type StripeService struct {
	secretKey string
}

var _ Provider = (*StripeService)(nil)

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

func (s *StripeService) FindPriceByLookupKey(ctx context.Context, lookupKey string) (*Price, error) {
	params := &stripe.PriceListParams{
		Active:     stripe.Bool(true),
		LookupKeys: stripe.StringSlice([]string{lookupKey}),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	params.AddExpand("data.product")

	iter := price.List(params)
	if iter.Next() {
		p := iter.Price()
		found := &Price{
			ID:        p.ID,
			LookupKey: p.LookupKey,
		}
		if p.Product != nil {
			found.ProductName = p.Product.Name
		}
		return found, nil
	}
	if err := iter.Err(); err != nil {
		return nil, wrapStripeError("list prices", err)
	}

	return nil, ErrPriceNotFound
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, in CheckoutSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		AllowPromotionCodes: stripe.Bool(in.AllowPromotionCodes),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(in.Quantity),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: in.Metadata,
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	if in.BillingAddressCollection != "" {
		params.BillingAddressCollection = stripe.String(in.BillingAddressCollection)
	}
	if in.TrialPeriodDays > 0 {
		params.SubscriptionData.TrialPeriodDays = stripe.Int64(in.TrialPeriodDays)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, wrapStripeError("create checkout session", err)
	}

	return toCheckoutSession(sess), nil
}

func (s *StripeService) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(id, params)
	if err != nil {
		return nil, wrapStripeError("retrieve checkout session", err)
	}

	return toCheckoutSession(sess), nil
}

func (s *StripeService) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return nil, wrapStripeError("create billing portal session", err)
	}

	return &PortalSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func (s *StripeService) ConstructEvent(payload []byte, signature, secret string) (*Event, error) {
	return VerifyEvent(payload, signature, secret)
}

// VerifyEvent checks a Stripe-Signature header. API version mismatches between the
// account and the pinned library version are ignored; only the signature matters here.
func VerifyEvent(payload []byte, signature, secret string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	return &Event{
		ID:   event.ID,
		Type: string(event.Type),
	}, nil
}

// ParseEvent decodes an event without checking any signature.
func ParseEvent(payload []byte) (*Event, error) {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}

	return &Event{
		ID:   raw.ID,
		Type: raw.Type,
	}, nil
}

func toCheckoutSession(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	return out
}
