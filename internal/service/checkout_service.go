package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/internal/config"
	"github.com/sefazor/gracex-storefront/internal/metrics"
	"github.com/sefazor/gracex-storefront/internal/models"
	"github.com/sefazor/gracex-storefront/pkg/payment"
	"go.uber.org/zap"
)

// TierMetadataKey tags both the checkout session and the subscription with the tier.
const TierMetadataKey = "gracex_tier"

// Stripe substitutes this placeholder in the success URL.
const checkoutSessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

type CheckoutService struct {
	provider  payment.Provider
	tiers     *TierRegistry
	appDomain string
	trialDays int64
	log       *zap.Logger
}

func NewCheckoutService(provider payment.Provider, tiers *TierRegistry, cfg *config.Config, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		provider:  provider,
		tiers:     tiers,
		appDomain: strings.TrimRight(cfg.AppDomain, "/"),
		trialDays: int64(cfg.TrialDays),
		log:       log.Named("checkout"),
	}
}

// CreateCheckoutSession returns the hosted checkout URL for a subscription to rawTier.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, rawTier string) (string, error) {
	tier, ok := s.tiers.Resolve(rawTier)
	if !ok {
		metrics.CheckoutSessionsTotal.WithLabelValues("invalid", metrics.OutcomeInvalidInput).Inc()
		return "", apperrors.InvalidInput("Missing/invalid tier. Use " + strings.Join(s.tiers.Names(), " | "))
	}

	checkoutURL, err := s.createCheckoutSession(ctx, tier)
	metrics.CheckoutSessionsTotal.WithLabelValues(tier.Name, metrics.Outcome(err)).Inc()
	return checkoutURL, err
}

func (s *CheckoutService) createCheckoutSession(ctx context.Context, tier models.Tier) (string, error) {
	price, err := s.provider.FindPriceByLookupKey(ctx, tier.LookupKey)
	if errors.Is(err, payment.ErrPriceNotFound) {
		s.log.Error("no price for lookup key",
			zap.String("tier", tier.Name),
			zap.String("lookup_key", tier.LookupKey))
		return "", apperrors.Configuration(http.StatusBadRequest, fmt.Sprintf(
			"No Stripe price found for lookup key: %s (tier: %s). "+
				"Set the lookup key on the Stripe Price, or update your env vars.",
			tier.LookupKey, tier.Name))
	}
	if err != nil {
		s.log.Error("price lookup failed", zap.String("tier", tier.Name), zap.Error(err))
		return "", apperrors.Upstream(err)
	}

	metadata := map[string]string{TierMetadataKey: tier.Name}
	sess, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutSessionParams{
		PriceID:                  price.ID,
		Quantity:                 1,
		TrialPeriodDays:          s.trialDays,
		AllowPromotionCodes:      true,
		BillingAddressCollection: "auto",
		Metadata:                 metadata,
		SuccessURL:               s.successURL(tier.Name),
		CancelURL:                s.appDomain + "/cancel.html",
	})
	if err != nil {
		s.log.Error("create checkout session failed", zap.String("tier", tier.Name), zap.Error(err))
		return "", apperrors.Upstream(err)
	}
	if sess.URL == "" {
		return "", apperrors.Upstream(fmt.Errorf("checkout session %s has no url", sess.ID))
	}

	s.log.Info("checkout session created",
		zap.String("tier", tier.Name),
		zap.String("price_id", price.ID),
		zap.String("session_id", sess.ID))
	return sess.URL, nil
}

// The placeholder must reach Stripe unescaped, so the query is assembled by hand.
func (s *CheckoutService) successURL(tier string) string {
	return s.appDomain + "/success.html?session_id=" + checkoutSessionIDPlaceholder +
		"&tier=" + url.QueryEscape(tier)
}

// CreatePortalSession returns the billing portal URL for the customer behind a
// completed checkout session.
func (s *CheckoutService) CreatePortalSession(ctx context.Context, sessionID string) (string, error) {
	portalURL, err := s.createPortalSession(ctx, strings.TrimSpace(sessionID))
	metrics.PortalSessionsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	return portalURL, err
}

func (s *CheckoutService) createPortalSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("Missing session_id")
	}

	checkout, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.log.Error("retrieve checkout session failed", zap.String("session_id", sessionID), zap.Error(err))
		return "", apperrors.Upstream(err)
	}
	if checkout.CustomerID == "" {
		return "", apperrors.Upstream(fmt.Errorf("checkout session %s has no customer", sessionID))
	}

	portal, err := s.provider.CreatePortalSession(ctx, checkout.CustomerID, s.appDomain)
	if err != nil {
		s.log.Error("create portal session failed", zap.String("customer", checkout.CustomerID), zap.Error(err))
		return "", apperrors.Upstream(err)
	}

	return portal.URL, nil
}
