package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sefazor/gracex-storefront/internal/apperrors"
)

const namespace = "gracex"

var (
	// HTTPRequestsTotal counts requests by route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// CheckoutSessionsTotal counts checkout attempts by tier and outcome.
	CheckoutSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "checkout_sessions_total",
		Help:      "Checkout session attempts by tier and outcome.",
	}, []string{"tier", "outcome"})

	PortalSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "portal_sessions_total",
		Help:      "Billing portal session attempts by outcome.",
	}, []string{"outcome"})

	// WebhookRequestsTotal counts Stripe webhook requests by event type and HTTP status.
	// Unsigned deliveries are all labelled UnverifiedEventType.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "webhook_requests_total",
		Help:      "Stripe webhook requests by event type and HTTP status.",
	}, []string{"event_type", "status"})

	WebhookDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "webhook_duration_seconds",
		Help:      "Stripe webhook handling duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"event_type"})

	KeyActivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "admin",
		Name:      "key_activations_total",
		Help:      "Admin key activation attempts by outcome.",
	}, []string{"outcome"})
)

// UnverifiedEventType labels webhook deliveries whose type was not signed.
const UnverifiedEventType = "unverified"

// Outcome labels shared by the billing counters.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeMisconfigured = "misconfigured"
	OutcomeForbidden     = "forbidden"
	OutcomeUpstreamError = "upstream_error"
)

// Outcome maps a request error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrSignatureInvalid):
		return OutcomeInvalidInput
	case errors.Is(err, apperrors.ErrConfiguration):
		return OutcomeMisconfigured
	case errors.Is(err, apperrors.ErrForbidden):
		return OutcomeForbidden
	default:
		return OutcomeUpstreamError
	}
}
