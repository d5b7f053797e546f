package service

import (
	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/pkg/payment"
	"go.uber.org/zap"
)

const unknownEventType = "unknown"

type WebhookService struct {
	provider payment.Provider
	secret   string
	log      *zap.Logger
}

func NewWebhookService(provider payment.Provider, secret string, log *zap.Logger) *WebhookService {
	if secret == "" {
		log.Warn("webhook secret not set, webhook signatures will not be verified")
	}
	return &WebhookService{
		provider: provider,
		secret:   secret,
		log:      log.Named("webhook"),
	}
}

// WebhookEvent is what HandleEvent learned about a delivery. Verified is false
// when no secret is configured, in which case Type is caller-controlled.
type WebhookEvent struct {
	Type     string
	Verified bool
}

// HandleEvent verifies payload (when a secret is configured), logs its type and
// returns it. payload must be the unmodified request body.
func (s *WebhookService) HandleEvent(payload []byte, signature string) (WebhookEvent, error) {
	var (
		event *payment.Event
		err   error
	)

	if s.secret != "" {
		event, err = s.provider.ConstructEvent(payload, signature, s.secret)
		if err != nil {
			s.log.Warn("webhook signature verification failed", zap.Error(err))
			return WebhookEvent{}, apperrors.SignatureInvalid(err)
		}
	} else {
		// Unverified: anything is accepted.
		event, err = payment.ParseEvent(payload)
		if err != nil {
			s.log.Debug("unverified webhook body is not an event", zap.Error(err))
			event = &payment.Event{}
		}
	}

	eventType := event.Type
	if eventType == "" {
		eventType = unknownEventType
	}

	// No per-type handling yet; customer.subscription.* events land here.
	fields := []zap.Field{zap.String("event_type", eventType)}
	if event.ID != "" {
		fields = append(fields, zap.String("event_id", event.ID))
	}
	s.log.Info("webhook received", fields...)

	return WebhookEvent{Type: eventType, Verified: s.secret != ""}, nil
}
