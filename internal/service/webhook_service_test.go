package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/pkg/payment/paymenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, secret, payload string) ([]byte, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return sp.Payload, sp.Header
}

func newWebhookService(secret string) (*WebhookService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewWebhookService(paymenttest.NewProvider(), secret, zap.New(core)), logs
}

func receivedLogs(logs *observer.ObservedLogs) []observer.LoggedEntry {
	return logs.FilterMessage("webhook received").All()
}

func TestHandleEventVerified(t *testing.T) {
	svc, logs := newWebhookService(testWebhookSecret)
	body, header := signPayload(t, testWebhookSecret,
		`{"id":"evt_1","object":"event","type":"customer.subscription.created","data":{"object":{}}}`)

	event, err := svc.HandleEvent(body, header)
	require.NoError(t, err)
	assert.Equal(t, "customer.subscription.created", event.Type)
	assert.True(t, event.Verified)

	entries := receivedLogs(logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "customer.subscription.created", entries[0].ContextMap()["event_type"])
	assert.Equal(t, "evt_1", entries[0].ContextMap()["event_id"])
}

func TestHandleEventRejectsBadSignatures(t *testing.T) {
	payload := `{"id":"evt_1","object":"event","type":"invoice.paid","data":{"object":{}}}`

	tests := []struct {
		name   string
		mutate func(body []byte, header string) ([]byte, string)
	}{
		{"tampered payload", func(body []byte, header string) ([]byte, string) {
			return []byte(`{"id":"evt_1","object":"event","type":"invoice.voided","data":{"object":{}}}`), header
		}},
		{"wrong secret", func(body []byte, _ string) ([]byte, string) {
			_, header := signPayload(t, "whsec_attacker", payload)
			return body, header
		}},
		{"missing header", func(body []byte, _ string) ([]byte, string) {
			return body, ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newWebhookService(testWebhookSecret)
			body, header := tt.mutate(signPayload(t, testWebhookSecret, payload))

			_, err := svc.HandleEvent(body, header)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrSignatureInvalid))
			assert.Equal(t, 400, apperrors.StatusOf(err))
			assert.Empty(t, receivedLogs(logs))
		})
	}
}

func TestHandleEventWithoutSecret(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"event json", `{"id":"evt_2","type":"checkout.session.completed"}`, "checkout.session.completed"},
		{"no type", `{"id":"evt_3"}`, "unknown"},
		{"not json", `hello`, "unknown"},
		{"empty", ``, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newWebhookService("")

			event, err := svc.HandleEvent([]byte(tt.payload), "t=1,v1=garbage")
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.Type)
			assert.False(t, event.Verified)

			entries := receivedLogs(logs)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].ContextMap()["event_type"])
		})
	}
}

func TestNewWebhookServiceWarnsWithoutSecret(t *testing.T) {
	_, logs := newWebhookService("")
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	_, logs = newWebhookService(testWebhookSecret)
	assert.Equal(t, 0, logs.Len())
}
