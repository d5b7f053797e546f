package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawTierPrecedence(t *testing.T) {
	tests := []struct {
		name string
		req  CreateCheckoutSessionRequest
		want string
	}{
		{"tier wins", CreateCheckoutSessionRequest{Tier: "pro", Plan: "starter", LookupKey: "syndicate"}, "pro"},
		{"plan fallback", CreateCheckoutSessionRequest{Plan: "starter", LookupKey: "syndicate"}, "starter"},
		{"lookup_key fallback", CreateCheckoutSessionRequest{LookupKey: "syndicate"}, "syndicate"},
		{"whitespace tier still wins", CreateCheckoutSessionRequest{Tier: " ", Plan: "pro"}, " "},
		{"empty", CreateCheckoutSessionRequest{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.RawTier())
		})
	}
}
