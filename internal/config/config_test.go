package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WEBHOOK_SECRET", "STRIPE_WEBHOOK_SECRET", "APP_DOMAIN", "TRIAL_DAYS",
		"STRIPE_LOOKUP_STARTER", "STRIPE_LOOKUP_PRO", "STRIPE_LOOKUP_SYNDICATE",
		"ADMIN_KEYS", "PORT", "STATIC_DIR", "LOG_LEVEL", "APP_ENV", "RATE_LIMIT_MAX", "METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
	assert.Empty(t, cfg.WebhookSecret)
	assert.Equal(t, "http://localhost:4242", cfg.AppDomain)
	assert.Equal(t, 7, cfg.TrialDays)
	assert.Equal(t, 4242, cfg.Port)
	assert.Equal(t, ":4242", cfg.Addr())
	assert.Empty(t, cfg.AdminKeys)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, map[string]string{
		"starter":   "starter_monthly",
		"pro":       "pro_monthly",
		"syndicate": "syndicate_monthly",
	}, cfg.TierLookupKeys())
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_legacy")
	t.Setenv("APP_DOMAIN", "https://gracex.onrender.com//")
	t.Setenv("TRIAL_DAYS", "14")
	t.Setenv("STRIPE_LOOKUP_PRO", "pro_yearly")
	t.Setenv("ADMIN_KEYS", " abc , ,def,")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "Production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "whsec_legacy", cfg.WebhookSecret)
	assert.Equal(t, "https://gracex.onrender.com", cfg.AppDomain)
	assert.Equal(t, 14, cfg.TrialDays)
	assert.Equal(t, "pro_yearly", cfg.LookupKeys.Pro)
	assert.Equal(t, []string{"abc", "def"}, cfg.AdminKeys)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigWebhookSecretPrecedence(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WEBHOOK_SECRET", "whsec_primary")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_legacy")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "whsec_primary", cfg.WebhookSecret)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret key", map[string]string{"STRIPE_SECRET_KEY": ""}, "missing STRIPE_SECRET_KEY"},
		{"trial days not a number", map[string]string{"TRIAL_DAYS": "seven"}, "invalid TRIAL_DAYS"},
		{"negative trial days", map[string]string{"TRIAL_DAYS": "-1"}, "TRIAL_DAYS"},
		{"port out of range", map[string]string{"PORT": "70000"}, "PORT"},
		{"bad domain", map[string]string{"APP_DOMAIN": "not a url"}, "APP_DOMAIN"},
		{"duplicate lookup keys", map[string]string{"STRIPE_LOOKUP_SYNDICATE": "pro_monthly"}, "STRIPE_LOOKUP_PRO must differ from STRIPE_LOOKUP_SYNDICATE"},
		{"lookup key with space", map[string]string{"STRIPE_LOOKUP_STARTER": "starter monthly"}, "STRIPE_LOOKUP_STARTER"},
		{"bad metrics flag", map[string]string{"METRICS_ENABLED": "sometimes"}, "invalid METRICS_ENABLED"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b c"}, SplitList("a, b c ,"))
}
