package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sefazor/gracex-storefront/internal/models"
	"github.com/sefazor/gracex-storefront/pkg/utils"
)

const (
	DefaultAppDomain = "http://localhost:4242"
	DefaultTrialDays = 7
	DefaultPort      = 4242
)

type LookupKeys struct {
	Starter   string `validate:"lookup_key,nefield=Pro,nefield=Syndicate"`
	Pro       string `validate:"lookup_key,nefield=Syndicate"`
	Syndicate string `validate:"lookup_key"`
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	StripeSecretKey string `validate:"required"`
	WebhookSecret   string
	// AppDomain has no trailing slash.
	AppDomain  string `validate:"required,url"`
	TrialDays  int    `validate:"gte=0,lte=730"`
	LookupKeys LookupKeys
	// AdminKeys may hold plain keys or bcrypt hashes.
	AdminKeys []string

	Port           int `validate:"min=1,max=65535"`
	StaticDir      string
	LogLevel       string `validate:"oneof=debug info warn error"`
	Env            string
	RateLimitMax   int `validate:"gte=0"`
	MetricsEnabled bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		StripeSecretKey: strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		WebhookSecret:   strings.TrimSpace(firstEnv("WEBHOOK_SECRET", "STRIPE_WEBHOOK_SECRET")),
		AppDomain:       strings.TrimRight(envOr("APP_DOMAIN", DefaultAppDomain), "/"),
		LookupKeys: LookupKeys{
			Starter:   envOr("STRIPE_LOOKUP_STARTER", "starter_monthly"),
			Pro:       envOr("STRIPE_LOOKUP_PRO", "pro_monthly"),
			Syndicate: envOr("STRIPE_LOOKUP_SYNDICATE", "syndicate_monthly"),
		},
		AdminKeys: SplitList(os.Getenv("ADMIN_KEYS")),
		StaticDir: envOr("STATIC_DIR", "public"),
		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		Env:       strings.ToLower(envOr("APP_ENV", "development")),
	}

	var err error
	if cfg.TrialDays, err = intEnv("TRIAL_DAYS", DefaultTrialDays); err != nil {
		return nil, err
	}
	if cfg.Port, err = intEnv("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = intEnv("RATE_LIMIT_MAX", 20); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := utils.NewValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// TierLookupKeys maps tier name to its Stripe price lookup key.
func (c *Config) TierLookupKeys() map[string]string {
	return map[string]string{
		models.TierStarter:   c.LookupKeys.Starter,
		models.TierPro:       c.LookupKeys.Pro,
		models.TierSyndicate: c.LookupKeys.Syndicate,
	}
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SplitList splits a comma separated value, trimming items and dropping empties.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var envNames = map[string]string{
	"StripeSecretKey": "STRIPE_SECRET_KEY",
	"AppDomain":       "APP_DOMAIN",
	"TrialDays":       "TRIAL_DAYS",
	"Starter":         "STRIPE_LOOKUP_STARTER",
	"Pro":             "STRIPE_LOOKUP_PRO",
	"Syndicate":       "STRIPE_LOOKUP_SYNDICATE",
	"Port":            "PORT",
	"LogLevel":        "LOG_LEVEL",
	"RateLimitMax":    "RATE_LIMIT_MAX",
}

func describe(fe validator.FieldError) string {
	name := envNames[fe.StructField()]
	if name == "" {
		name = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %s in environment", name)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", name, envNames[fe.Param()])
	case "lookup_key":
		return fmt.Sprintf("%s must be a non-empty lookup key without whitespace", name)
	default:
		return fmt.Sprintf("%s failed %q check (value %v)", name, fe.Tag(), fe.Value())
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}
