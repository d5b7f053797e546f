package service

import (
	"net/http"
	"strings"

	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/internal/config"
	"github.com/sefazor/gracex-storefront/internal/metrics"
	"github.com/sefazor/gracex-storefront/pkg/bcrypt"
	"go.uber.org/zap"
)

// AdminService checks admin keys against a static allow-list. A match only
// produces a redirect; no session, cookie or token is issued.
type AdminService struct {
	keys      []string
	appDomain string
	log       *zap.Logger
}

func NewAdminService(cfg *config.Config, log *zap.Logger) *AdminService {
	return &AdminService{
		keys:      append([]string(nil), cfg.AdminKeys...),
		appDomain: strings.TrimRight(cfg.AppDomain, "/"),
		log:       log.Named("admin"),
	}
}

// Activate returns the success page URL when provided is a configured key.
func (s *AdminService) Activate(provided string) (string, error) {
	redirectURL, err := s.activate(strings.TrimSpace(provided))
	metrics.KeyActivationsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	return redirectURL, err
}

func (s *AdminService) activate(provided string) (string, error) {
	if provided == "" {
		return "", apperrors.InvalidInput("Missing admin_key")
	}
	if len(s.keys) == 0 {
		return "", apperrors.Configuration(http.StatusBadRequest, "ADMIN_KEYS not set on server")
	}

	// Compare against every entry, no early exit.
	matched := false
	for _, key := range s.keys {
		if bcrypt.MatchKey(key, provided) {
			matched = true
		}
	}
	if !matched {
		s.log.Warn("admin key rejected")
		return "", apperrors.Forbidden("Invalid key")
	}

	s.log.Info("admin key activated")
	return s.appDomain + "/success.html?activated=1", nil
}
