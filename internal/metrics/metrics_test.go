package metrics

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeInvalidInput, Outcome(apperrors.InvalidInput("x")))
	assert.Equal(t, OutcomeMisconfigured, Outcome(apperrors.Configuration(http.StatusBadRequest, "x")))
	assert.Equal(t, OutcomeForbidden, Outcome(apperrors.Forbidden("x")))
	assert.Equal(t, OutcomeUpstreamError, Outcome(apperrors.Upstream(errors.New("x"))))
	assert.Equal(t, OutcomeUpstreamError, Outcome(errors.New("unclassified")))
}

func TestCountersAccumulate(t *testing.T) {
	before := testutil.ToFloat64(KeyActivationsTotal.WithLabelValues(OutcomeForbidden))
	KeyActivationsTotal.WithLabelValues(OutcomeForbidden).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(KeyActivationsTotal.WithLabelValues(OutcomeForbidden)))
}
