package payment

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
)

// StripeError keeps the human readable part of a Stripe API error.
type StripeError struct {
	Op         string
	Message    string
	Code       string
	HTTPStatus int
	RequestID  string
	Err        error
}

func (e *StripeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// stripe.Error marshals itself to JSON in Error(), so pull out Msg instead.
func wrapStripeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return &StripeError{
		Op:         op,
		Message:    stripeErr.Msg,
		Code:       string(stripeErr.Code),
		HTTPStatus: stripeErr.HTTPStatusCode,
		RequestID:  stripeErr.RequestID,
		Err:        err,
	}
}
