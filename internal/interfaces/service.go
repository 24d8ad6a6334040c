package interfaces

import (
	"context"
)

// ErrorSink receives failures worth a human's attention. Notify must not block
// or fail the caller.
type ErrorSink interface {
	Notify(ctx context.Context, err error, details map[string]any)
}

// PaymentCustomerLookup finds the payment processor's customer id for an email.
// A missing customer is reported as an ierr.ErrNotFound error.
type PaymentCustomerLookup interface {
	FindCustomerRefByEmail(ctx context.Context, email string) (string, error)
}
