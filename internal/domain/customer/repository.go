package customer

import "context"

// Repository defines the interface for customer data access
type Repository interface {
	// FindByEmail returns ierr.ErrNotFound when no customer has the email.
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	// Upsert links an email to a stripe customer id.
	Upsert(ctx context.Context, customer *Customer) error
}
