package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/subbridge/subbridge/internal/domain/customer"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/postgres"
	"github.com/subbridge/subbridge/internal/types"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

const findCustomerByEmailQuery = `SELECT id, email, stripe_customer_id, metadata, created_at, updated_at FROM customers WHERE lower(email) = $1 LIMIT 1`

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ierr.NewError("email is required").
			WithHint("A customer can only be looked up by a non-empty email").
			Mark(ierr.ErrValidation)
	}

	var c customer.Customer
	if err := r.db.GetContext(ctx, &c, findCustomerByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Customer with email %s was not found", email).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to look up customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

const upsertCustomerQuery = `INSERT INTO customers (id, email, stripe_customer_id, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO UPDATE SET stripe_customer_id = EXCLUDED.stripe_customer_id, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`

func (r *customerRepository) Upsert(ctx context.Context, c *customer.Customer) error {
	c.Email = normalizeEmail(c.Email)
	if c.Email == "" {
		return ierr.NewError("email is required").
			WithHint("A customer needs an email to be stored").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	if _, err := r.db.ExecContext(ctx, upsertCustomerQuery,
		c.ID, c.Email, c.StripeCustomerID, c.Metadata, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
