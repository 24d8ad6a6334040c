package repository

import (
	"github.com/subbridge/subbridge/internal/cache"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/domain/customer"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/postgres"
	postgresRepo "github.com/subbridge/subbridge/internal/repository/postgres"
)

// NewCustomerRepository returns the postgres customer store, behind a read-through
// cache when cache.enabled is set
func NewCustomerRepository(db *postgres.DB, c cache.Cache, cfg *config.Configuration, logger *logger.Logger) customer.Repository {
	repo := postgresRepo.NewCustomerRepository(db, logger)
	if !cfg.Cache.Enabled {
		return repo
	}
	return NewCachedCustomerRepository(repo, c, cfg.Cache.TTL)
}
