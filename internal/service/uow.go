package service

import (
	"database/sql"

	"github.com/tripline/vehicle-location-go/internal/database"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// sqlUnitOfWork executes the segmenter's decision procedure inside one
// sqlite transaction, handing it transaction-bound repositories. On error
// the transaction rolls back and no partial route/position state persists.
type sqlUnitOfWork struct {
	db *sql.DB
}

// NewSQLUnitOfWork creates a unit of work over the given database
func NewSQLUnitOfWork(db *sql.DB) UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

// Run implements UnitOfWork
func (u *sqlUnitOfWork) Run(fn func(routes RouteStore, positions PositionStore) error) error {
	return database.TransactionOn(u.db, func(tx *sql.Tx) error {
		return fn(repository.NewRouteRepository(tx), repository.NewPositionRepository(tx))
	})
}
