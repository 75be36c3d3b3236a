package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// Repositories bundles the data-access interfaces bound to one executor,
// either the pooled connection or a single transaction.
type Repositories struct {
	Doctors  DoctorRepository
	Payments PaymentRepository
	Batches  BatchRepository
}

// Store owns the database handle and is the only place a transaction is
// started. Settlement runs its whole read-check-select-write sequence
// inside one WithinTx call.
type Store struct {
	db *sqlx.DB
	Repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(ext sqlx.ExtContext) Repositories {
	return Repositories{
		Doctors:  NewDoctorRepository(ext),
		Payments: NewPaymentRepository(ext),
		Batches:  NewBatchRepository(ext),
	}
}

// WithinTx runs fn inside a single serializable transaction and rolls back
// on any error, so a failed settlement leaves no partial state behind.
func (s *Store) WithinTx(ctx context.Context, fn func(r Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}

	return tx.Commit()
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// the last-resort guard on (doctor_id, period).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
