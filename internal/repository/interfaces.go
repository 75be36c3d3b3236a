package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
)

// DoctorRepository defines read-only access to doctor payout configuration
type DoctorRepository interface {
	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error)

	// ListByPayoutDay retrieves doctors on MONTHLY payout whose payout day matches
	ListByPayoutDay(ctx context.Context, day int) ([]*domain.Doctor, error)
}

// PaymentRepository defines the interface for payment ledger operations
type PaymentRepository interface {
	// SelectEligibleForPayout retrieves a doctor's payments that can be
	// settled: PAID, payout still pending, not yet bound to a batch
	SelectEligibleForPayout(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error)

	// ClaimForBatch binds the given payments to a batch. The update itself
	// filters on payout_batch_id IS NULL so a concurrent settlement cannot
	// claim the same payment twice; returns the number of rows claimed.
	ClaimForBatch(ctx context.Context, paymentIDs []uuid.UUID, batchID uuid.UUID, payoutDate time.Time) (int64, error)

	// SumByBatch re-derives total and count from the rows actually bound to a batch
	SumByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, int, error)

	// ListByBatch retrieves the payments bound to a batch
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Payment, error)

	// ListPaidByDoctor retrieves a doctor's PAID payments, most recent first
	ListPaidByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error)

	// PayoutStatsByDoctor aggregates a doctor's earned/pending/paid-out totals
	PayoutStatsByDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error)
}

// BatchRepository defines the interface for payout batch storage
type BatchRepository interface {
	// Create inserts a new batch; the (doctor_id, period) unique key is the
	// engine's idempotency guard of last resort
	Create(ctx context.Context, batch *domain.PayoutBatch) error

	// GetByDoctorAndPeriod retrieves the batch for one doctor and period
	GetByDoctorAndPeriod(ctx context.Context, doctorID uuid.UUID, period string) (*domain.PayoutBatch, error)

	// GetByID retrieves a batch by ID
	GetByID(ctx context.Context, batchID uuid.UUID) (*domain.PayoutBatch, error)

	// UpdateTotals rewrites a batch's aggregate columns after re-derivation
	UpdateTotals(ctx context.Context, batchID uuid.UUID, total decimal.Decimal, count int) error

	// ListByDoctor retrieves a doctor's batches, newest period first
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*domain.PayoutBatch, error)

	// CountByDoctor counts a doctor's batches
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
}

// ReportRepository defines read-only commission aggregation queries
type ReportRepository interface {
	// CommissionSummary sums fees and gross amounts over PAID payments,
	// optionally bounded by paid_at range
	CommissionSummary(ctx context.Context, from, to *time.Time) (*domain.CommissionSummary, error)

	// CommissionByDoctor groups commission totals per doctor
	CommissionByDoctor(ctx context.Context) ([]*domain.DoctorCommission, error)

	// CommissionForDoctor aggregates one doctor's commission row
	CommissionForDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.DoctorCommission, error)

	// MonthlyCommission groups commission totals per calendar month within [from, to)
	MonthlyCommission(ctx context.Context, from, to time.Time) ([]*domain.MonthlyCommission, error)
}
