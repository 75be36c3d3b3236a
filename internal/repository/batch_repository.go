package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
)

type batchRepository struct {
	db sqlx.ExtContext
}

func NewBatchRepository(db sqlx.ExtContext) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *domain.PayoutBatch) error {
	query := `
		INSERT INTO payout_batches (id, doctor_id, period, total_amount, payment_count, status, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		batch.ID,
		batch.DoctorID,
		batch.Period,
		batch.TotalAmount,
		batch.PaymentCount,
		batch.Status,
		batch.ProcessedAt,
	)

	return err
}

func (r *batchRepository) GetByDoctorAndPeriod(ctx context.Context, doctorID uuid.UUID, period string) (*domain.PayoutBatch, error) {
	query := `
		SELECT id, doctor_id, period, total_amount, payment_count, status, processed_at
		FROM payout_batches
		WHERE doctor_id = $1 AND period = $2
	`

	var batch domain.PayoutBatch
	err := sqlx.GetContext(ctx, r.db, &batch, query, doctorID, period)
	if err != nil {
		return nil, err
	}

	return &batch, nil
}

func (r *batchRepository) GetByID(ctx context.Context, batchID uuid.UUID) (*domain.PayoutBatch, error) {
	query := `
		SELECT id, doctor_id, period, total_amount, payment_count, status, processed_at
		FROM payout_batches
		WHERE id = $1
	`

	var batch domain.PayoutBatch
	err := sqlx.GetContext(ctx, r.db, &batch, query, batchID)
	if err != nil {
		return nil, err
	}

	return &batch, nil
}

func (r *batchRepository) UpdateTotals(ctx context.Context, batchID uuid.UUID, total decimal.Decimal, count int) error {
	query := `
		UPDATE payout_batches
		SET total_amount = $2, payment_count = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, batchID, total, count)
	return err
}

func (r *batchRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*domain.PayoutBatch, error) {
	query := `
		SELECT id, doctor_id, period, total_amount, payment_count, status, processed_at
		FROM payout_batches
		WHERE doctor_id = $1
		ORDER BY period DESC
		LIMIT $2 OFFSET $3
	`

	var batches []*domain.PayoutBatch
	err := sqlx.SelectContext(ctx, r.db, &batches, query, doctorID, limit, offset)
	if err != nil {
		return nil, err
	}

	return batches, nil
}

func (r *batchRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM payout_batches WHERE doctor_id = $1`

	var count int
	err := sqlx.GetContext(ctx, r.db, &count, query, doctorID)
	return count, err
}
