package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
)

type paymentRepository struct {
	db sqlx.ExtContext
}

func NewPaymentRepository(db sqlx.ExtContext) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `
	id, doctor_id, consultation_id, amount, fee, net_amount,
	status, payout_status, payout_batch_id, paid_at, payout_date,
	created_at, updated_at
`

func (r *paymentRepository) SelectEligibleForPayout(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE doctor_id = $1
		  AND status = $2
		  AND payout_status = $3
		  AND payout_batch_id IS NULL
		ORDER BY paid_at
	`

	var payments []*domain.Payment
	err := sqlx.SelectContext(ctx, r.db, &payments, query,
		doctorID, domain.PaymentStatusPaid, domain.PayoutStatusPending)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ClaimForBatch(ctx context.Context, paymentIDs []uuid.UUID, batchID uuid.UUID, payoutDate time.Time) (int64, error) {
	if len(paymentIDs) == 0 {
		return 0, nil
	}

	// The IS NULL filter is repeated here on purpose: the prior SELECT may
	// have raced another settlement, and only the update decides ownership.
	query := `
		UPDATE payments
		SET payout_status = $1, payout_batch_id = $2, payout_date = $3, updated_at = $3
		WHERE id = ANY($4::uuid[])
		  AND payout_status = $5
		  AND payout_batch_id IS NULL
	`

	ids := make([]string, len(paymentIDs))
	for i, id := range paymentIDs {
		ids[i] = id.String()
	}

	result, err := r.db.ExecContext(ctx, query,
		domain.PayoutStatusPaidOut, batchID, payoutDate,
		pq.Array(ids), domain.PayoutStatusPending)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *paymentRepository) SumByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(net_amount), 0) AS total, COUNT(*) AS count
		FROM payments
		WHERE payout_batch_id = $1
	`

	var row struct {
		Total decimal.Decimal `db:"total"`
		Count int             `db:"count"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query, batchID); err != nil {
		return decimal.Zero, 0, err
	}

	return row.Total, row.Count, nil
}

func (r *paymentRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payout_batch_id = $1
		ORDER BY paid_at
	`

	var payments []*domain.Payment
	err := sqlx.SelectContext(ctx, r.db, &payments, query, batchID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ListPaidByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE doctor_id = $1 AND status = $2
		ORDER BY paid_at DESC
	`

	var payments []*domain.Payment
	err := sqlx.SelectContext(ctx, r.db, &payments, query, doctorID, domain.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) PayoutStatsByDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error) {
	query := `
		SELECT
			COALESCE(SUM(net_amount), 0) AS total_earned,
			COALESCE(SUM(net_amount) FILTER (WHERE payout_status = $2), 0) AS pending_amount,
			COUNT(*) FILTER (WHERE payout_status = $2) AS pending_count,
			COALESCE(SUM(net_amount) FILTER (WHERE payout_status = $3), 0) AS paid_out_amount,
			COUNT(*) FILTER (WHERE payout_status = $3) AS paid_out_count
		FROM payments
		WHERE doctor_id = $1 AND status = $4
	`

	var row struct {
		TotalEarned   decimal.Decimal `db:"total_earned"`
		PendingAmount decimal.Decimal `db:"pending_amount"`
		PendingCount  int             `db:"pending_count"`
		PaidOutAmount decimal.Decimal `db:"paid_out_amount"`
		PaidOutCount  int             `db:"paid_out_count"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query,
		doctorID, domain.PayoutStatusPending, domain.PayoutStatusPaidOut, domain.PaymentStatusPaid); err != nil {
		return nil, err
	}

	return &domain.PayoutStats{
		DoctorID:      doctorID,
		TotalEarned:   row.TotalEarned,
		PendingAmount: row.PendingAmount,
		PendingCount:  row.PendingCount,
		PaidOutAmount: row.PaidOutAmount,
		PaidOutCount:  row.PaidOutCount,
	}, nil
}
