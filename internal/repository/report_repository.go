package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
)

type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository builds the read-side aggregation queries. Reports
// never run inside a settlement transaction, so this one takes the pooled
// handle directly.
func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CommissionSummary(ctx context.Context, from, to *time.Time) (*domain.CommissionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(fee), 0) AS commission,
			COALESCE(SUM(amount), 0) AS gross_amount,
			COUNT(*) AS payment_count
		FROM payments
		WHERE status = $1
		  AND ($2::timestamptz IS NULL OR paid_at >= $2)
		  AND ($3::timestamptz IS NULL OR paid_at < $3)
	`

	var row struct {
		Commission   decimal.Decimal `db:"commission"`
		GrossAmount  decimal.Decimal `db:"gross_amount"`
		PaymentCount int             `db:"payment_count"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query, domain.PaymentStatusPaid, from, to); err != nil {
		return nil, err
	}

	return &domain.CommissionSummary{
		Commission:   row.Commission,
		GrossAmount:  row.GrossAmount,
		PaymentCount: row.PaymentCount,
		From:         from,
		To:           to,
	}, nil
}

func (r *reportRepository) CommissionByDoctor(ctx context.Context) ([]*domain.DoctorCommission, error) {
	query := `
		SELECT
			d.id AS doctor_id,
			d.name AS doctor_name,
			COALESCE(SUM(p.fee), 0) AS commission,
			COALESCE(SUM(p.amount), 0) AS gross_amount,
			COUNT(p.id) AS payment_count
		FROM doctors d
		LEFT JOIN payments p ON p.doctor_id = d.id AND p.status = $1
		GROUP BY d.id, d.name
		ORDER BY commission DESC
	`

	var rows []*domain.DoctorCommission
	err := sqlx.SelectContext(ctx, r.db, &rows, query, domain.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *reportRepository) CommissionForDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.DoctorCommission, error) {
	query := `
		SELECT
			d.id AS doctor_id,
			d.name AS doctor_name,
			COALESCE(SUM(p.fee), 0) AS commission,
			COALESCE(SUM(p.amount), 0) AS gross_amount,
			COUNT(p.id) AS payment_count
		FROM doctors d
		LEFT JOIN payments p ON p.doctor_id = d.id AND p.status = $2
		WHERE d.id = $1
		GROUP BY d.id, d.name
	`

	var row domain.DoctorCommission
	err := sqlx.GetContext(ctx, r.db, &row, query, doctorID, domain.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *reportRepository) MonthlyCommission(ctx context.Context, from, to time.Time) ([]*domain.MonthlyCommission, error) {
	query := `
		SELECT
			to_char(paid_at, 'YYYY-MM') AS period,
			COALESCE(SUM(fee), 0) AS commission,
			COALESCE(SUM(amount), 0) AS gross_amount,
			COUNT(*) AS payment_count
		FROM payments
		WHERE status = $1 AND paid_at >= $2 AND paid_at < $3
		GROUP BY to_char(paid_at, 'YYYY-MM')
		ORDER BY period
	`

	var rows []*domain.MonthlyCommission
	err := sqlx.SelectContext(ctx, r.db, &rows, query, domain.PaymentStatusPaid, from, to)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
