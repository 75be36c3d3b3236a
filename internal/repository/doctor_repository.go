package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/docpay/settlement-engine/internal/domain"
)

type doctorRepository struct {
	db sqlx.ExtContext
}

func NewDoctorRepository(db sqlx.ExtContext) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) GetByID(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	query := `
		SELECT id, name, payout_mode, payout_day, created_at
		FROM doctors
		WHERE id = $1
	`

	var doctor domain.Doctor
	err := sqlx.GetContext(ctx, r.db, &doctor, query, doctorID)
	if err != nil {
		return nil, err
	}

	return &doctor, nil
}

func (r *doctorRepository) ListByPayoutDay(ctx context.Context, day int) ([]*domain.Doctor, error) {
	query := `
		SELECT id, name, payout_mode, payout_day, created_at
		FROM doctors
		WHERE payout_mode = $1 AND payout_day = $2
		ORDER BY created_at
	`

	var doctors []*domain.Doctor
	err := sqlx.SelectContext(ctx, r.db, &doctors, query, domain.PayoutModeMonthly, day)
	if err != nil {
		return nil, err
	}

	return doctors, nil
}
