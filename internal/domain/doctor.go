package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayoutModeImmediate = "IMMEDIATE"
	PayoutModeMonthly   = "MONTHLY"
)

// Doctor carries the payout configuration owned by the doctors service.
// The settlement engine reads it and never writes it.
type Doctor struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	PayoutMode string    `json:"payout_mode" db:"payout_mode"`
	PayoutDay  int       `json:"payout_day" db:"payout_day"` // 1-28, MONTHLY mode only
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PayoutStats is a doctor's own view of their earnings pipeline.
type PayoutStats struct {
	DoctorID      uuid.UUID       `json:"doctor_id"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PendingCount  int             `json:"pending_count"`
	PaidOutAmount decimal.Decimal `json:"paid_out_amount"`
	PaidOutCount  int             `json:"paid_out_count"`
	BatchCount    int             `json:"batch_count"`
}
