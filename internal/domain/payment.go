package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"

	PayoutStatusPending = "PENDING"
	PayoutStatusPaidOut = "PAID_OUT"
)

// Payment is one unit of money collected from a patient for a consultation.
// NetAmount is the share owed to the doctor: NetAmount = Amount - Fee.
// Once PayoutBatchID is set, the payout fields never change again.
type Payment struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	DoctorID       uuid.UUID       `json:"doctor_id" db:"doctor_id"`
	ConsultationID uuid.UUID       `json:"consultation_id" db:"consultation_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Fee            decimal.Decimal `json:"fee" db:"fee"`
	NetAmount      decimal.Decimal `json:"net_amount" db:"net_amount"`
	Status         string          `json:"status" db:"status"`
	PayoutStatus   string          `json:"payout_status" db:"payout_status"`
	PayoutBatchID  *uuid.UUID      `json:"payout_batch_id,omitempty" db:"payout_batch_id"`
	PaidAt         *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
	PayoutDate     *time.Time      `json:"payout_date,omitempty" db:"payout_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
