package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batches are created already finalized; there is no intermediate state.
const BatchStatusProcessed = "PROCESSED"

// PayoutBatch is an immutable settlement record for one doctor covering one
// calendar-month period. At most one batch exists per (doctor, period).
type PayoutBatch struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	DoctorID     uuid.UUID       `json:"doctor_id" db:"doctor_id"`
	Period       string          `json:"period" db:"period"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentCount int             `json:"payment_count" db:"payment_count"`
	Status       string          `json:"status" db:"status"`
	ProcessedAt  time.Time       `json:"processed_at" db:"processed_at"`
}

// Settlement outcomes. AlreadySettled and NoEligiblePayments are normal
// no-op results, never errors.
const (
	SettlementOutcomeCreated            = "created"
	SettlementOutcomeAlreadySettled     = "already_settled"
	SettlementOutcomeNoEligiblePayments = "no_eligible_payments"
)

// SettlementResult reports what a settlement attempt did. Batch is non-nil
// only when Outcome is created.
type SettlementResult struct {
	Outcome string       `json:"outcome"`
	Period  string       `json:"period"`
	Batch   *PayoutBatch `json:"batch,omitempty"`
}

// Created reports whether the attempt produced a new batch.
func (r *SettlementResult) Created() bool {
	return r.Outcome == SettlementOutcomeCreated
}

type BatchListResponse struct {
	Batches []*PayoutBatch `json:"batches"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
