package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionSummary is an aggregate over paid payments: Commission is the
// platform's cut (sum of fees), GrossAmount the patient-paid total.
type CommissionSummary struct {
	Commission   decimal.Decimal `json:"commission"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	PaymentCount int             `json:"payment_count"`
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
}

// DoctorCommission is one row of the by-doctor commission rollup.
type DoctorCommission struct {
	DoctorID     uuid.UUID       `json:"doctor_id" db:"doctor_id"`
	DoctorName   string          `json:"doctor_name" db:"doctor_name"`
	Commission   decimal.Decimal `json:"commission" db:"commission"`
	GrossAmount  decimal.Decimal `json:"gross_amount" db:"gross_amount"`
	PaymentCount int             `json:"payment_count" db:"payment_count"`
}

// DoctorCommissionDetail is a single doctor's breakdown with the payments
// behind the numbers.
type DoctorCommissionDetail struct {
	Summary  DoctorCommission `json:"summary"`
	Payments []*Payment       `json:"payments"`
}

// MonthlyCommission is one point of the trailing-12-month series.
type MonthlyCommission struct {
	Period       string          `json:"period" db:"period"`
	Commission   decimal.Decimal `json:"commission" db:"commission"`
	GrossAmount  decimal.Decimal `json:"gross_amount" db:"gross_amount"`
	PaymentCount int             `json:"payment_count" db:"payment_count"`
}
