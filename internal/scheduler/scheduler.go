package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/internal/repository"
	"github.com/docpay/settlement-engine/internal/service"
)

// Settler is the settlement operation the sweep dispatches to.
type Settler interface {
	SettleDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.SettlementResult, error)
}

// SweepSummary reports what one daily sweep did.
type SweepSummary struct {
	Day     int `json:"day"`
	Doctors int `json:"doctors"`
	Settled int `json:"settled"`
	NoOps   int `json:"no_ops"`
	Failed  int `json:"failed"`
}

// Scheduler dispatches the daily settlement sweep. It decides which doctors
// are due today and nothing else; whether any payments exist is the
// settlement service's call.
type Scheduler struct {
	settlement Settler
	doctorRepo repository.DoctorRepository
	now        service.Clock
}

func New(settlement Settler, doctorRepo repository.DoctorRepository, clock service.Clock) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		settlement: settlement,
		doctorRepo: doctorRepo,
		now:        clock,
	}
}

// RunDailySweep settles every doctor on MONTHLY payout whose configured day
// matches today. Each doctor's settlement is independent: a failure is
// logged and skipped, never retried within the run. The daily cadence is
// the retry.
func (s *Scheduler) RunDailySweep(ctx context.Context) (*SweepSummary, error) {
	day := s.now().Day()

	doctors, err := s.doctorRepo.ListByPayoutDay(ctx, day)
	if err != nil {
		return nil, err
	}

	summary := &SweepSummary{Day: day, Doctors: len(doctors)}
	for _, doctor := range doctors {
		result, err := s.settlement.SettleDoctor(ctx, doctor.ID)
		if err != nil {
			summary.Failed++
			log.Printf("sweep: settlement failed for doctor %s: %v", doctor.ID, err)
			continue
		}

		if result.Created() {
			summary.Settled++
			log.Printf("sweep: settled doctor %s period %s: %s (%d payments)",
				doctor.ID, result.Period, result.Batch.TotalAmount, result.Batch.PaymentCount)
			continue
		}

		summary.NoOps++
		log.Printf("sweep: doctor %s period %s: %s", doctor.ID, result.Period, result.Outcome)
	}

	log.Printf("sweep: day %d done, %d doctors, %d settled, %d no-ops, %d failed",
		summary.Day, summary.Doctors, summary.Settled, summary.NoOps, summary.Failed)
	return summary, nil
}
