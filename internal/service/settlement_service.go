package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/internal/repository"
	apperrors "github.com/docpay/settlement-engine/pkg/errors"
	"github.com/docpay/settlement-engine/pkg/utils"
)

// Clock supplies the current time; injected so the settlement period is
// deterministic in tests.
type Clock func() time.Time

// TxStore is the transactional boundary the settlement executes inside.
type TxStore interface {
	WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error
}

// errSettledConcurrently aborts the transaction when another settlement won
// the race for this doctor and period. The caller reports a no-op, not a
// failure.
var errSettledConcurrently = errors.New("period settled by a concurrent run")

// SettlementService atomically captures a doctor's eligible payments into a
// payout batch, at most one batch per (doctor, period).
type SettlementService struct {
	store TxStore
	now   Clock
}

func NewSettlementService(store TxStore, clock Clock) *SettlementService {
	if clock == nil {
		clock = time.Now
	}
	return &SettlementService{
		store: store,
		now:   clock,
	}
}

// SettleDoctor settles all currently-eligible payments for the doctor into
// a single new batch for the current period, or reports that no action was
// needed. Calling it twice in the same period is a normal outcome: the
// second call returns an already_settled result and touches nothing.
func (s *SettlementService) SettleDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.SettlementResult, error) {
	now := s.now()
	period := utils.PeriodKey(now)

	var result *domain.SettlementResult
	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Doctors.GetByID(ctx, doctorID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.WrapDoctorNotFound(doctorID.String())
			}
			return apperrors.WrapDatabaseError(err)
		}

		// Idempotency check inside the same transaction as the write.
		if _, err := r.Batches.GetByDoctorAndPeriod(ctx, doctorID, period); err == nil {
			result = &domain.SettlementResult{
				Outcome: domain.SettlementOutcomeAlreadySettled,
				Period:  period,
			}
			return nil
		} else if !errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapDatabaseError(err)
		}

		payments, err := r.Payments.SelectEligibleForPayout(ctx, doctorID)
		if err != nil {
			return apperrors.WrapDatabaseError(err)
		}
		if len(payments) == 0 {
			result = &domain.SettlementResult{
				Outcome: domain.SettlementOutcomeNoEligiblePayments,
				Period:  period,
			}
			return nil
		}

		total := decimal.Zero
		paymentIDs := make([]uuid.UUID, 0, len(payments))
		for _, payment := range payments {
			total = total.Add(payment.NetAmount)
			paymentIDs = append(paymentIDs, payment.ID)
		}

		batch := &domain.PayoutBatch{
			ID:           uuid.New(),
			DoctorID:     doctorID,
			Period:       period,
			TotalAmount:  total,
			PaymentCount: len(payments),
			Status:       domain.BatchStatusProcessed,
			ProcessedAt:  now,
		}

		if err := r.Batches.Create(ctx, batch); err != nil {
			if repository.IsUniqueViolation(err) {
				// A concurrent settlement inserted the batch first.
				return errSettledConcurrently
			}
			return apperrors.WrapDatabaseError(err)
		}

		claimed, err := r.Payments.ClaimForBatch(ctx, paymentIDs, batch.ID, now)
		if err != nil {
			return apperrors.WrapDatabaseError(err)
		}
		if claimed == 0 {
			// Every selected payment was claimed elsewhere before this
			// update ran; an empty batch must not survive.
			return errSettledConcurrently
		}

		// If another run claimed part of the selection, the batch totals
		// must match the rows actually bound to it.
		if int(claimed) != len(payments) {
			actualTotal, actualCount, err := r.Payments.SumByBatch(ctx, batch.ID)
			if err != nil {
				return apperrors.WrapDatabaseError(err)
			}
			if err := r.Batches.UpdateTotals(ctx, batch.ID, actualTotal, actualCount); err != nil {
				return apperrors.WrapDatabaseError(err)
			}
			batch.TotalAmount = actualTotal
			batch.PaymentCount = actualCount
		}

		result = &domain.SettlementResult{
			Outcome: domain.SettlementOutcomeCreated,
			Period:  period,
			Batch:   batch,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errSettledConcurrently) {
			return &domain.SettlementResult{
				Outcome: domain.SettlementOutcomeAlreadySettled,
				Period:  period,
			}, nil
		}
		var businessErr *apperrors.BusinessError
		if errors.As(err, &businessErr) {
			return nil, err
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	return result, nil
}
