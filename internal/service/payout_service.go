package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/internal/repository"
	apperrors "github.com/docpay/settlement-engine/pkg/errors"
	"github.com/docpay/settlement-engine/pkg/utils"
)

const (
	defaultBatchPageSize = 20
	maxBatchPageSize     = 100
)

// PayoutService serves a doctor's own view of their settlements: batch
// listings, single-batch detail and payout statistics. Authorization is the
// caller's job; ownership of a batch is still verified here.
type PayoutService struct {
	doctorRepo  repository.DoctorRepository
	paymentRepo repository.PaymentRepository
	batchRepo   repository.BatchRepository
}

func NewPayoutService(
	doctorRepo repository.DoctorRepository,
	paymentRepo repository.PaymentRepository,
	batchRepo repository.BatchRepository,
) *PayoutService {
	return &PayoutService{
		doctorRepo:  doctorRepo,
		paymentRepo: paymentRepo,
		batchRepo:   batchRepo,
	}
}

// ListBatches returns one page of the doctor's payout batches, newest
// period first, with the total batch count for pagination.
func (s *PayoutService) ListBatches(ctx context.Context, doctorID uuid.UUID, limit, offset int) (*domain.BatchListResponse, error) {
	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	limit, offset = utils.ClampPagination(limit, offset, defaultBatchPageSize, maxBatchPageSize)

	batches, err := s.batchRepo.ListByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	total, err := s.batchRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	if batches == nil {
		batches = []*domain.PayoutBatch{}
	}

	return &domain.BatchListResponse{
		Batches: batches,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// GetBatch returns one batch with the payments bound to it, only if the
// batch belongs to the given doctor.
func (s *PayoutService) GetBatch(ctx context.Context, doctorID, batchID uuid.UUID) (*domain.PayoutBatch, []*domain.Payment, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, apperrors.WrapBatchNotFound(batchID.String())
		}
		return nil, nil, apperrors.WrapDatabaseError(err)
	}

	// A foreign batch is indistinguishable from a missing one.
	if batch.DoctorID != doctorID {
		return nil, nil, apperrors.WrapBatchNotFound(batchID.String())
	}

	payments, err := s.paymentRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, nil, apperrors.WrapDatabaseError(err)
	}

	return batch, payments, nil
}

// PayoutStats returns the doctor's earned/pending/paid-out aggregates and
// batch count.
func (s *PayoutService) PayoutStats(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error) {
	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	stats, err := s.paymentRepo.PayoutStatsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	batchCount, err := s.batchRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	stats.BatchCount = batchCount

	return stats, nil
}

func (s *PayoutService) requireDoctor(ctx context.Context, doctorID uuid.UUID) error {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapDoctorNotFound(doctorID.String())
		}
		return apperrors.WrapDatabaseError(err)
	}
	return nil
}
