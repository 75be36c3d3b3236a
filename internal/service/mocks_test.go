package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/internal/repository"
)

// fakeStore runs the transactional closure against mock repositories and
// records whether the transaction would have committed or rolled back.
type fakeStore struct {
	repos      repository.Repositories
	beginErr   error
	committed  bool
	rolledBack bool
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	if err := fn(s.repos); err != nil {
		s.rolledBack = true
		return err
	}
	s.committed = true
	return nil
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) ListByPayoutDay(ctx context.Context, day int) ([]*domain.Doctor, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Doctor), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SelectEligibleForPayout(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ClaimForBatch(ctx context.Context, paymentIDs []uuid.UUID, batchID uuid.UUID, payoutDate time.Time) (int64, error) {
	args := m.Called(ctx, paymentIDs, batchID, payoutDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, int, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaidByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) PayoutStatsByDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutStats), args.Error(1)
}

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) Create(ctx context.Context, batch *domain.PayoutBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) GetByDoctorAndPeriod(ctx context.Context, doctorID uuid.UUID, period string) (*domain.PayoutBatch, error) {
	args := m.Called(ctx, doctorID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutBatch), args.Error(1)
}

func (m *MockBatchRepository) GetByID(ctx context.Context, batchID uuid.UUID) (*domain.PayoutBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutBatch), args.Error(1)
}

func (m *MockBatchRepository) UpdateTotals(ctx context.Context, batchID uuid.UUID, total decimal.Decimal, count int) error {
	args := m.Called(ctx, batchID, total, count)
	return args.Error(0)
}

func (m *MockBatchRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*domain.PayoutBatch, error) {
	args := m.Called(ctx, doctorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PayoutBatch), args.Error(1)
}

func (m *MockBatchRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	args := m.Called(ctx, doctorID)
	return args.Int(0), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) CommissionSummary(ctx context.Context, from, to *time.Time) (*domain.CommissionSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionSummary), args.Error(1)
}

func (m *MockReportRepository) CommissionByDoctor(ctx context.Context) ([]*domain.DoctorCommission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DoctorCommission), args.Error(1)
}

func (m *MockReportRepository) CommissionForDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.DoctorCommission, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorCommission), args.Error(1)
}

func (m *MockReportRepository) MonthlyCommission(ctx context.Context, from, to time.Time) ([]*domain.MonthlyCommission, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MonthlyCommission), args.Error(1)
}
