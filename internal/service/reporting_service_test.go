package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/docpay/settlement-engine/internal/domain"
	apperrors "github.com/docpay/settlement-engine/pkg/errors"
)

func newReportingFixture() (*MockReportRepository, *MockPaymentRepository, *ReportingService) {
	reportRepo := &MockReportRepository{}
	paymentRepo := &MockPaymentRepository{}
	// nil redis: caching is skipped entirely
	svc := NewReportingService(reportRepo, paymentRepo, nil, time.Minute, testClock)
	return reportRepo, paymentRepo, svc
}

func TestTotalCommission(t *testing.T) {
	reportRepo, _, svc := newReportingFixture()

	reportRepo.On("CommissionSummary", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(&domain.CommissionSummary{
		Commission:   decimal.NewFromInt(4200),
		GrossAmount:  decimal.NewFromInt(42000),
		PaymentCount: 12,
	}, nil)

	summary, err := svc.TotalCommission(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.True(t, summary.Commission.Equal(decimal.NewFromInt(4200)))
	assert.Equal(t, 12, summary.PaymentCount)
}

func TestMonthToDateCommission_UsesCurrentMonthBounds(t *testing.T) {
	reportRepo, _, svc := newReportingFixture()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	reportRepo.On("CommissionSummary", mock.Anything, &start, &end).Return(&domain.CommissionSummary{
		Commission: decimal.NewFromInt(150),
		From:       &start,
		To:         &end,
	}, nil)

	summary, err := svc.MonthToDateCommission(context.Background())

	assert.NoError(t, err)
	assert.True(t, summary.Commission.Equal(decimal.NewFromInt(150)))
	reportRepo.AssertExpectations(t)
}

func TestCommissionByDoctor_EmptyIsNotAnError(t *testing.T) {
	reportRepo, _, svc := newReportingFixture()

	reportRepo.On("CommissionByDoctor", mock.Anything).Return(nil, nil)

	rows, err := svc.CommissionByDoctor(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDoctorCommissionDetail(t *testing.T) {
	reportRepo, paymentRepo, svc := newReportingFixture()
	doctorID := uuid.New()

	reportRepo.On("CommissionForDoctor", mock.Anything, doctorID).Return(&domain.DoctorCommission{
		DoctorID:     doctorID,
		DoctorName:   "Dr. Alvarez",
		Commission:   decimal.NewFromInt(900),
		GrossAmount:  decimal.NewFromInt(9000),
		PaymentCount: 3,
	}, nil)
	paymentRepo.On("ListPaidByDoctor", mock.Anything, doctorID).Return([]*domain.Payment{
		eligiblePayment(doctorID, 3000),
	}, nil)

	detail, err := svc.DoctorCommissionDetail(context.Background(), doctorID)

	assert.NoError(t, err)
	assert.Equal(t, "Dr. Alvarez", detail.Summary.DoctorName)
	assert.Len(t, detail.Payments, 1)
}

func TestDoctorCommissionDetail_UnknownDoctor(t *testing.T) {
	reportRepo, _, svc := newReportingFixture()
	doctorID := uuid.New()

	reportRepo.On("CommissionForDoctor", mock.Anything, doctorID).Return(nil, sql.ErrNoRows)

	detail, err := svc.DoctorCommissionDetail(context.Background(), doctorID)

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, apperrors.ErrDoctorNotFound)
}

func TestMonthlySeries_ZeroFillsMissingMonths(t *testing.T) {
	reportRepo, _, svc := newReportingFixture()

	// Clock is 2025-03-15, so the window is 2024-04 through 2025-03
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	reportRepo.On("MonthlyCommission", mock.Anything, from, to).Return([]*domain.MonthlyCommission{
		{Period: "2024-06", Commission: decimal.NewFromInt(100), GrossAmount: decimal.NewFromInt(1000), PaymentCount: 2},
		{Period: "2025-03", Commission: decimal.NewFromInt(300), GrossAmount: decimal.NewFromInt(3000), PaymentCount: 5},
	}, nil)

	series, err := svc.MonthlySeries(context.Background())

	assert.NoError(t, err)
	assert.Len(t, series, 12)
	assert.Equal(t, "2024-04", series[0].Period)
	assert.Equal(t, "2025-03", series[11].Period)

	// Populated months carry their figures, gaps are zero
	assert.True(t, series[2].Commission.Equal(decimal.NewFromInt(100)))
	assert.True(t, series[11].Commission.Equal(decimal.NewFromInt(300)))
	assert.True(t, series[0].Commission.IsZero())
	assert.Equal(t, 0, series[0].PaymentCount)
}
