package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/internal/repository"
	apperrors "github.com/docpay/settlement-engine/pkg/errors"
	"github.com/docpay/settlement-engine/pkg/utils"
)

const (
	cacheKeyCommissionTotal    = "reports:commissions:total"
	cacheKeyCommissionByDoctor = "reports:commissions:by-doctor"
	cacheKeyCommissionMonthly  = "reports:commissions:monthly"

	trailingMonths = 12
)

// ReportingService aggregates commission figures from the payments ledger.
// Pure reads, exact decimal arithmetic, empty data comes back as zero sums
// and empty lists. Redis caches the heavier rollups; a cache failure only
// means hitting the database.
type ReportingService struct {
	reportRepo  repository.ReportRepository
	paymentRepo repository.PaymentRepository
	redis       *redis.Client
	cacheTTL    time.Duration
	now         Clock
}

func NewReportingService(
	reportRepo repository.ReportRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	clock Clock,
) *ReportingService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportingService{
		reportRepo:  reportRepo,
		paymentRepo: paymentRepo,
		redis:       redisClient,
		cacheTTL:    cacheTTL,
		now:         clock,
	}
}

// TotalCommission sums platform fees over PAID payments, optionally bounded
// by a [from, to) paid_at range. The unbounded total is cached.
func (s *ReportingService) TotalCommission(ctx context.Context, from, to *time.Time) (*domain.CommissionSummary, error) {
	cacheable := from == nil && to == nil
	if cacheable {
		var cached domain.CommissionSummary
		if s.fromCache(ctx, cacheKeyCommissionTotal, &cached) {
			return &cached, nil
		}
	}

	summary, err := s.reportRepo.CommissionSummary(ctx, from, to)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	if cacheable {
		s.toCache(ctx, cacheKeyCommissionTotal, summary)
	}
	return summary, nil
}

// MonthToDateCommission sums commissions for the current calendar month.
func (s *ReportingService) MonthToDateCommission(ctx context.Context) (*domain.CommissionSummary, error) {
	start, end := utils.MonthRange(s.now())

	summary, err := s.reportRepo.CommissionSummary(ctx, &start, &end)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	return summary, nil
}

// CommissionByDoctor returns the per-doctor commission rollup.
func (s *ReportingService) CommissionByDoctor(ctx context.Context) ([]*domain.DoctorCommission, error) {
	var cached []*domain.DoctorCommission
	if s.fromCache(ctx, cacheKeyCommissionByDoctor, &cached) {
		return cached, nil
	}

	rows, err := s.reportRepo.CommissionByDoctor(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if rows == nil {
		rows = []*domain.DoctorCommission{}
	}

	s.toCache(ctx, cacheKeyCommissionByDoctor, rows)
	return rows, nil
}

// DoctorCommissionDetail returns one doctor's commission summary with the
// payments behind it.
func (s *ReportingService) DoctorCommissionDetail(ctx context.Context, doctorID uuid.UUID) (*domain.DoctorCommissionDetail, error) {
	summary, err := s.reportRepo.CommissionForDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapDoctorNotFound(doctorID.String())
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.ListPaidByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}

	return &domain.DoctorCommissionDetail{
		Summary:  *summary,
		Payments: payments,
	}, nil
}

// MonthlySeries returns the trailing-12-month commission series, months with
// no payments filled in as zero.
func (s *ReportingService) MonthlySeries(ctx context.Context) ([]*domain.MonthlyCommission, error) {
	var cached []*domain.MonthlyCommission
	if s.fromCache(ctx, cacheKeyCommissionMonthly, &cached) {
		return cached, nil
	}

	months := utils.TrailingMonths(s.now(), trailingMonths)
	from := months[0]
	to := months[len(months)-1].AddDate(0, 1, 0)

	rows, err := s.reportRepo.MonthlyCommission(ctx, from, to)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	byPeriod := make(map[string]*domain.MonthlyCommission, len(rows))
	for _, row := range rows {
		byPeriod[row.Period] = row
	}

	series := make([]*domain.MonthlyCommission, 0, len(months))
	for _, month := range months {
		period := utils.PeriodKey(month)
		if row, ok := byPeriod[period]; ok {
			series = append(series, row)
			continue
		}
		series = append(series, &domain.MonthlyCommission{
			Period:      period,
			Commission:  decimal.Zero,
			GrossAmount: decimal.Zero,
		})
	}

	s.toCache(ctx, cacheKeyCommissionMonthly, series)
	return series, nil
}

func (s *ReportingService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}

	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func (s *ReportingService) toCache(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		log.Printf("report cache write failed for %s: %v", key, err)
	}
}
