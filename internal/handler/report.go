package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/pkg/response"
)

// CommissionReader is the slice of the reporting service the report
// endpoints need.
type CommissionReader interface {
	TotalCommission(ctx context.Context, from, to *time.Time) (*domain.CommissionSummary, error)
	MonthToDateCommission(ctx context.Context) (*domain.CommissionSummary, error)
	CommissionByDoctor(ctx context.Context) ([]*domain.DoctorCommission, error)
	DoctorCommissionDetail(ctx context.Context, doctorID uuid.UUID) (*domain.DoctorCommissionDetail, error)
	MonthlySeries(ctx context.Context) ([]*domain.MonthlyCommission, error)
}

// ReportHandler serves the commission reporting endpoints.
type ReportHandler struct {
	reports CommissionReader
}

func NewReportHandler(reports CommissionReader) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// TotalCommission handles GET /api/v1/reports/commissions
// Optional from/to query params bound the paid_at range (YYYY-MM-DD).
func (h *ReportHandler) TotalCommission(w http.ResponseWriter, r *http.Request) {
	from, ok := dateQueryParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := dateQueryParam(w, r, "to")
	if !ok {
		return
	}

	summary, err := h.reports.TotalCommission(r.Context(), from, to)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

// MonthToDateCommission handles GET /api/v1/reports/commissions/month-to-date
func (h *ReportHandler) MonthToDateCommission(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.MonthToDateCommission(r.Context())
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

// CommissionByDoctor handles GET /api/v1/reports/commissions/by-doctor
func (h *ReportHandler) CommissionByDoctor(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.CommissionByDoctor(r.Context())
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, rows)
}

// DoctorCommissionDetail handles GET /api/v1/reports/commissions/doctors/{doctorId}
func (h *ReportHandler) DoctorCommissionDetail(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "invalid doctor ID")
		return
	}

	detail, err := h.reports.DoctorCommissionDetail(r.Context(), doctorID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, detail)
}

// MonthlySeries handles GET /api/v1/reports/commissions/monthly
func (h *ReportHandler) MonthlySeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.reports.MonthlySeries(r.Context())
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, series)
}

// dateQueryParam parses an optional YYYY-MM-DD query param. Writes a 400 and
// returns ok=false when the value is present but malformed.
func dateQueryParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(w, "invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
