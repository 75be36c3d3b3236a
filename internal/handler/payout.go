package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/pkg/response"
)

// PayoutReader is the slice of the payout service the self-service
// endpoints need.
type PayoutReader interface {
	ListBatches(ctx context.Context, doctorID uuid.UUID, limit, offset int) (*domain.BatchListResponse, error)
	GetBatch(ctx context.Context, doctorID, batchID uuid.UUID) (*domain.PayoutBatch, []*domain.Payment, error)
	PayoutStats(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error)
}

// PayoutHandler serves a doctor's self-service payout queries.
type PayoutHandler struct {
	payouts   PayoutReader
	validator *validator.Validate
}

func NewPayoutHandler(payouts PayoutReader) *PayoutHandler {
	return &PayoutHandler{
		payouts:   payouts,
		validator: validator.New(),
	}
}

type listBatchesQuery struct {
	Limit  int `validate:"gte=0,lte=100"`
	Offset int `validate:"gte=0"`
}

// ListBatches handles GET /api/v1/doctors/{doctorId}/batches
func (h *PayoutHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "invalid doctor ID")
		return
	}

	query := listBatchesQuery{
		Limit:  intQueryParam(r, "limit", 0),
		Offset: intQueryParam(r, "offset", 0),
	}
	if err := h.validator.Struct(query); err != nil {
		response.BadRequest(w, "invalid pagination parameters")
		return
	}

	batches, err := h.payouts.ListBatches(r.Context(), doctorID, query.Limit, query.Offset)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, batches)
}

// GetBatch handles GET /api/v1/doctors/{doctorId}/batches/{batchId}
func (h *PayoutHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "invalid doctor ID")
		return
	}

	batchID, err := uuid.Parse(vars["batchId"])
	if err != nil {
		response.BadRequest(w, "invalid batch ID")
		return
	}

	batch, payments, err := h.payouts.GetBatch(r.Context(), doctorID, batchID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, struct {
		Batch    *domain.PayoutBatch `json:"batch"`
		Payments []*domain.Payment   `json:"payments"`
	}{Batch: batch, Payments: payments})
}

// PayoutStats handles GET /api/v1/doctors/{doctorId}/payout-stats
func (h *PayoutHandler) PayoutStats(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "invalid doctor ID")
		return
	}

	stats, err := h.payouts.PayoutStats(r.Context(), doctorID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, stats)
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1 // fails validation downstream
	}
	return value
}
