package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docpay/settlement-engine/internal/domain"
	"github.com/docpay/settlement-engine/pkg/response"
)

// SettlementTrigger is the slice of the settlement service the admin
// endpoint needs.
type SettlementTrigger interface {
	SettleDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.SettlementResult, error)
}

// SettlementHandler exposes the administrative settlement trigger. The
// authorization layer in front of it has already vetted the caller.
type SettlementHandler struct {
	settlement SettlementTrigger
}

func NewSettlementHandler(settlement SettlementTrigger) *SettlementHandler {
	return &SettlementHandler{settlement: settlement}
}

// SettleDoctor handles POST /api/v1/admin/doctors/{doctorId}/settle
func (h *SettlementHandler) SettleDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "invalid doctor ID")
		return
	}

	result, err := h.settlement.SettleDoctor(r.Context(), doctorID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	if result.Created() {
		response.Created(w, result)
		return
	}
	response.Success(w, result)
}
