package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/docpay/settlement-engine/internal/domain"
)

type mockPayoutReader struct {
	mock.Mock
}

func (m *mockPayoutReader) ListBatches(ctx context.Context, doctorID uuid.UUID, limit, offset int) (*domain.BatchListResponse, error) {
	args := m.Called(ctx, doctorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchListResponse), args.Error(1)
}

func (m *mockPayoutReader) GetBatch(ctx context.Context, doctorID, batchID uuid.UUID) (*domain.PayoutBatch, []*domain.Payment, error) {
	args := m.Called(ctx, doctorID, batchID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PayoutBatch), args.Get(1).([]*domain.Payment), args.Error(2)
}

func (m *mockPayoutReader) PayoutStats(ctx context.Context, doctorID uuid.UUID) (*domain.PayoutStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutStats), args.Error(1)
}

func payoutRouter(h *PayoutHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/doctors/{doctorId}/batches", h.ListBatches).Methods("GET")
	router.HandleFunc("/api/v1/doctors/{doctorId}/batches/{batchId}", h.GetBatch).Methods("GET")
	router.HandleFunc("/api/v1/doctors/{doctorId}/payout-stats", h.PayoutStats).Methods("GET")
	return router
}

func TestListBatchesHandler_PassesPagination(t *testing.T) {
	reader := &mockPayoutReader{}
	h := NewPayoutHandler(reader)
	doctorID := uuid.New()

	reader.On("ListBatches", mock.Anything, doctorID, 10, 20).Return(&domain.BatchListResponse{
		Batches: []*domain.PayoutBatch{},
		Total:   0,
		Limit:   10,
		Offset:  20,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/batches?limit=10&offset=20", nil)
	recorder := httptest.NewRecorder()
	payoutRouter(h).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	reader.AssertExpectations(t)
}

func TestListBatchesHandler_RejectsBadPagination(t *testing.T) {
	reader := &mockPayoutReader{}
	h := NewPayoutHandler(reader)
	doctorID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/batches?limit=5000", nil)
	recorder := httptest.NewRecorder()
	payoutRouter(h).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	reader.AssertNotCalled(t, "ListBatches", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBatchHandler_InvalidBatchID(t *testing.T) {
	reader := &mockPayoutReader{}
	h := NewPayoutHandler(reader)
	doctorID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/batches/nope", nil)
	recorder := httptest.NewRecorder()
	payoutRouter(h).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPayoutStatsHandler(t *testing.T) {
	reader := &mockPayoutReader{}
	h := NewPayoutHandler(reader)
	doctorID := uuid.New()

	reader.On("PayoutStats", mock.Anything, doctorID).Return(&domain.PayoutStats{DoctorID: doctorID}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/payout-stats", nil)
	recorder := httptest.NewRecorder()
	payoutRouter(h).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
