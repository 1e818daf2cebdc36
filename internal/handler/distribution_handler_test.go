package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubDistributionService struct {
	lastReq *service.DistributeRequest
}

func (s *stubDistributionService) Distribute(_ context.Context, _ string, req service.DistributeRequest) ([]model.ProfitDistribution, error) {
	s.lastReq = &req
	return []model.ProfitDistribution{}, nil
}

func (s *stubDistributionService) UpdateStatus(_ context.Context, _, _ string, _ service.DistributionStatusRequest) (*model.ProfitDistribution, error) {
	return nil, nil
}

func (s *stubDistributionService) Delete(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubDistributionService) List(_ context.Context, _, _ int, _, _ string) ([]model.ProfitDistribution, int64, error) {
	return nil, 0, nil
}

func (s *stubDistributionService) Get(_ context.Context, _ string) (*model.ProfitDistribution, error) {
	return nil, nil
}

func postProfits(t *testing.T, svc service.DistributionService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/profits", NewDistributionHandler(svc).Distribute)

	req := httptest.NewRequest(http.MethodPost, "/api/profits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDistributeRequiresAction(t *testing.T) {
	stub := &stubDistributionService{}

	w := postProfits(t, stub, `{"period_type":"MONTHLY","start_date":"2026-01-01","end_date":"2026-01-31"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, stub.lastReq, "service must not be called without an action")

	w = postProfits(t, stub, `{"action":"reconcile","period_type":"MONTHLY","start_date":"2026-01-01","end_date":"2026-01-31"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postProfits(t, stub, `{"action":"distribute","period_type":"MONTHLY","start_date":"2026-01-01","end_date":"2026-01-31"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, stub.lastReq)
	assert.Equal(t, "distribute", stub.lastReq.Action)
}
