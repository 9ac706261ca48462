package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cash-advance-monitoring/cam-api/internal/middleware"
	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
	"github.com/cash-advance-monitoring/cam-api/pkg/export"
)

type fakeAdvanceSrv struct {
	advance    *models.CashAdvance
	list       []models.CashAdvance
	stats      *models.CashAdvanceStats
	dataset    export.Dataset
	err        error
	lastActing string
	lastFilter models.CashAdvanceFilter
}

func (f *fakeAdvanceSrv) Create(context.Context, service.CreateCashAdvanceRequest) (*models.CashAdvance, error) {
	return f.advance, f.err
}

func (f *fakeAdvanceSrv) Get(context.Context, string) (*models.CashAdvance, error) {
	return f.advance, f.err
}

func (f *fakeAdvanceSrv) List(_ context.Context, filter models.CashAdvanceFilter) ([]models.CashAdvance, error) {
	f.lastFilter = filter
	return f.list, f.err
}

func (f *fakeAdvanceSrv) ListForStaff(context.Context, string, string) ([]models.CashAdvance, error) {
	return f.list, f.err
}

func (f *fakeAdvanceSrv) UpdateStatus(_ context.Context, _ string, _ service.UpdateStatusRequest, actingStaffID string) (*models.CashAdvance, error) {
	f.lastActing = actingStaffID
	return f.advance, f.err
}

func (f *fakeAdvanceSrv) AddRetirementNotes(context.Context, string, service.RetirementRequest) (*models.CashAdvance, error) {
	return f.advance, f.err
}

func (f *fakeAdvanceSrv) Stats(context.Context) (*models.CashAdvanceStats, error) {
	return f.stats, f.err
}

func (f *fakeAdvanceSrv) BuildExport(_ context.Context, filter models.CashAdvanceFilter) (export.Dataset, error) {
	f.lastFilter = filter
	return f.dataset, f.err
}

func TestCashAdvanceHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{
		advance: &models.CashAdvance{ID: "ca1", Status: models.StatusPending},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"staffId":"s1","purpose":"Field trip","amount":1500,"currency":"NGN","neededBy":"2026-09-15T00:00:00Z","description":"Bus hire","paymentMethod":"bank_transfer"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/cash-advance", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Cash advance request submitted successfully", body["message"])
}

func TestCashAdvanceHandlerListPassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdvanceSrv{list: []models.CashAdvance{{ID: "ca1"}}}
	handler := NewCashAdvanceHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cash-advance?status=approved&staffId=s1&page=3&limit=25", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", srv.lastFilter.Status)
	assert.Equal(t, "s1", srv.lastFilter.StaffID)
	assert.Equal(t, 3, srv.lastFilter.Page)
	assert.Equal(t, 25, srv.lastFilter.Limit)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestCashAdvanceHandlerUpdateStatusUsesActingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdvanceSrv{advance: &models.CashAdvance{ID: "ca1", Status: models.StatusApproved}}
	handler := NewCashAdvanceHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/cash-advance/ca1/status", strings.NewReader(`{"status":"approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "ca1"}}
	c.Set(middleware.ContextIdentityKey, &models.SessionClaims{StaffID: "approver-1"})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approver-1", srv.lastActing)
	body := decodeBody(t, rec)
	assert.Equal(t, "Cash advance request approved successfully", body["message"])
}

func TestCashAdvanceHandlerUpdateStatusRejectionError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{
		err: appErrors.Clone(appErrors.ErrValidation, "Rejection reason is required when rejecting a request"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/cash-advance/ca1/status", strings.NewReader(`{"status":"rejected"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "ca1"}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Rejection reason is required when rejecting a request", body["message"])
}

func TestCashAdvanceHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{
		stats: &models.CashAdvanceStats{TotalRequests: 7, TotalAmount: 42000},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cash-advance/stats/overview", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(7), stats["totalRequests"])
	assert.Equal(t, float64(42000), stats["totalAmount"])
}

func TestCashAdvanceHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{
		dataset: export.Dataset{
			Headers: []string{"Staff", "Amount"},
			Rows:    []map[string]string{{"Staff": "Jane Doe", "Amount": "1500.00"}},
		},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cash-advance/export?format=csv", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cash-advances.csv")
	assert.Contains(t, rec.Body.String(), "Jane Doe")
}

func TestCashAdvanceHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/cash-advance/export?format=xlsx", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCashAdvanceHandlerRetirement(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notes := "Receipts attached"
	handler := NewCashAdvanceHandler(&fakeAdvanceSrv{
		advance: &models.CashAdvance{ID: "ca1", Status: models.StatusRetired, RetirementNotes: &notes},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/cash-advance/ca1/retirement", strings.NewReader(`{"retirementNotes":"Receipts attached"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "ca1"}}

	handler.AddRetirementNotes(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Retirement notes added successfully", body["message"])
}
