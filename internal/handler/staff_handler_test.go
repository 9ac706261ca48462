package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
)

type fakeStaffSrv struct {
	staff     *models.Staff
	list      []models.Staff
	token     string
	err       error
	deletedID string
}

func (f *fakeStaffSrv) Register(context.Context, service.RegisterStaffRequest) (*models.Staff, string, error) {
	return f.staff, f.token, f.err
}

func (f *fakeStaffSrv) Get(context.Context, string) (*models.Staff, error) {
	return f.staff, f.err
}

func (f *fakeStaffSrv) List(context.Context) ([]models.Staff, error) {
	return f.list, f.err
}

func (f *fakeStaffSrv) Search(context.Context, string) ([]models.Staff, error) {
	return f.list, f.err
}

func (f *fakeStaffSrv) Update(context.Context, string, service.UpdateStaffRequest) (*models.Staff, error) {
	return f.staff, f.err
}

func (f *fakeStaffSrv) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStaffHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStaffHandler(&fakeStaffSrv{
		staff: &models.Staff{ID: "s1", Email: "jane.doe@example.com"},
		token: "session-token",
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"email":"jane.doe@example.com","firstName":"Jane","lastName":"Doe","phone":"+234","staffId":"EMP001","jobRole":"Accountant"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/staff/register", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Staff registered successfully", body["message"])
	assert.Equal(t, "session-token", body["token"])
}

func TestStaffHandlerRegisterDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStaffHandler(&fakeStaffSrv{
		err: appErrors.Clone(appErrors.ErrDuplicate, "Staff already exists with this email"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"email":"jane.doe@example.com","firstName":"Jane","lastName":"Doe","phone":"+234","staffId":"EMP001","jobRole":"Accountant"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/staff/register", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Staff already exists with this email", body["message"])
}

func TestStaffHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStaffHandler(&fakeStaffSrv{list: []models.Staff{{ID: "s1"}, {ID: "s2"}}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/staff", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
}

func TestStaffHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStaffHandler(&fakeStaffSrv{err: appErrors.Clone(appErrors.ErrNotFound, "Staff member not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/staff/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Staff member not found", body["message"])
}

func TestStaffHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeStaffSrv{}
	handler := NewStaffHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/staff/s1", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", srv.deletedID)
	body := decodeBody(t, rec)
	assert.Equal(t, "Staff deleted successfully", body["message"])
}
