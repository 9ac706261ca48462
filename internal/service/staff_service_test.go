package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
)

type mockStaffRepo struct {
	items      map[string]*models.Staff
	emailIndex map[string]string
	codeIndex  map[string]string
	deleted    []string
	listResult []models.Staff
	listErr    error
}

func (m *mockStaffRepo) List(ctx context.Context) ([]models.Staff, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockStaffRepo) Search(ctx context.Context, term string) ([]models.Staff, error) {
	return m.listResult, nil
}

func (m *mockStaffRepo) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	if staff, ok := m.items[id]; ok {
		cp := *staff
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStaffRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	if owner, ok := m.emailIndex[email]; ok {
		if excludeID == "" || owner != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStaffRepo) ExistsByStaffCode(ctx context.Context, code, excludeID string) (bool, error) {
	if owner, ok := m.codeIndex[code]; ok {
		if excludeID == "" || owner != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	if m.items == nil {
		m.items = make(map[string]*models.Staff)
	}
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	cp := *staff
	m.items[staff.ID] = &cp
	return nil
}

func (m *mockStaffRepo) Update(ctx context.Context, staff *models.Staff) error {
	if m.items == nil {
		m.items = make(map[string]*models.Staff)
	}
	cp := *staff
	m.items[staff.ID] = &cp
	return nil
}

func (m *mockStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) Issue(staff *models.Staff) (string, error) {
	return m.token, m.err
}

func newStaffService(repo *mockStaffRepo, tokens tokenIssuer) *StaffService {
	if tokens == nil {
		tokens = &mockTokenIssuer{token: "session-token"}
	}
	return NewStaffService(repo, tokens, validator.New(), zap.NewNop())
}

func validRegisterRequest() RegisterStaffRequest {
	return RegisterStaffRequest{
		Email:     "Jane.Doe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+2348012345678",
		StaffCode: "emp001",
		JobRole:   "Accountant",
	}
}

func TestStaffServiceRegister(t *testing.T) {
	repo := &mockStaffRepo{}
	service := newStaffService(repo, nil)

	staff, token, err := service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", staff.Email)
	assert.Equal(t, "EMP001", staff.StaffCode)
	assert.True(t, staff.IsActive)
	assert.False(t, staff.IsVerified)
	assert.Equal(t, "session-token", token)
	assert.Len(t, repo.items, 1)
}

func TestStaffServiceRegisterMissingFields(t *testing.T) {
	service := newStaffService(&mockStaffRepo{}, nil)

	_, _, err := service.Register(context.Background(), RegisterStaffRequest{Email: "not-an-email"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestStaffServiceRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := &mockStaffRepo{emailIndex: map[string]string{"jane.doe@example.com": "other"}}
	service := newStaffService(repo, nil)

	_, _, err := service.Register(context.Background(), validRegisterRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Staff already exists with this email", appErr.Message)
}

func TestStaffServiceRegisterDuplicateStaffCode(t *testing.T) {
	repo := &mockStaffRepo{codeIndex: map[string]string{"EMP001": "other"}}
	service := newStaffService(repo, nil)

	_, _, err := service.Register(context.Background(), validRegisterRequest())
	require.Error(t, err)
	assert.Equal(t, "Staff ID already exists", appErrors.FromError(err).Message)
}

func TestStaffServiceRegisterTokenFailureStillSucceeds(t *testing.T) {
	repo := &mockStaffRepo{}
	service := newStaffService(repo, &mockTokenIssuer{err: errors.New("signing broke")})

	staff, token, err := service.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, staff)
	assert.Empty(t, token)
}

func TestStaffServiceGetInvalidID(t *testing.T) {
	service := newStaffService(&mockStaffRepo{}, nil)

	_, err := service.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Invalid staff ID", appErr.Message)
}

func TestStaffServiceGetNotFound(t *testing.T) {
	service := newStaffService(&mockStaffRepo{}, nil)

	_, err := service.Get(context.Background(), uuid.NewString())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Staff member not found", appErr.Message)
}

func TestStaffServiceUpdatePartial(t *testing.T) {
	id := uuid.NewString()
	repo := &mockStaffRepo{
		items: map[string]*models.Staff{
			id: {ID: id, Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe", StaffCode: "EMP001", JobRole: "Accountant", IsActive: true},
		},
	}
	service := newStaffService(repo, nil)

	role := "Senior Accountant"
	updated, err := service.Update(context.Background(), id, UpdateStaffRequest{JobRole: &role})
	require.NoError(t, err)
	assert.Equal(t, "Senior Accountant", updated.JobRole)
	assert.Equal(t, "jane.doe@example.com", updated.Email)
	assert.Equal(t, "EMP001", updated.StaffCode)
}

func TestStaffServiceUpdateDuplicateEmail(t *testing.T) {
	id := uuid.NewString()
	repo := &mockStaffRepo{
		items: map[string]*models.Staff{
			id: {ID: id, Email: "jane.doe@example.com", StaffCode: "EMP001"},
		},
		emailIndex: map[string]string{"taken@example.com": "someone-else"},
	}
	service := newStaffService(repo, nil)

	email := "Taken@Example.com"
	_, err := service.Update(context.Background(), id, UpdateStaffRequest{Email: &email})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestStaffServiceDelete(t *testing.T) {
	id := uuid.NewString()
	repo := &mockStaffRepo{items: map[string]*models.Staff{id: {ID: id}}}
	service := newStaffService(repo, nil)

	require.NoError(t, service.Delete(context.Background(), id))
	assert.Equal(t, []string{id}, repo.deleted)
}

func TestStaffServiceDeleteNotFound(t *testing.T) {
	service := newStaffService(&mockStaffRepo{}, nil)

	err := service.Delete(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
