package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
)

type staffRepository interface {
	List(ctx context.Context) ([]models.Staff, error)
	Search(ctx context.Context, term string) ([]models.Staff, error)
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsByStaffCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id string) error
}

type tokenIssuer interface {
	Issue(staff *models.Staff) (string, error)
}

// RegisterStaffRequest is the payload for registering staff.
type RegisterStaffRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	FirstName  string  `json:"firstName" validate:"required,max=50"`
	LastName   string  `json:"lastName" validate:"required,max=50"`
	Phone      string  `json:"phone" validate:"required"`
	StaffCode  string  `json:"staffId" validate:"required"`
	JobRole    string  `json:"jobRole" validate:"required,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// UpdateStaffRequest is the partial-update payload; nil fields are left
// unchanged.
type UpdateStaffRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FirstName  *string `json:"firstName" validate:"omitempty,max=50"`
	LastName   *string `json:"lastName" validate:"omitempty,max=50"`
	Phone      *string `json:"phone"`
	StaffCode  *string `json:"staffId"`
	JobRole    *string `json:"jobRole" validate:"omitempty,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	IsActive   *bool   `json:"isActive"`
	IsVerified *bool   `json:"isVerified"`
}

// StaffService orchestrates staff registration and roster operations.
type StaffService struct {
	repo      staffRepository
	tokens    tokenIssuer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(repo staffRepository, tokens tokenIssuer, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, tokens: tokens, validator: validate, logger: logger}
}

// Register validates and persists a new staff record, returning it together
// with an issued session token.
func (s *StaffService) Register(ctx context.Context, req RegisterStaffRequest) (*models.Staff, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid staff payload"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.ToUpper(strings.TrimSpace(req.StaffCode))

	if err := s.ensureUniqueFields(ctx, email, code, ""); err != nil {
		return nil, "", err
	}

	staff := &models.Staff{
		Email:      email,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      strings.TrimSpace(req.Phone),
		StaffCode:  code,
		JobRole:    strings.TrimSpace(req.JobRole),
		Department: normalizeOptional(req.Department),
		IsActive:   true,
		IsVerified: false,
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, "", appErrors.Clone(appErrors.ErrDuplicate, field+" already exists")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register staff")
	}

	token, err := s.tokens.Issue(staff)
	if err != nil {
		s.logger.Warn("failed to issue session token", zap.String("staff_id", staff.ID), zap.Error(err))
		return staff, "", nil
	}
	return staff, token, nil
}

// Get returns a staff record by id.
func (s *StaffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	if err := validateID(id, "Invalid staff ID"); err != nil {
		return nil, err
	}
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

// List returns every staff record, newest first.
func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// Search returns staff whose identity fields contain the term.
func (s *StaffService) Search(ctx context.Context, term string) ([]models.Staff, error) {
	staff, err := s.repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search staff")
	}
	return staff, nil
}

// Update applies supplied fields to an existing record, re-checking
// uniqueness for email and staff code against everyone else.
func (s *StaffService) Update(ctx context.Context, id string, req UpdateStaffRequest) (*models.Staff, error) {
	if err := validateID(id, "Invalid staff ID"); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid staff payload"))
	}

	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}

	email := staff.Email
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	code := staff.StaffCode
	if req.StaffCode != nil {
		code = strings.ToUpper(strings.TrimSpace(*req.StaffCode))
	}
	if req.Email != nil || req.StaffCode != nil {
		if err := s.ensureUniqueFields(ctx, email, code, id); err != nil {
			return nil, err
		}
	}

	staff.Email = email
	staff.StaffCode = code
	if req.FirstName != nil {
		staff.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		staff.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		staff.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.JobRole != nil {
		staff.JobRole = strings.TrimSpace(*req.JobRole)
	}
	if req.Department != nil {
		staff.Department = normalizeOptional(req.Department)
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		staff.IsVerified = *req.IsVerified
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, appErrors.Clone(appErrors.ErrDuplicate, field+" already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff")
	}
	return staff, nil
}

// Delete removes a staff record. Existing cash advances that reference it are
// not touched.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "Invalid staff ID"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "Staff member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff")
	}
	return nil
}

func (s *StaffService) ensureUniqueFields(ctx context.Context, email, code, excludeID string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrDuplicate, "Staff already exists with this email")
	}

	exists, err = s.repo.ExistsByStaffCode(ctx, code, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check staff ID uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrDuplicate, "Staff ID already exists")
	}
	return nil
}

func validateID(id, message string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, message)
	}
	return nil
}
