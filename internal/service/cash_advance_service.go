package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
	"github.com/cash-advance-monitoring/cam-api/pkg/export"
)

const statsCacheKey = "cash_advance:stats"

type cashAdvanceRepository interface {
	List(ctx context.Context, filter models.CashAdvanceFilter) ([]models.CashAdvance, error)
	FindByID(ctx context.Context, id string) (*models.CashAdvance, error)
	Create(ctx context.Context, advance *models.CashAdvance) error
	UpdateStatus(ctx context.Context, id string, change models.StatusChange) error
	SetRetirementNotes(ctx context.Context, id, notes string, retiredAt time.Time) error
	Stats(ctx context.Context) (*models.CashAdvanceStats, error)
}

type staffReader interface {
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	FindSummariesByIDs(ctx context.Context, ids []string) (map[string]models.StaffSummary, error)
}

// CreateCashAdvanceRequest is the payload for a new request.
type CreateCashAdvanceRequest struct {
	StaffID       string    `json:"staffId" validate:"required"`
	Purpose       string    `json:"purpose" validate:"required,max=200"`
	Amount        float64   `json:"amount" validate:"required"`
	Currency      string    `json:"currency" validate:"required,oneof=USD EUR GBP NGN"`
	NeededBy      time.Time `json:"neededBy" validate:"required"`
	Description   string    `json:"description" validate:"required,max=1000"`
	ProjectCode   *string   `json:"projectCode" validate:"omitempty,max=50"`
	PaymentMethod string    `json:"paymentMethod" validate:"required,oneof=bank_transfer check cash"`
}

// UpdateStatusRequest transitions a request to a new status.
type UpdateStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejectionReason" validate:"omitempty,max=500"`
	// ApprovedBy is trusted from the caller when no session token resolves
	// an acting identity.
	ApprovedBy *string `json:"approvedBy"`
}

// RetirementRequest records retirement notes.
type RetirementRequest struct {
	RetirementNotes string `json:"retirementNotes" validate:"required,max=1000"`
}

// CashAdvanceService orchestrates request creation, lifecycle transitions and
// reporting.
type CashAdvanceService struct {
	repo      cashAdvanceRepository
	staff     staffReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCashAdvanceService constructs a CashAdvanceService.
func NewCashAdvanceService(repo cashAdvanceRepository, staff staffReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CashAdvanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CashAdvanceService{repo: repo, staff: staff, cache: cache, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// Create validates and persists a new cash-advance request. The staff name
// and email are snapshotted from the staff record at this instant.
func (s *CashAdvanceService) Create(ctx context.Context, req CreateCashAdvanceRequest) (*models.CashAdvance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid cash advance payload"))
	}
	if req.Amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Amount must be greater than 0")
	}
	if err := validateID(req.StaffID, "Invalid staff ID"); err != nil {
		return nil, err
	}

	staff, err := s.staff.FindByID(ctx, req.StaffID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}

	advance := &models.CashAdvance{
		StaffID:       staff.ID,
		StaffName:     staff.FullName(),
		StaffEmail:    staff.Email,
		Purpose:       strings.TrimSpace(req.Purpose),
		Amount:        req.Amount,
		Currency:      req.Currency,
		NeededBy:      req.NeededBy,
		Description:   strings.TrimSpace(req.Description),
		ProjectCode:   normalizeOptional(req.ProjectCode),
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
		Attachments:   models.AttachmentList{},
	}

	if err := s.repo.Create(ctx, advance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cash advance")
	}

	s.invalidateStats(ctx)
	s.populate(ctx, advance)
	return advance, nil
}

// Get returns a request with its staff and approver references resolved.
func (s *CashAdvanceService) Get(ctx context.Context, id string) (*models.CashAdvance, error) {
	if err := validateID(id, "Invalid cash advance ID"); err != nil {
		return nil, err
	}
	advance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Cash advance request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cash advance")
	}
	s.populate(ctx, advance)
	return advance, nil
}

// List returns matching requests, newest first, with references resolved.
// The status filter is passed through as-is: an unrecognized value simply
// matches nothing and yields an empty list.
func (s *CashAdvanceService) List(ctx context.Context, filter models.CashAdvanceFilter) ([]models.CashAdvance, error) {
	start := time.Now()
	advances, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cash advances")
	}
	s.metrics.ObserveDBQuery("cash_advance_list", time.Since(start))
	s.populateAll(ctx, advances)
	return advances, nil
}

// ListForStaff returns requests scoped to one staff member.
func (s *CashAdvanceService) ListForStaff(ctx context.Context, staffID, status string) ([]models.CashAdvance, error) {
	if err := validateID(staffID, "Invalid staff ID"); err != nil {
		return nil, err
	}
	return s.List(ctx, models.CashAdvanceFilter{StaffID: staffID, Status: status})
}

// UpdateStatus sets a new status together with its side-effect fields. No
// transition graph is enforced: any target status is accepted from any
// current one, matching the documented contract.
func (s *CashAdvanceService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest, actingStaffID string) (*models.CashAdvance, error) {
	if err := validateID(id, "Invalid cash advance ID"); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "Status is required"))
	}
	if !models.ValidStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid status value")
	}

	change := models.StatusChange{Status: req.Status}
	now := s.now().UTC()

	switch req.Status {
	case models.StatusApproved:
		approver := actingStaffID
		if approver == "" && req.ApprovedBy != nil {
			approver = *req.ApprovedBy
		}
		change.TouchApproval = true
		if approver != "" {
			change.ApprovedBy = &approver
		}
		change.ApprovedAt = &now
		change.TouchRejection = true // clears any prior rejection reason
	case models.StatusRejected:
		if req.RejectionReason == nil || strings.TrimSpace(*req.RejectionReason) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Rejection reason is required when rejecting a request")
		}
		reason := strings.TrimSpace(*req.RejectionReason)
		change.TouchRejection = true
		change.RejectionReason = &reason
		change.TouchApproval = true // clears approvedBy and approvedAt
	case models.StatusDisbursed:
		change.DisbursedAt = &now
	case models.StatusRetired:
		change.RetiredAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, change); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Cash advance request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update cash advance status")
	}

	s.invalidateStats(ctx)
	return s.Get(ctx, id)
}

// AddRetirementNotes records retirement notes and forces the request into the
// retired status, independent of its current one.
func (s *CashAdvanceService) AddRetirementNotes(ctx context.Context, id string, req RetirementRequest) (*models.CashAdvance, error) {
	if err := validateID(id, "Invalid cash advance ID"); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Retirement notes are required")
	}

	if err := s.repo.SetRetirementNotes(ctx, id, strings.TrimSpace(req.RetirementNotes), s.now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Cash advance request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add retirement notes")
	}

	s.invalidateStats(ctx)
	return s.Get(ctx, id)
}

// Stats aggregates request counts and committed amounts, optionally through
// the stats cache.
func (s *CashAdvanceService) Stats(ctx context.Context) (*models.CashAdvanceStats, error) {
	if s.cache.Enabled() {
		var cached models.CashAdvanceStats
		if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	start := time.Now()
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}
	s.metrics.ObserveDBQuery("cash_advance_stats", time.Since(start))

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, statsCacheKey, stats, 0); err != nil {
			s.logger.Warn("failed to cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

// BuildExport renders the filtered request list as a tabular dataset for the
// export endpoint.
func (s *CashAdvanceService) BuildExport(ctx context.Context, filter models.CashAdvanceFilter) (export.Dataset, error) {
	advances, err := s.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}

	headers := []string{"Staff", "Email", "Purpose", "Amount", "Currency", "Status", "Needed By", "Created At"}
	rows := make([]map[string]string, 0, len(advances))
	for _, a := range advances {
		rows = append(rows, map[string]string{
			"Staff":      a.StaffName,
			"Email":      a.StaffEmail,
			"Purpose":    a.Purpose,
			"Amount":     fmt.Sprintf("%.2f", a.Amount),
			"Currency":   a.Currency,
			"Status":     a.Status,
			"Needed By":  a.NeededBy.Format("2006-01-02"),
			"Created At": a.CreatedAt.Format("2006-01-02"),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, nil
}

// populateAll resolves staff and approver references for a batch of records
// after the query, in the service layer.
func (s *CashAdvanceService) populateAll(ctx context.Context, advances []models.CashAdvance) {
	if len(advances) == 0 {
		return
	}
	idSet := make(map[string]struct{}, len(advances))
	for _, a := range advances {
		idSet[a.StaffID] = struct{}{}
		if a.ApprovedBy != nil {
			idSet[*a.ApprovedBy] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.staff.FindSummariesByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to resolve staff references", zap.Error(err))
		return
	}
	for i := range advances {
		attach(&advances[i], summaries)
	}
}

func (s *CashAdvanceService) populate(ctx context.Context, advance *models.CashAdvance) {
	ids := []string{advance.StaffID}
	if advance.ApprovedBy != nil {
		ids = append(ids, *advance.ApprovedBy)
	}
	summaries, err := s.staff.FindSummariesByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to resolve staff references", zap.Error(err))
		return
	}
	attach(advance, summaries)
}

func attach(advance *models.CashAdvance, summaries map[string]models.StaffSummary) {
	if summary, ok := summaries[advance.StaffID]; ok {
		cp := summary
		advance.Staff = &cp
	}
	if advance.ApprovedBy != nil {
		if summary, ok := summaries[*advance.ApprovedBy]; ok {
			cp := summary
			advance.Approver = &cp
		}
	}
}

func (s *CashAdvanceService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}
