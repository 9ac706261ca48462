package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
)

const cashAdvanceColumns = "id, staff_id, staff_name, staff_email, purpose, amount, currency, needed_by, description, project_code, payment_method, status, approved_by, approved_at, rejection_reason, disbursed_at, retired_at, retirement_notes, attachments, created_at, updated_at"

// CashAdvanceRepository manages persistence for cash-advance requests.
type CashAdvanceRepository struct {
	db *sqlx.DB
}

// NewCashAdvanceRepository constructs a CashAdvanceRepository.
func NewCashAdvanceRepository(db *sqlx.DB) *CashAdvanceRepository {
	return &CashAdvanceRepository{db: db}
}

// List returns cash advances matching the filter, newest first. Page and
// Limit on the filter are deliberately not applied.
func (r *CashAdvanceRepository) List(ctx context.Context, filter models.CashAdvanceFilter) ([]models.CashAdvance, error) {
	base := fmt.Sprintf("SELECT %s FROM cash_advances WHERE 1=1", cashAdvanceColumns)
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.StaffID != "" {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", len(args)+1))
		args = append(args, filter.StaffID)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var advances []models.CashAdvance
	if err := r.db.SelectContext(ctx, &advances, query, args...); err != nil {
		return nil, fmt.Errorf("list cash advances: %w", err)
	}
	return advances, nil
}

// FindByID fetches a cash advance by ID.
func (r *CashAdvanceRepository) FindByID(ctx context.Context, id string) (*models.CashAdvance, error) {
	query := fmt.Sprintf("SELECT %s FROM cash_advances WHERE id = $1", cashAdvanceColumns)
	var advance models.CashAdvance
	if err := r.db.GetContext(ctx, &advance, query, id); err != nil {
		return nil, err
	}
	return &advance, nil
}

// Create inserts a new cash-advance request.
func (r *CashAdvanceRepository) Create(ctx context.Context, advance *models.CashAdvance) error {
	if advance.ID == "" {
		advance.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if advance.CreatedAt.IsZero() {
		advance.CreatedAt = now
	}
	advance.UpdatedAt = now
	if advance.Attachments == nil {
		advance.Attachments = models.AttachmentList{}
	}

	const query = `INSERT INTO cash_advances (id, staff_id, staff_name, staff_email, purpose, amount, currency, needed_by, description, project_code, payment_method, status, approved_by, approved_at, rejection_reason, disbursed_at, retired_at, retirement_notes, attachments, created_at, updated_at)
		VALUES (:id, :staff_id, :staff_name, :staff_email, :purpose, :amount, :currency, :needed_by, :description, :project_code, :payment_method, :status, :approved_by, :approved_at, :rejection_reason, :disbursed_at, :retired_at, :retirement_notes, :attachments, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, advance); err != nil {
		return fmt.Errorf("create cash advance: %w", err)
	}
	return nil
}

// UpdateStatus applies a status transition in a single write. Columns flagged
// by the change are written (possibly to NULL); everything else is untouched.
// Returns sql.ErrNoRows when the record does not exist.
func (r *CashAdvanceRepository) UpdateStatus(ctx context.Context, id string, change models.StatusChange) error {
	sets := []string{"status = $1", "updated_at = $2"}
	args := []interface{}{change.Status, time.Now().UTC()}

	if change.TouchApproval {
		sets = append(sets, fmt.Sprintf("approved_by = $%d", len(args)+1))
		args = append(args, change.ApprovedBy)
		sets = append(sets, fmt.Sprintf("approved_at = $%d", len(args)+1))
		args = append(args, change.ApprovedAt)
	}
	if change.TouchRejection {
		sets = append(sets, fmt.Sprintf("rejection_reason = $%d", len(args)+1))
		args = append(args, change.RejectionReason)
	}
	if change.DisbursedAt != nil {
		sets = append(sets, fmt.Sprintf("disbursed_at = $%d", len(args)+1))
		args = append(args, change.DisbursedAt)
	}
	if change.RetiredAt != nil {
		sets = append(sets, fmt.Sprintf("retired_at = $%d", len(args)+1))
		args = append(args, change.RetiredAt)
	}

	query := fmt.Sprintf("UPDATE cash_advances SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)+1)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update cash advance status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cash advance status rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetRetirementNotes records retirement notes and forces the record into the
// retired status, independent of its current one.
func (r *CashAdvanceRepository) SetRetirementNotes(ctx context.Context, id, notes string, retiredAt time.Time) error {
	const query = `UPDATE cash_advances SET retirement_notes = $2, status = $3, retired_at = $4, updated_at = $5 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, notes, models.StatusRetired, retiredAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set retirement notes: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set retirement notes rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats aggregates request counts and the amount sum over committed requests
// (approved, disbursed or retired) in one query.
func (r *CashAdvanceRepository) Stats(ctx context.Context) (*models.CashAdvanceStats, error) {
	const query = `SELECT
		COUNT(*) AS total_requests,
		COUNT(*) FILTER (WHERE status = 'pending') AS pending_requests,
		COUNT(*) FILTER (WHERE status = 'approved') AS approved_requests,
		COUNT(*) FILTER (WHERE status = 'disbursed') AS disbursed_requests,
		COALESCE(SUM(amount) FILTER (WHERE status IN ('approved', 'disbursed', 'retired')), 0) AS total_amount
	FROM cash_advances`

	var stats models.CashAdvanceStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("cash advance stats: %w", err)
	}
	return &stats, nil
}
