package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
)

const staffColumns = "id, email, first_name, last_name, phone, staff_code, job_role, department, is_active, is_verified, last_login, created_at, updated_at"

// StaffRepository manages persistence for staff records.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns all staff ordered by creation time, newest first.
func (r *StaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff ORDER BY created_at DESC", staffColumns)
	var staff []models.Staff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// Search returns staff where any identity field contains the term,
// case-insensitively, ordered by creation time descending.
func (r *StaffRepository) Search(ctx context.Context, term string) ([]models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR staff_code ILIKE $1 OR job_role ILIKE $1
		ORDER BY created_at DESC`, staffColumns)
	var staff []models.Staff
	if err := r.db.SelectContext(ctx, &staff, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("search staff: %w", err)
	}
	return staff, nil
}

// FindByID fetches a staff record by ID.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff WHERE id = $1", staffColumns)
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, err
	}
	return &staff, nil
}

// FindSummariesByIDs loads reduced staff projections for the given record IDs.
func (r *StaffRepository) FindSummariesByIDs(ctx context.Context, ids []string) (map[string]models.StaffSummary, error) {
	if len(ids) == 0 {
		return map[string]models.StaffSummary{}, nil
	}
	query, args, err := sqlx.In("SELECT id, first_name, last_name, email, staff_code, phone, job_role, department FROM staff WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build staff summary query: %w", err)
	}
	query = r.db.Rebind(query)

	var summaries []models.StaffSummary
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("load staff summaries: %w", err)
	}

	byID := make(map[string]models.StaffSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	return byID, nil
}

// ExistsByEmail checks if another staff record uses the same email,
// case-insensitively.
func (r *StaffRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM staff WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check staff email: %w", err)
	}
	return true, nil
}

// ExistsByStaffCode checks if another staff record uses the same staff code,
// case-insensitively.
func (r *StaffRepository) ExistsByStaffCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := "SELECT 1 FROM staff WHERE UPPER(staff_code) = UPPER($1)"
	args := []interface{}{code}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check staff code: %w", err)
	}
	return true, nil
}

// Create inserts a new staff record.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = now
	}
	staff.UpdatedAt = now

	const query = `INSERT INTO staff (id, email, first_name, last_name, phone, staff_code, job_role, department, is_active, is_verified, last_login, created_at, updated_at)
		VALUES (:id, :email, :first_name, :last_name, :phone, :staff_code, :job_role, :department, :is_active, :is_verified, :last_login, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// Update modifies an existing staff record.
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	staff.UpdatedAt = time.Now().UTC()
	const query = `UPDATE staff SET email = :email, first_name = :first_name, last_name = :last_name, phone = :phone,
		staff_code = :staff_code, job_role = :job_role, department = :department, is_active = :is_active,
		is_verified = :is_verified, last_login = :last_login, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete removes a staff record. Cash-advance rows referencing it are left in
// place; dangling references are an accepted limitation.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete staff rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
