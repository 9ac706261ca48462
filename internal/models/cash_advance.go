package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Cash-advance lifecycle statuses. Any status may be set as a transition
// target from any other; side-effect fields depend on the target only.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusDisbursed = "disbursed"
	StatusRetired   = "retired"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusDisbursed: {},
	StatusRetired:   {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

// Supported currencies and payment methods.
var (
	Currencies     = []string{"USD", "EUR", "GBP", "NGN"}
	PaymentMethods = []string{"bank_transfer", "check", "cash"}
)

// Attachment holds upload metadata only; the underlying file storage lives
// elsewhere.
type Attachment struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// AttachmentList maps the attachments JSONB column.
type AttachmentList []Attachment

// Value implements driver.Valuer.
func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (a *AttachmentList) Scan(src interface{}) error {
	if src == nil {
		*a = AttachmentList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported attachments type %T", src)
	}
	if len(raw) == 0 {
		*a = AttachmentList{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// CashAdvance is a monetary request record with a lifecycle status.
// StaffName and StaffEmail are snapshots taken from the staff record at
// creation time and are never refreshed afterwards.
type CashAdvance struct {
	ID              string         `db:"id" json:"id"`
	StaffID         string         `db:"staff_id" json:"staffId"`
	StaffName       string         `db:"staff_name" json:"staffName"`
	StaffEmail      string         `db:"staff_email" json:"staffEmail"`
	Purpose         string         `db:"purpose" json:"purpose"`
	Amount          float64        `db:"amount" json:"amount"`
	Currency        string         `db:"currency" json:"currency"`
	NeededBy        time.Time      `db:"needed_by" json:"neededBy"`
	Description     string         `db:"description" json:"description"`
	ProjectCode     *string        `db:"project_code" json:"projectCode,omitempty"`
	PaymentMethod   string         `db:"payment_method" json:"paymentMethod"`
	Status          string         `db:"status" json:"status"`
	ApprovedBy      *string        `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `db:"approved_at" json:"approvedAt,omitempty"`
	RejectionReason *string        `db:"rejection_reason" json:"rejectionReason,omitempty"`
	DisbursedAt     *time.Time     `db:"disbursed_at" json:"disbursedAt,omitempty"`
	RetiredAt       *time.Time     `db:"retired_at" json:"retiredAt,omitempty"`
	RetirementNotes *string        `db:"retirement_notes" json:"retirementNotes,omitempty"`
	Attachments     AttachmentList `db:"attachments" json:"attachments"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`

	// Populated after querying, not stored.
	Staff    *StaffSummary `db:"-" json:"staff,omitempty"`
	Approver *StaffSummary `db:"-" json:"approver,omitempty"`
}

// CashAdvanceFilter captures list filters. Page and Limit are accepted by the
// API but not applied to the query; they are carried here so that behaviour
// stays an explicit decision rather than a parsing gap.
type CashAdvanceFilter struct {
	Status  string
	StaffID string
	Page    int
	Limit   int
}

// StatusChange describes the field side-effects of a status transition.
// Touch flags distinguish "write this column (possibly NULL)" from "leave it
// alone".
type StatusChange struct {
	Status          string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	DisbursedAt     *time.Time
	RetiredAt       *time.Time
	TouchApproval   bool
	TouchRejection  bool
}

// CashAdvanceStats aggregates counts and the committed amount sum.
type CashAdvanceStats struct {
	TotalRequests     int     `db:"total_requests" json:"totalRequests"`
	PendingRequests   int     `db:"pending_requests" json:"pendingRequests"`
	ApprovedRequests  int     `db:"approved_requests" json:"approvedRequests"`
	DisbursedRequests int     `db:"disbursed_requests" json:"disbursedRequests"`
	TotalAmount       float64 `db:"total_amount" json:"totalAmount"`
}
