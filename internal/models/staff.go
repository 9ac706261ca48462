package models

import "time"

// Staff represents a company employee record. StaffCode is the human-assigned
// code (serialized as staffId to keep the public contract), distinct from the
// store-assigned record ID.
type Staff struct {
	ID         string     `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	FirstName  string     `db:"first_name" json:"firstName"`
	LastName   string     `db:"last_name" json:"lastName"`
	Phone      string     `db:"phone" json:"phone"`
	StaffCode  string     `db:"staff_code" json:"staffId"`
	JobRole    string     `db:"job_role" json:"jobRole"`
	Department *string    `db:"department" json:"department,omitempty"`
	IsActive   bool       `db:"is_active" json:"isActive"`
	IsVerified bool       `db:"is_verified" json:"isVerified"`
	LastLogin  *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name the way cash-advance snapshots store it.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StaffSummary is the reduced projection attached to cash-advance records in
// place of a bare reference.
type StaffSummary struct {
	ID         string  `db:"id" json:"id"`
	FirstName  string  `db:"first_name" json:"firstName"`
	LastName   string  `db:"last_name" json:"lastName"`
	Email      string  `db:"email" json:"email"`
	StaffCode  string  `db:"staff_code" json:"staffId"`
	Phone      string  `db:"phone" json:"phone,omitempty"`
	JobRole    string  `db:"job_role" json:"jobRole,omitempty"`
	Department *string `db:"department" json:"department,omitempty"`
}
