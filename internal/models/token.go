package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the session token handed out at staff
// registration. Nothing in this system verifies it on later requests unless
// the caller chooses to present it.
type SessionClaims struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
