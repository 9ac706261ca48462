package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// validationMessage flattens validator errors into a message naming the
// offending fields, mirroring the "missing/invalid fields" contract.
func validationMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, lowerFirst(fe.Field()))
	}
	if len(fields) == 0 {
		return fallback
	}
	return "invalid or missing fields: " + strings.Join(fields, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// uniqueViolationField maps a Postgres unique-violation error to the
// conflicting field name. The store is the final uniqueness enforcer behind
// the service-level pre-checks.
func uniqueViolationField(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "email", true
	case strings.Contains(pqErr.Constraint, "staff_code"):
		return "staffId", true
	default:
		return pqErr.Constraint, true
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
