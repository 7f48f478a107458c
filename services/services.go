package services

import (
	"context"
	"strings"

	"SmartCare360/apperrors"

	"github.com/google/uuid"
)

// Auditor appends an audit entry. Implementations never fail the caller.
type Auditor interface {
	Record(ctx context.Context, userID, action, details string)
}

const msgRequiredFields = "All required fields must be provided"

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func validateID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError("Invalid " + what + " id")
	}
	return nil
}
