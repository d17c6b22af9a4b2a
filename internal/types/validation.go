package types

import (
	"errors"
	"fmt"
	"strings"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the backend has no request for an identifier.
var ErrNotFound = errors.New("request not found")

// ------------------------------
// Validation
// ------------------------------

// ValidateIDPresent rejects empty identifiers before any network call.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateCredentials checks the identifier/credential pair needed for a
// withdraw. Both must be present and non-empty.
func ValidateCredentials(id, editToken string) error {
	if err := ValidateIDPresent(id, "public_id"); err != nil {
		return err
	}
	return ValidateIDPresent(editToken, "edit_token")
}

// Validate checks a create payload locally. Geographic bounds are not
// enforced; the backend owns that decision.
func (p CreateRequestPayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(p.ContactNumber) == "" {
		return fmt.Errorf("contact_number is required")
	}
	if p.Urgency.Rank() < 0 {
		return fmt.Errorf("urgency must be one of critical, high, medium, low")
	}
	if p.PeopleAffected <= 0 {
		return fmt.Errorf("people_affected must be positive")
	}
	return nil
}
