// Package contact implements the contact form and its simulated submission.
package contact

import (
	"fmt"
	"strings"
)

type Form struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// FieldErrors lists the required fields that were left empty.
type FieldErrors []string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e, ", "))
}

func (e FieldErrors) Has(field string) bool {
	for _, f := range e {
		if f == field {
			return true
		}
	}
	return false
}

// Validate checks that every field is present. Blank values count as missing.
func (f Form) Validate() error {
	var missing FieldErrors
	fields := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"subject", f.Subject},
		{"message", f.Message},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return missing
	}
	return nil
}
