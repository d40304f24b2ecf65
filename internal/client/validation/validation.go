// Package validation checks field-level constraints before anything is sent
// to the store. Validators never short-circuit: every violated rule yields
// one Error.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/common"
)

const (
	NameMinLength = 2
	NameMaxLength = 50

	displayNameMinChars = 2
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Error is a single field violation.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the list returned by a failed validation. It matches
// common.ErrValidation under errors.Is.
type Errors []Error

func (es Errors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (es Errors) Is(target error) bool {
	return target == common.ErrValidation
}

// Field returns the messages recorded for field.
func (es Errors) Field(field string) []string {
	var out []string
	for _, e := range es {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Err returns es as an error, or nil when there are no violations.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// ValidateConfiguration checks a profile's branding. Colors and the company
// name are always checked; the contact email only when set.
func ValidateConfiguration(c models.Configuration) Errors {
	var errs Errors

	if !hexColorPattern.MatchString(c.PrimaryColor) {
		errs = append(errs, Error{Field: "primary_color", Message: "Primary color must be a hex color like #2563eb"})
	}
	if !hexColorPattern.MatchString(c.SecondaryColor) {
		errs = append(errs, Error{Field: "secondary_color", Message: "Secondary color must be a hex color like #1e40af"})
	}
	if c.ContactEmail != "" && !emailPattern.MatchString(c.ContactEmail) {
		errs = append(errs, Error{Field: "contact_email", Message: "Contact email is not a valid email address"})
	}
	if countNonSpace(c.CompanyName) < displayNameMinChars {
		errs = append(errs, Error{Field: "company_name", Message: "Company name must be at least 2 characters"})
	}

	return errs
}

// ValidateName checks the name of a saved template.
func ValidateName(name string) Errors {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Errors{{Field: "name", Message: "Name is required"}}
	}

	var errs Errors
	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLength {
		errs = append(errs, Error{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", NameMinLength)})
	}
	if n > NameMaxLength {
		errs = append(errs, Error{Field: "name", Message: fmt.Sprintf("Name is too long (maximum %d characters)", NameMaxLength)})
	}
	return errs
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
