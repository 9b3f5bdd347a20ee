// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/holograph/vault/internal/errors"
)

var (
	// sectionRegex matches the estate section names used as storage path
	// segments (financial_accounts, insurance-policies, ...).
	sectionRegex = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// SectionName validates an estate section name: lowercase alphanumerics,
// underscores, and dashes only, so it is safe inside a storage path.
var SectionName = validation.NewStringRuleWithError(
	func(s string) bool {
		return sectionRegex.MatchString(s)
	},
	validation.NewError("validation_section_name", "must contain only lowercase letters, digits, '_' and '-'"),
)

// MembershipRole validates a grantable tenant role. The owner role is set at
// tenant creation and can never be granted.
var MembershipRole = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == "principal" || s == "delegate"
	},
	validation.NewError("validation_membership_role", "must be either principal or delegate"),
)

// UUID validates canonical UUID string format.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		return uuidRegex.MatchString(s)
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
