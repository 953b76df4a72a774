// Package validate checks and normalises raw form input. Failures are
// accumulated per field instead of raised, so a caller can validate a whole
// form and report every problem in one pass. A Validator instance holds the
// state of a single validation run; build a fresh one per request.
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// EmailField is the login form field consulted by LoginPassword to confirm a
// companion email was submitted alongside the password.
const EmailField = "user_email"

// EmailChecker answers whether an account already exists for an email. It is
// the only store access the validator performs.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

var (
	fieldRules = playground.New()

	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[\W_]`)

	addressPattern = regexp.MustCompile(`^\d+[a-zA-Z]?\s+[a-zA-Z\s]+$`)
	cityPattern    = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)
)

// Validator accumulates per-field errors across a single validation run.
type Validator struct {
	emails EmailChecker
	log    zerolog.Logger
	errors map[string]string
}

func New(emails EmailChecker, log zerolog.Logger) *Validator {
	return &Validator{
		emails: emails,
		log:    log,
		errors: make(map[string]string),
	}
}

// HasErrors reports whether any field failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the accumulated field → message map.
func (v *Validator) Errors() map[string]string {
	return v.errors
}

func (v *Validator) fail(field, message string) string {
	v.errors[field] = message
	return ""
}

// String validates a required free-text field. The value is stripped of
// special characters (quotes are kept) and its rune count must fall within
// the inclusive [minLen, maxLen] range; a bound of 0 means unbounded.
func (v *Validator) String(field string, input map[string]string, minLen, maxLen int) string {
	raw, ok := input[field]
	if !ok || raw == "" {
		return v.fail(field, fmt.Sprintf("%s is required.", field))
	}

	sanitized := stripSpecial(raw)
	length := utf8.RuneCountInString(sanitized)

	if minLen > 0 && length < minLen {
		return v.fail(field, fmt.Sprintf("%s must be at least %d characters.", field, minLen))
	}
	if maxLen > 0 && length > maxLen {
		return v.fail(field, fmt.Sprintf("%s must be at most %d characters.", field, maxLen))
	}

	return sanitized
}

// Email validates a registration email: format-checked, required to be new to
// the store, and lower-cased on success.
func (v *Validator) Email(ctx context.Context, field string, input map[string]string) string {
	email, ok := v.checkEmailFormat(field, input)
	if !ok {
		return ""
	}

	exists, err := v.emails.EmailExists(ctx, email)
	if err != nil {
		v.log.Error().Err(err).Str("field", field).Msg("email existence check failed")
		return v.fail(field, "Unable to verify email. Please try again.")
	}
	if exists {
		return v.fail(field, "Email is already registered.")
	}

	return strings.ToLower(email)
}

// LoginEmail validates a login email. The polarity of the existence check is
// inverted relative to Email: here the account must already exist.
func (v *Validator) LoginEmail(ctx context.Context, field string, input map[string]string) string {
	email, ok := v.checkEmailFormat(field, input)
	if !ok {
		return ""
	}

	exists, err := v.emails.EmailExists(ctx, email)
	if err != nil {
		v.log.Error().Err(err).Str("field", field).Msg("email existence check failed")
		return v.fail(field, "Unable to verify email. Please try again.")
	}
	if !exists {
		return v.fail(field, "Email not found. Please register first.")
	}

	return strings.ToLower(email)
}

func (v *Validator) checkEmailFormat(field string, input map[string]string) (string, bool) {
	raw, ok := input[field]
	if !ok || raw == "" {
		v.fail(field, "Email is required.")
		return "", false
	}

	email := sanitizeEmail(strings.TrimSpace(raw))
	if err := fieldRules.Var(email, "required,email"); err != nil {
		v.fail(field, "Invalid email format.")
		return "", false
	}

	return email, true
}

// Password validates a registration password: 8..maxLen runes with at least
// one uppercase letter, one lowercase letter, one digit, and one special
// character. The plain password is returned; hashing happens downstream.
func (v *Validator) Password(field string, input map[string]string, maxLen int) string {
	raw, ok := input[field]
	if !ok || raw == "" {
		return v.fail(field, "Password is required.")
	}

	password := strings.TrimSpace(raw)

	if utf8.RuneCountInString(password) > maxLen {
		return v.fail(field, fmt.Sprintf("Password must not exceed %d characters.", maxLen))
	}
	if utf8.RuneCountInString(password) < 8 {
		return v.fail(field, "Password must be at least 8 characters long.")
	}

	if !hasUpper.MatchString(password) ||
		!hasLower.MatchString(password) ||
		!hasDigit.MatchString(password) ||
		!hasSpecial.MatchString(password) {
		return v.fail(field, "Password must contain an uppercase letter, lowercase letter, number, and special character.")
	}

	return password
}

// LoginPassword validates a login password candidate. It does not verify the
// stored hash; that is the authenticator's job. A companion email field must
// be present in the same input, since the hash lookup is keyed by email.
func (v *Validator) LoginPassword(field string, input map[string]string, maxLen int) string {
	raw, ok := input[field]
	if !ok || raw == "" {
		return v.fail(field, "Password is required.")
	}

	password := strings.TrimSpace(raw)

	if utf8.RuneCountInString(password) > maxLen {
		return v.fail(field, fmt.Sprintf("Password must not exceed %d characters.", maxLen))
	}

	if input[EmailField] == "" {
		return v.fail(field, "Email must be provided to validate password.")
	}

	return password
}

// Address validates a street address of the form "123 Main Street": digits,
// an optional single letter, whitespace, then the street name.
func (v *Validator) Address(field string, input map[string]string) string {
	raw, ok := input[field]
	if !ok || raw == "" {
		return v.fail(field, "Address is required.")
	}

	address := strings.TrimSpace(raw)
	if !addressPattern.MatchString(address) {
		return v.fail(field, "Address must start with a number followed by the street name (e.g., '123 Main Street').")
	}

	return address
}

// City validates a city name: letters, spaces, and hyphens only.
func (v *Validator) City(field string, input map[string]string) string {
	raw, ok := input[field]
	if !ok || raw == "" {
		return v.fail(field, "City name is required.")
	}

	city := stripSpecial(strings.TrimSpace(raw))
	if !cityPattern.MatchString(city) {
		return v.fail(field, "City name can only contain letters, spaces, and hyphens.")
	}

	return city
}

// stripSpecial drops HTML-significant characters and control characters.
// Quotes are deliberately kept rather than entity-encoded.
func stripSpecial(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&':
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// sanitizeEmail removes characters that can never appear in an email address,
// mirroring the permissive pre-filter applied before the format check.
func sanitizeEmail(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		if strings.ContainsRune("!#$%&'*+-/=?^_`{|}~.@[]", r) {
			return r
		}
		return -1
	}, s)
}
