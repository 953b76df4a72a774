package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubEmailChecker struct {
	exists bool
	err    error
	asked  string
}

func (s *stubEmailChecker) EmailExists(_ context.Context, email string) (bool, error) {
	s.asked = email
	return s.exists, s.err
}

func newTestValidator(checker EmailChecker) *Validator {
	return New(checker, zerolog.Nop())
}

func TestString_Valid(t *testing.T) {
	v := newTestValidator(nil)
	got := v.String("new_user_name", map[string]string{"new_user_name": "Jo"}, 2, 30)
	if got != "Jo" {
		t.Fatalf("expected Jo, got %q", got)
	}
	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.Errors())
	}
}

func TestString_Missing(t *testing.T) {
	v := newTestValidator(nil)
	v.String("new_user_name", map[string]string{}, 2, 30)
	if v.Errors()["new_user_name"] != "new_user_name is required." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestString_StripsSpecialCharactersBeforeLengthCheck(t *testing.T) {
	v := newTestValidator(nil)
	got := v.String("new_user_name", map[string]string{"new_user_name": "<b>Jo</b>"}, 2, 30)
	if got != "bJo/b" {
		t.Fatalf("expected stripped value, got %q", got)
	}
}

func TestString_KeepsQuotes(t *testing.T) {
	v := newTestValidator(nil)
	got := v.String("new_user_name", map[string]string{"new_user_name": `O'Brien`}, 2, 30)
	if got != `O'Brien` {
		t.Fatalf("expected quotes kept, got %q", got)
	}
}

func TestString_TooShortAfterStripping(t *testing.T) {
	v := newTestValidator(nil)
	v.String("new_user_name", map[string]string{"new_user_name": "<>"}, 2, 30)
	if v.Errors()["new_user_name"] != "new_user_name must be at least 2 characters." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestString_TooLong(t *testing.T) {
	v := newTestValidator(nil)
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'a'
	}
	v.String("new_user_surname", map[string]string{"new_user_surname": string(long)}, 2, 30)
	if v.Errors()["new_user_surname"] != "new_user_surname must be at most 30 characters." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestString_CountsRunesNotBytes(t *testing.T) {
	v := newTestValidator(nil)
	got := v.String("new_user_name", map[string]string{"new_user_name": "Zoë"}, 2, 3)
	if got != "Zoë" || v.HasErrors() {
		t.Fatalf("expected multibyte name accepted, got %q errors %v", got, v.Errors())
	}
}

func TestEmail_RegistrationRejectsExisting(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{exists: true})
	v.Email(context.Background(), "new_user_email", map[string]string{"new_user_email": "jo@example.com"})
	if v.Errors()["new_user_email"] != "Email is already registered." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestEmail_RegistrationAcceptsNew(t *testing.T) {
	checker := &stubEmailChecker{exists: false}
	v := newTestValidator(checker)
	got := v.Email(context.Background(), "new_user_email", map[string]string{"new_user_email": " Jo@Example.COM "})
	if got != "jo@example.com" {
		t.Fatalf("expected lower-cased email, got %q", got)
	}
	if checker.asked != "Jo@Example.COM" {
		t.Fatalf("existence checked against %q", checker.asked)
	}
	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.Errors())
	}
}

func TestEmail_InvalidFormatSkipsStoreLookup(t *testing.T) {
	checker := &stubEmailChecker{}
	v := newTestValidator(checker)
	v.Email(context.Background(), "new_user_email", map[string]string{"new_user_email": "not-an-email"})
	if v.Errors()["new_user_email"] != "Invalid email format." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
	if checker.asked != "" {
		t.Fatalf("store should not have been consulted")
	}
}

func TestEmail_Missing(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{})
	v.Email(context.Background(), "new_user_email", map[string]string{})
	if v.Errors()["new_user_email"] != "Email is required." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestEmail_StoreFailure(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{err: errors.New("connection refused")})
	v.Email(context.Background(), "new_user_email", map[string]string{"new_user_email": "jo@example.com"})
	if v.Errors()["new_user_email"] != "Unable to verify email. Please try again." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestLoginEmail_RejectsUnknownAccount(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{exists: false})
	v.LoginEmail(context.Background(), "user_email", map[string]string{"user_email": "jo@example.com"})
	if v.Errors()["user_email"] != "Email not found. Please register first." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestLoginEmail_AcceptsExistingAccount(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{exists: true})
	got := v.LoginEmail(context.Background(), "user_email", map[string]string{"user_email": "jo@example.com"})
	if got != "jo@example.com" || v.HasErrors() {
		t.Fatalf("expected accepted, got %q errors %v", got, v.Errors())
	}
}

func TestPassword_Valid(t *testing.T) {
	v := newTestValidator(nil)
	got := v.Password("new_user_password", map[string]string{"new_user_password": "Abc123!@"}, 50)
	if got != "Abc123!@" || v.HasErrors() {
		t.Fatalf("expected accepted, got %q errors %v", got, v.Errors())
	}
}

func TestPassword_MaxLengthCheckedFirst(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	v := newTestValidator(nil)
	v.Password("new_user_password", map[string]string{"new_user_password": string(long)}, 50)
	if v.Errors()["new_user_password"] != "Password must not exceed 50 characters." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestPassword_TooShort(t *testing.T) {
	v := newTestValidator(nil)
	v.Password("new_user_password", map[string]string{"new_user_password": "Ab1!"}, 50)
	if v.Errors()["new_user_password"] != "Password must be at least 8 characters long." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestPassword_CharacterClasses(t *testing.T) {
	cases := []string{
		"abc123!@abc", // no uppercase
		"ABC123!@ABC", // no lowercase
		"Abcdef!@gh",  // no digit
		"Abc12345de",  // no special
	}
	for _, password := range cases {
		v := newTestValidator(nil)
		v.Password("new_user_password", map[string]string{"new_user_password": password}, 50)
		want := "Password must contain an uppercase letter, lowercase letter, number, and special character."
		if v.Errors()["new_user_password"] != want {
			t.Fatalf("%q: unexpected error: %v", password, v.Errors())
		}
	}
}

func TestPassword_UnderscoreCountsAsSpecial(t *testing.T) {
	v := newTestValidator(nil)
	got := v.Password("new_user_password", map[string]string{"new_user_password": "Abc_12345"}, 50)
	if got != "Abc_12345" || v.HasErrors() {
		t.Fatalf("expected underscore accepted as special, errors %v", v.Errors())
	}
}

func TestLoginPassword_RequiresCompanionEmail(t *testing.T) {
	v := newTestValidator(nil)
	v.LoginPassword("user_password", map[string]string{"user_password": "whatever"}, 50)
	if v.Errors()["user_password"] != "Email must be provided to validate password." {
		t.Fatalf("unexpected error: %v", v.Errors())
	}
}

func TestLoginPassword_SkipsComplexityRules(t *testing.T) {
	v := newTestValidator(nil)
	input := map[string]string{"user_email": "jo@example.com", "user_password": "short"}
	got := v.LoginPassword("user_password", input, 50)
	if got != "short" || v.HasErrors() {
		t.Fatalf("login password must not enforce complexity, errors %v", v.Errors())
	}
}

func TestAddress(t *testing.T) {
	cases := []struct {
		address string
		ok      bool
	}{
		{"12 High Street", true},
		{"12a High Street", true},
		{"High Street", false},
		{"12", false},
		{"12 High Street 2", false},
	}
	for _, tc := range cases {
		v := newTestValidator(nil)
		got := v.Address("new_user_address", map[string]string{"new_user_address": tc.address})
		if tc.ok && (got != tc.address || v.HasErrors()) {
			t.Fatalf("%q: expected accepted, errors %v", tc.address, v.Errors())
		}
		if !tc.ok && v.Errors()["new_user_address"] != "Address must start with a number followed by the street name (e.g., '123 Main Street')." {
			t.Fatalf("%q: unexpected error: %v", tc.address, v.Errors())
		}
	}
}

func TestCity(t *testing.T) {
	cases := []struct {
		city string
		ok   bool
	}{
		{"Leicester", true},
		{"Stoke-on-Trent", true},
		{"Leicester2", false},
	}
	for _, tc := range cases {
		v := newTestValidator(nil)
		got := v.City("new_user_city", map[string]string{"new_user_city": tc.city})
		if tc.ok && (got != tc.city || v.HasErrors()) {
			t.Fatalf("%q: expected accepted, errors %v", tc.city, v.Errors())
		}
		if !tc.ok && v.Errors()["new_user_city"] != "City name can only contain letters, spaces, and hyphens." {
			t.Fatalf("%q: unexpected error: %v", tc.city, v.Errors())
		}
	}
}

func TestValidator_AccumulatesErrorsAcrossFields(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{exists: true})
	input := map[string]string{
		"new_user_name":  "J",
		"new_user_email": "jo@example.com",
	}
	v.String("new_user_name", input, 2, 30)
	v.Email(context.Background(), "new_user_email", input)
	v.Password("new_user_password", input, 50)

	if len(v.Errors()) != 3 {
		t.Fatalf("expected 3 accumulated errors, got %v", v.Errors())
	}
}

func TestValidator_FullRegistrationPasses(t *testing.T) {
	v := newTestValidator(&stubEmailChecker{exists: false})
	input := map[string]string{
		"new_user_name":     "Jo",
		"new_user_surname":  "Lee",
		"new_user_email":    "jo@example.com",
		"new_user_password": "Abc123!@",
		"new_user_address":  "12 High Street",
		"new_user_city":     "Leicester",
	}

	v.String("new_user_name", input, 2, 30)
	v.String("new_user_surname", input, 2, 30)
	v.Email(context.Background(), "new_user_email", input)
	v.Password("new_user_password", input, 50)
	v.Address("new_user_address", input)
	v.City("new_user_city", input)

	if v.HasErrors() {
		t.Fatalf("expected clean run, got %v", v.Errors())
	}
}
