package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrSearchTermMissing, http.StatusBadRequest, "search term not provided"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
	}
	for _, tc := range cases {
		code, message := handleError(t, tc.err)
		if code != tc.code || message != tc.message {
			t.Fatalf("%v: got %d %q, want %d %q", tc.err, code, message, tc.code, tc.message)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("fetch product: %w", domain.ErrProductNotFound)
	code, message := handleError(t, wrapped)
	if code != http.StatusNotFound || message != "product not found" {
		t.Fatalf("wrapped sentinel not recognised: %d %q", code, message)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, message := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound || message != "Not Found" {
		t.Fatalf("unexpected mapping: %d %q", code, message)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, message := handleError(t, errors.New("dsn parse failed at host db-internal:3306"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if message != "internal server error" {
		t.Fatalf("internal details leaked: %q", message)
	}
}
