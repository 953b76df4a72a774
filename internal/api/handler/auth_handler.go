package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/api/metrics"
	"github.com/royalsilk/storefront/internal/api/middleware"
	"github.com/royalsilk/storefront/internal/core/ports"
	"github.com/royalsilk/storefront/internal/core/validate"
)

// Registration field length bounds, measured in characters.
const (
	nameMinLen     = 2
	nameMaxLen     = 30
	passwordMaxLen = 50
)

// AuthHandler serves the login and registration routes. Validation failures
// and bad credentials are normal page outcomes; only store failures reach the
// error handler.
type AuthHandler struct {
	auth     ports.AuthService
	emails   validate.EmailChecker
	sessions *middleware.SessionManager
	audit    auditSink
	logger   zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, emails validate.EmailChecker, sessions *middleware.SessionManager, audit auditSink, logger zerolog.Logger) *AuthHandler {
	if audit == nil {
		audit = noopAudit{}
	}
	return &AuthHandler{auth: auth, emails: emails, sessions: sessions, audit: audit, logger: logger}
}

type formPage struct {
	Page   string   `json:"page"`
	Fields []string `json:"fields"`
	Action string   `json:"action"`
}

type loginPage struct {
	Page             string            `json:"page"`
	Authenticated    bool              `json:"authenticate-user-result"`
	Profile          any               `json:"profile,omitempty"`
	ValidationErrors map[string]string `json:"validation-errors,omitempty"`
}

type registerPage struct {
	Page             string            `json:"page"`
	Stored           bool              `json:"store_new_user_details_result"`
	ValidationErrors map[string]string `json:"validation-errors,omitempty"`
}

// LoginForm serves the user_login route.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formPage{
		Page:   "user_login",
		Fields: []string{"user_email", "user_password"},
		Action: "/?route=process_login",
	})
}

// RegisterForm serves the user_register route.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formPage{
		Page: "user_register",
		Fields: []string{
			"new_user_name", "new_user_surname", "new_user_email",
			"new_user_password", "new_user_address", "new_user_city",
		},
		Action: "/?route=process_new_user_details",
	})
}

// ProcessLogin serves the process_login route: validate the credentials,
// authenticate, and establish the session on success.
func (h *AuthHandler) ProcessLogin(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Redirect(http.StatusSeeOther, "/?route=index")
	}

	input := formInput(c)
	v := validate.New(h.emails, h.logger)
	email := v.LoginEmail(c.Request().Context(), "user_email", input)
	password := v.LoginPassword("user_password", input, passwordMaxLen)

	if v.HasErrors() {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, loginPage{
			Page:             "process_login",
			Authenticated:    false,
			ValidationErrors: v.Errors(),
		})
	}

	result, err := h.auth.Login(c.Request().Context(), middleware.SessionID(c), email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	outcome := "failure"
	if result.Authenticated {
		outcome = "success"
	}
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	h.audit.Enqueue(auditEntry(c, "process_login", "login", outcome))

	return c.JSON(http.StatusOK, loginPage{
		Page:          "process_login",
		Authenticated: result.Authenticated,
		Profile:       result.Profile,
	})
}

// ProcessRegister serves the process_new_user_details route: validate every
// field, report all problems in one pass, and store the new account when the
// input is clean.
func (h *AuthHandler) ProcessRegister(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Redirect(http.StatusSeeOther, "/?route=index")
	}

	input := formInput(c)
	v := validate.New(h.emails, h.logger)

	registration := ports.RegisterInput{
		Name:     v.String("new_user_name", input, nameMinLen, nameMaxLen),
		Surname:  v.String("new_user_surname", input, nameMinLen, nameMaxLen),
		Email:    v.Email(c.Request().Context(), "new_user_email", input),
		Password: v.Password("new_user_password", input, passwordMaxLen),
		Address:  v.Address("new_user_address", input),
		City:     v.City("new_user_city", input),
	}

	if v.HasErrors() {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, registerPage{
			Page:             "process_new_user_details",
			Stored:           false,
			ValidationErrors: v.Errors(),
		})
	}

	stored, err := h.auth.Register(c.Request().Context(), registration)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	outcome := "failure"
	if stored {
		outcome = "success"
	}
	metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
	h.audit.Enqueue(auditEntry(c, "process_new_user_details", "register", outcome))

	return c.JSON(http.StatusOK, registerPage{
		Page:   "process_new_user_details",
		Stored: stored,
	})
}

// Logout serves the user_logout route: destroy the session and expire the
// cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.audit.Enqueue(auditEntry(c, "user_logout", "logout", ""))
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"page":       "user_logout",
		"logged_out": true,
	})
}
