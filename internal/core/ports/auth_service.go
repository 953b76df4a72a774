package ports

import (
	"context"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// RegisterInput carries fully validated registration fields. The password is
// still plain text; hashing happens inside the service.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Address  string
	City     string
}

// LoginResult is the outcome of a credential check. A wrong password or an
// unknown email yields Authenticated=false with a nil Profile; neither is an
// error.
type LoginResult struct {
	Authenticated bool            `json:"authenticate-user-result"`
	Profile       *domain.Profile `json:"profile,omitempty"`
}

// AuthService implements the login and registration pipelines. Errors are
// reserved for credential-store failures.
type AuthService interface {
	Login(ctx context.Context, sessionID, email, password string) (LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (bool, error)
}
