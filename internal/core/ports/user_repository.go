package ports

import (
	"context"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// UserRepository is the narrow interface the core uses to reach the users
// table. Lookups are keyed by email; FetchPasswordHash and FetchProfile
// return domain.ErrUserNotFound when no row matches.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	FetchPasswordHash(ctx context.Context, email string) (string, error)
	FetchProfile(ctx context.Context, email string) (*domain.Profile, error)
	FetchProfileByID(ctx context.Context, id int64) (*domain.Profile, error)
	InsertUser(ctx context.Context, user *domain.User) (int64, error)
	ListUsers(ctx context.Context) ([]domain.Profile, error)
}
