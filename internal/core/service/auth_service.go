package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

// AuthService implements login and registration on top of the credential
// store. Bad credentials are a normal outcome, not an error; the error return
// is reserved for store failures.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	cost     int
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, sessions: sessions, cost: bcryptCost, logger: logger}
}

// Login verifies the password candidate against the stored hash for email.
// On success the full profile is fetched and user_id is written into the
// session. Zero matching rows and a failed hash comparison both produce an
// unauthenticated result.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (ports.LoginResult, error) {
	hash, err := s.users.FetchPasswordHash(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return ports.LoginResult{Authenticated: false}, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("password hash lookup failed")
		return ports.LoginResult{}, fmt.Errorf("fetch password hash: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		s.logger.Info().Str("email", email).Msg("login rejected")
		return ports.LoginResult{Authenticated: false}, nil
	}

	profile, err := s.users.FetchProfile(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("profile lookup failed")
		return ports.LoginResult{}, fmt.Errorf("fetch profile: %w", err)
	}

	if err := s.sessions.Set(ctx, sessionID, ports.SessionKeyUserID, strconv.FormatInt(profile.ID, 10)); err != nil {
		s.logger.Error().Err(err).Msg("session write failed")
		return ports.LoginResult{}, fmt.Errorf("set session user: %w", err)
	}

	s.logger.Info().Int64("user_id", profile.ID).Msg("login accepted")
	return ports.LoginResult{Authenticated: true, Profile: profile}, nil
}

// Register hashes the validated password and inserts a new customer row.
// Success means exactly one row was inserted. Email uniqueness was already
// checked by the validator; a lost race against a concurrent registration
// surfaces as the store's duplicate-key sentinel and degrades to a clean
// failure.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		Address:      input.Address,
		City:         input.City,
		CreatedAt:    time.Now().UTC(),
	}

	rows, err := s.users.InsertUser(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		s.logger.Warn().Str("email", input.Email).Msg("registration lost duplicate-email race")
		return false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("user insert failed")
		return false, fmt.Errorf("insert user: %w", err)
	}

	if rows != 1 {
		s.logger.Error().Int64("rows", rows).Msg("unexpected insert row count")
		return false, nil
	}

	s.logger.Info().Str("email", input.Email).Msg("user registered")
	return true, nil
}
