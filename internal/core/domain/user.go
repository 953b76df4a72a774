package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already registered")
var ErrStoreUnavailable = errors.New("credential store unavailable")
var ErrForbidden = errors.New("access forbidden")

// User is the persisted account row. Accounts are created on registration and
// never updated or deleted by this service.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the subset of a user row exposed after a successful login.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
