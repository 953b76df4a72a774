package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// UserRepository is the gorm-backed credential store over the users table.
// The table carries a unique index on email, so the validator's pre-check and
// the insert can race without producing duplicate accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:30;not null"`
	Surname      string    `gorm:"size:30;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:60;not null"`
	Role         string    `gorm:"size:20;not null"`
	Address      string    `gorm:"size:255"`
	City         string    `gorm:"size:100"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

// Migrate creates or updates the users table schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{})
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, wrapStoreError(err, "email existence check")
	}
	return count > 0, nil
}

func (r *UserRepository) FetchPasswordHash(ctx context.Context, email string) (string, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Select("password_hash").
		Where("email = ?", email).
		First(&rec).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", domain.ErrUserNotFound
	case err != nil:
		return "", wrapStoreError(err, "password hash lookup")
	default:
		return rec.PasswordHash, nil
	}
}

func (r *UserRepository) FetchProfile(ctx context.Context, email string) (*domain.Profile, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Select("id", "name", "email", "role", "city", "created_at").
		Where("email = ?", email).
		First(&rec).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound
	case err != nil:
		return nil, wrapStoreError(err, "profile lookup")
	default:
		return toProfile(rec), nil
	}
}

func (r *UserRepository) FetchProfileByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Select("id", "name", "email", "role", "city", "created_at").
		Where("id = ?", id).
		First(&rec).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound
	case err != nil:
		return nil, wrapStoreError(err, "profile lookup by id")
	default:
		return toProfile(rec), nil
	}
}

func (r *UserRepository) InsertUser(ctx context.Context, user *domain.User) (int64, error) {
	rec := userRecord{
		Name:         user.Name,
		Surname:      user.Surname,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Address:      user.Address,
		City:         user.City,
		CreatedAt:    user.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&rec)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return 0, domain.ErrUserExists
		}
		return 0, wrapStoreError(result.Error, "user insert")
	}

	user.ID = rec.ID
	return result.RowsAffected, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).Select("id", "name", "email", "role", "city", "created_at").
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, wrapStoreError(err, "user listing")
	}

	profiles := make([]domain.Profile, 0, len(recs))
	for _, rec := range recs {
		profiles = append(profiles, *toProfile(rec))
	}
	return profiles, nil
}

func toProfile(rec userRecord) *domain.Profile {
	return &domain.Profile{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Role:      rec.Role,
		City:      rec.City,
		CreatedAt: rec.CreatedAt,
	}
}

// isDuplicateError reports whether err is a MySQL duplicate-key violation.
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func wrapStoreError(err error, op string) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
