package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ecstasyholdings/meeting-brain/internal/domain/entities"
)

// UserRepository handles user lookups
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindActiveByEmail returns the active users whose emails appear in the given
// list. Emails not matching any active user are silently absent from the
// result; comparison is case-insensitive.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, emails []string) ([]entities.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(e)))
	}
	var users []entities.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) IN ? AND is_active = ?", lowered, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
