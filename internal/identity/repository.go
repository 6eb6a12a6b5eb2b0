package identity

import (
	"context"
	"errors"

	"teammarks/internal/auth"

	"gorm.io/gorm"
)

type Repository interface {
	UserByEmail(ctx context.Context, email string) (*auth.User, error)
	CreateUser(ctx context.Context, u *auth.User) error

	Profile(ctx context.Context, userID string) (*Profile, error)
	CreateProfile(ctx context.Context, p *Profile) error
	PatchProfile(ctx context.Context, userID string, fields map[string]any) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) UserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) CreateUser(ctx context.Context, u *auth.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepository) Profile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) CreateProfile(ctx context.Context, p *Profile) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) PatchProfile(ctx context.Context, userID string, fields map[string]any) error {
	return r.DB.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}
