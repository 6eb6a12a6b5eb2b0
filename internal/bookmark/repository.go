package bookmark

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the document-store surface the service mediates against:
// equality-filtered queries, single-document writes, no transactions.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Bookmark, error)
	Get(ctx context.Context, id string) (*Bookmark, error)
	Create(ctx context.Context, b *Bookmark) error
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error

	ListCategoriesByOwner(ctx context.Context, ownerID string) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	PatchCategory(ctx context.Context, id string, fields map[string]any) error
	DeleteCategory(ctx context.Context, id string) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) ListByOwner(ctx context.Context, ownerID string) ([]Bookmark, error) {
	var rows []Bookmark
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) Get(ctx context.Context, id string) (*Bookmark, error) {
	var b Bookmark
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormRepository) Create(ctx context.Context, b *Bookmark) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepository) Patch(ctx context.Context, id string, fields map[string]any) error {
	return r.DB.WithContext(ctx).
		Model(&Bookmark{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&Bookmark{}).Error
}

func (r *GormRepository) ListCategoriesByOwner(ctx context.Context, ownerID string) ([]Category, error) {
	var rows []Category
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) CreateCategory(ctx context.Context, c *Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepository) PatchCategory(ctx context.Context, id string, fields map[string]any) error {
	return r.DB.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&Category{}).Error
}
