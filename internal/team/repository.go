package team

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository exposes the raw collection operations the service composes:
// equality-filtered queries and single-row writes over teams and team_members.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Team, error)
	Get(ctx context.Context, id string) (*Team, error)
	Create(ctx context.Context, t *Team) error
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error

	ListMembershipsByUser(ctx context.Context, userID string) ([]Member, error)
	ListMembersByTeam(ctx context.Context, teamID string) ([]Member, error)
	GetMember(ctx context.Context, teamID, userID string) (*Member, error)
	CreateMember(ctx context.Context, m *Member) error
	PatchMember(ctx context.Context, id string, fields map[string]any) error
	DeleteMember(ctx context.Context, id string) error
	DeleteMembersByTeam(ctx context.Context, teamID string) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) ListByOwner(ctx context.Context, ownerID string) ([]Team, error) {
	var rows []Team
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) Get(ctx context.Context, id string) (*Team, error) {
	var t Team
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormRepository) Create(ctx context.Context, t *Team) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepository) Patch(ctx context.Context, id string, fields map[string]any) error {
	return r.DB.WithContext(ctx).
		Model(&Team{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&Team{}).Error
}

func (r *GormRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]Member, error) {
	var rows []Member
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) ListMembersByTeam(ctx context.Context, teamID string) ([]Member, error) {
	var rows []Member
	err := r.DB.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) GetMember(ctx context.Context, teamID, userID string) (*Member, error) {
	var m Member
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *GormRepository) CreateMember(ctx context.Context, m *Member) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepository) PatchMember(ctx context.Context, id string, fields map[string]any) error {
	return r.DB.WithContext(ctx).
		Model(&Member{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormRepository) DeleteMember(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&Member{}).Error
}

func (r *GormRepository) DeleteMembersByTeam(ctx context.Context, teamID string) error {
	return r.DB.WithContext(ctx).Where("team_id = ?", teamID).Delete(&Member{}).Error
}
