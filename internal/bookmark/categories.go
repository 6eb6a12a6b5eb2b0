package bookmark

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CategoryInput struct {
	Name        string
	TeamID      string
	BookmarkIDs []string
}

type CategoryUpdate struct {
	Name        *string
	TeamID      *string
	BookmarkIDs *[]string
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	if userID == "" {
		return []Category{}, nil
	}
	rows, err := s.Repo.ListCategoriesByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].BookmarkIDs == nil {
			rows[i].BookmarkIDs = pq.StringArray{}
		}
	}
	return rows, nil
}

func (s *Service) AddCategory(ctx context.Context, userID string, in CategoryInput) (Category, error) {
	if userID == "" {
		return Category{}, ErrUnauthenticated
	}

	c := Category{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		TeamID:      in.TeamID,
		Name:        in.Name,
		BookmarkIDs: toArray(in.BookmarkIDs),
	}
	if err := s.Repo.CreateCategory(ctx, &c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, userID, id string, in CategoryUpdate) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.TeamID != nil {
		fields["team_id"] = *in.TeamID
	}
	if in.BookmarkIDs != nil {
		fields["bookmark_ids"] = toArray(*in.BookmarkIDs)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.Repo.PatchCategory(ctx, id, fields)
}

func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return s.Repo.DeleteCategory(ctx, id)
}
