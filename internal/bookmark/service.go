package bookmark

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrForbidden       = errors.New("not allowed")
)

// RoleLookup resolves the caller's role inside a team. Implemented by team.Service.
type RoleLookup interface {
	MemberRole(ctx context.Context, teamID, userID string) (string, bool, error)
}

type Service struct {
	Repo  Repository
	Roles RoleLookup
}

type CreateInput struct {
	Title       string
	URL         string
	Description string
	Tags        []string
	AISummary   string
	Favicon     string
	Category    string
	TeamID      string
	Public      bool
}

type UpdateInput struct {
	Title       *string
	URL         *string
	Description *string
	Tags        *[]string
	AISummary   *string
	Favicon     *string
	Category    *string
	TeamID      *string
	Public      *bool
}

// List returns every bookmark owned by userID. An empty userID yields an
// empty result rather than an error, matching the unauthenticated no-op
// behavior of the fetch path.
func (s *Service) List(ctx context.Context, userID string) ([]Bookmark, error) {
	if userID == "" {
		return []Bookmark{}, nil
	}
	rows, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Bookmark, 0, len(rows))
	for _, b := range rows {
		normalize(&b)
		out = append(out, b)
	}
	return out, nil
}

func (s *Service) ByCategory(ctx context.Context, userID, category string) ([]Bookmark, error) {
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Bookmark, 0)
	for _, b := range all {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) ByTeam(ctx context.Context, userID, teamID string) ([]Bookmark, error) {
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Bookmark, 0)
	for _, b := range all {
		if b.TeamID == teamID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Bookmark, error) {
	if userID == "" {
		return Bookmark{}, ErrUnauthenticated
	}

	now := time.Now()
	b := Bookmark{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		TeamID:      in.TeamID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Tags:        toArray(in.Tags),
		AISummary:   in.AISummary,
		Favicon:     in.Favicon,
		Category:    in.Category,
		Public:      in.Public,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	normalize(&b)

	if err := s.Repo.Create(ctx, &b); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Update patches only the supplied fields and stamps a fresh updated_at.
// A missing id is not an error: the patch matches zero rows and the call
// succeeds silently.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if b != nil && !s.canEdit(ctx, b, userID) {
		return ErrForbidden
	}

	fields := map[string]any{"updated_at": time.Now()}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Tags != nil {
		fields["tags"] = toArray(*in.Tags)
	}
	if in.AISummary != nil {
		fields["ai_summary"] = *in.AISummary
	}
	if in.Favicon != nil {
		fields["favicon"] = *in.Favicon
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.TeamID != nil {
		fields["team_id"] = *in.TeamID
	}
	if in.Public != nil {
		fields["public"] = *in.Public
	}

	return s.Repo.Patch(ctx, id, fields)
}

// Delete removes the bookmark by id. Deleting an id that does not exist
// succeeds, so the call is idempotent.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	if !s.canDelete(ctx, b, userID) {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}

// SetSummary stores a generated summary and folds the suggested tags into
// the existing ones. Used by the summary worker.
func (s *Service) SetSummary(ctx context.Context, id, summary string, tags []string) error {
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	merged := append([]string{}, b.Tags...)
	seen := map[string]struct{}{}
	for _, t := range merged {
		seen[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
	}

	return s.Repo.Patch(ctx, id, map[string]any{
		"ai_summary": summary,
		"tags":       toArray(merged),
		"updated_at": time.Now(),
	})
}

func (s *Service) canEdit(ctx context.Context, b *Bookmark, userID string) bool {
	if b.OwnerID == userID {
		return true
	}
	if b.TeamID == "" || s.Roles == nil {
		return false
	}
	role, ok, err := s.Roles.MemberRole(ctx, b.TeamID, userID)
	if err != nil || !ok {
		return false
	}
	return role == "admin" || role == "editor"
}

func (s *Service) canDelete(ctx context.Context, b *Bookmark, userID string) bool {
	if b.OwnerID == userID {
		return true
	}
	if b.TeamID == "" || s.Roles == nil {
		return false
	}
	role, ok, err := s.Roles.MemberRole(ctx, b.TeamID, userID)
	if err != nil || !ok {
		return false
	}
	return role == "admin"
}

func normalize(b *Bookmark) {
	if b.Tags == nil {
		b.Tags = pq.StringArray{}
	}
	if b.Category == "" {
		b.Category = DefaultCategory
	}
}

func toArray(tags []string) pq.StringArray {
	if tags == nil {
		tags = []string{}
	}
	return pq.StringArray(tags)
}
