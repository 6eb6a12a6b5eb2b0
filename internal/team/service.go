package team

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("team not found")
	ErrInvalidRole     = errors.New("invalid role")
)

// Actor identifies the caller plus the profile fields denormalized onto
// membership rows.
type Actor struct {
	ID    string
	Email string
	Name  string
}

type Service struct {
	Repo Repository
}

type CreateInput struct {
	Name        string
	Description string
}

type UpdateInput struct {
	Name        *string
	Description *string
}

type MemberInput struct {
	UserID string
	Role   Role
	Email  string
	Name   string
}

// List gathers every team the user owns or belongs to, de-duplicated by
// team id, each with its full roster.
func (s *Service) List(ctx context.Context, userID string) ([]Team, error) {
	if userID == "" {
		return []Team{}, nil
	}

	owned, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	teams := make([]Team, 0, len(owned))
	for _, t := range owned {
		seen[t.ID] = struct{}{}
		teams = append(teams, t)
	}

	memberships, err := s.Repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		if _, ok := seen[m.TeamID]; ok {
			continue
		}
		seen[m.TeamID] = struct{}{}

		t, err := s.Repo.Get(ctx, m.TeamID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			// dangling membership row, skip
			continue
		}
		teams = append(teams, *t)
	}

	for i := range teams {
		members, err := s.Repo.ListMembersByTeam(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		if members == nil {
			members = []Member{}
		}
		teams[i].Members = members
	}

	return teams, nil
}

// Create makes the actor the team owner and its first member with the
// admin role.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (Team, error) {
	if actor.ID == "" {
		return Team{}, ErrUnauthenticated
	}

	t := Team{
		ID:          uuid.NewString(),
		OwnerID:     actor.ID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(ctx, &t); err != nil {
		return Team{}, err
	}

	owner := Member{
		ID:        uuid.NewString(),
		TeamID:    t.ID,
		UserID:    actor.ID,
		Role:      RoleAdmin,
		Email:     actor.Email,
		Name:      actor.Name,
		CreatedAt: t.CreatedAt,
	}
	if err := s.Repo.CreateMember(ctx, &owner); err != nil {
		return Team{}, err
	}

	t.Members = []Member{owner}
	return t, nil
}

func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) error {
	if actorID == "" {
		return ErrUnauthenticated
	}

	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if err := s.authorize(ctx, t, actorID, ActionEditTeam); err != nil {
		return err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if len(fields) == 0 {
		return nil
	}
	return s.Repo.Patch(ctx, id, fields)
}

// Delete removes the team and all of its membership rows. Bookmarks that
// reference the team keep their team id; callers deal with the dangling
// reference.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}

	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if t.OwnerID != actorID {
		return ErrForbidden
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteMembersByTeam(ctx, id)
}

// AddMember inserts a membership row, or, when the user is already a
// member, degrades to updating their role to the requested one.
func (s *Service) AddMember(ctx context.Context, actorID, teamID string, in MemberInput) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if !in.Role.Valid() {
		return ErrInvalidRole
	}

	t, err := s.Repo.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if err := s.authorize(ctx, t, actorID, ActionInvite); err != nil {
		return err
	}

	existing, err := s.Repo.GetMember(ctx, teamID, in.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.Repo.PatchMember(ctx, existing.ID, map[string]any{"role": in.Role})
	}

	m := Member{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		UserID:    in.UserID,
		Role:      in.Role,
		Email:     in.Email,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	return s.Repo.CreateMember(ctx, &m)
}

// RemoveMember serves both "kick" and "leave": any member may remove
// themselves, including the owner. Removing a user who is not a member
// succeeds silently.
func (s *Service) RemoveMember(ctx context.Context, actorID, teamID, userID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}

	t, err := s.Repo.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if actorID != userID {
		if err := s.authorize(ctx, t, actorID, ActionRemove); err != nil {
			return err
		}
	}

	m, err := s.Repo.GetMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	return s.Repo.DeleteMember(ctx, m.ID)
}

// UpdateMemberRole patches the member's role, succeeding silently when no
// such membership row exists.
func (s *Service) UpdateMemberRole(ctx context.Context, actorID, teamID, userID string, role Role) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if !role.Valid() {
		return ErrInvalidRole
	}

	t, err := s.Repo.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if err := s.authorize(ctx, t, actorID, ActionSetRole); err != nil {
		return err
	}

	m, err := s.Repo.GetMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	return s.Repo.PatchMember(ctx, m.ID, map[string]any{"role": role})
}

// MemberRole resolves userID's role in the team. The owner counts as admin
// even without a membership row.
func (s *Service) MemberRole(ctx context.Context, teamID, userID string) (string, bool, error) {
	t, err := s.Repo.Get(ctx, teamID)
	if err != nil {
		return "", false, err
	}
	if t != nil && t.OwnerID == userID {
		return string(RoleAdmin), true, nil
	}

	m, err := s.Repo.GetMember(ctx, teamID, userID)
	if err != nil {
		return "", false, err
	}
	if m == nil {
		return "", false, nil
	}
	return string(m.Role), true, nil
}

func (s *Service) authorize(ctx context.Context, t *Team, actorID string, action Action) error {
	if t.OwnerID == actorID {
		return nil
	}
	m, err := s.Repo.GetMember(ctx, t.ID, actorID)
	if err != nil {
		return err
	}
	if m == nil || !Can(m.Role, action) {
		return ErrForbidden
	}
	return nil
}
