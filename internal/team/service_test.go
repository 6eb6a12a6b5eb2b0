package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	teams   map[string]Team
	members map[string]Member // keyed by member id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		teams:   map[string]Team{},
		members: map[string]Member{},
	}
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]Team, error) {
	var out []Team
	for _, t := range f.teams {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeRepo) Create(_ context.Context, t *Team) error {
	f.teams[t.ID] = *t
	return nil
}

func (f *fakeRepo) Patch(_ context.Context, id string, fields map[string]any) error {
	t, ok := f.teams[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			t.Name = v.(string)
		case "description":
			t.Description = v.(string)
		}
	}
	f.teams[id] = t
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeRepo) ListMembershipsByUser(_ context.Context, userID string) ([]Member, error) {
	var out []Member
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListMembersByTeam(_ context.Context, teamID string) ([]Member, error) {
	var out []Member
	for _, m := range f.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetMember(_ context.Context, teamID, userID string) (*Member, error) {
	for _, m := range f.members {
		if m.TeamID == teamID && m.UserID == userID {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateMember(_ context.Context, m *Member) error {
	f.members[m.ID] = *m
	return nil
}

func (f *fakeRepo) PatchMember(_ context.Context, id string, fields map[string]any) error {
	m, ok := f.members[id]
	if !ok {
		return nil
	}
	if v, ok := fields["role"]; ok {
		m.Role = v.(Role)
	}
	f.members[id] = m
	return nil
}

func (f *fakeRepo) DeleteMember(_ context.Context, id string) error {
	delete(f.members, id)
	return nil
}

func (f *fakeRepo) DeleteMembersByTeam(_ context.Context, teamID string) error {
	for id, m := range f.members {
		if m.TeamID == teamID {
			delete(f.members, id)
		}
	}
	return nil
}

var u1 = Actor{ID: "u1", Email: "u1@example.com", Name: "u1"}

func TestCreateTeamOwnerIsSoleAdmin(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}

	tm, err := svc.Create(context.Background(), u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	assert.Equal(t, "u1", tm.OwnerID)
	require.Len(t, tm.Members, 1)
	assert.Equal(t, "u1", tm.Members[0].UserID)
	assert.Equal(t, RoleAdmin, tm.Members[0].Role)
	assert.Equal(t, "u1@example.com", tm.Members[0].Email)
}

func TestListGathersOwnedAndJoined(t *testing.T) {
	repo := newFakeRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	mine, err := svc.Create(ctx, u1, CreateInput{Name: "Mine"})
	require.NoError(t, err)

	other, err := svc.Create(ctx, Actor{ID: "u2", Email: "u2@example.com"}, CreateInput{Name: "Theirs"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u2", other.ID, MemberInput{UserID: "u1", Role: RoleViewer}))

	// a team u1 has nothing to do with
	_, err = svc.Create(ctx, Actor{ID: "u3"}, CreateInput{Name: "Unrelated"})
	require.NoError(t, err)

	teams, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, teams, 2)

	byID := map[string]Team{}
	for _, tm := range teams {
		byID[tm.ID] = tm
	}
	require.Contains(t, byID, mine.ID)
	require.Contains(t, byID, other.ID)
	assert.Len(t, byID[mine.ID].Members, 1)
	assert.Len(t, byID[other.ID].Members, 2)
}

func TestAddMemberTwiceMergesToRoleUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleEditor, Email: "u2@example.com"}))
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleViewer, Email: "u2@example.com"}))

	members, err := repo.ListMembersByTeam(ctx, tm.ID)
	require.NoError(t, err)

	var u2rows []Member
	for _, m := range members {
		if m.UserID == "u2" {
			u2rows = append(u2rows, m)
		}
	}
	require.Len(t, u2rows, 1)
	assert.Equal(t, RoleViewer, u2rows[0].Role)
}

func TestAddMemberInvalidRole(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	err = svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddMemberRequiresAdmin(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleEditor}))

	err = svc.AddMember(ctx, "u2", tm.ID, MemberInput{UserID: "u3", Role: RoleViewer})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveMemberAbsentIsSilent(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, "u1", tm.ID, "stranger"))

	members, err := svc.Repo.ListMembersByTeam(ctx, tm.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestMemberMayLeave(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleViewer}))

	// self-removal needs no role
	require.NoError(t, svc.RemoveMember(ctx, "u2", tm.ID, "u2"))

	m, err := svc.Repo.GetMember(ctx, tm.ID, "u2")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestOwnerMayRemoveThemselves(t *testing.T) {
	// Leaving and kicking share one primitive, so nothing stops the owner
	// from removing their own membership and orphaning the roster.
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, "u1", tm.ID, "u1"))

	members, err := svc.Repo.ListMembersByTeam(ctx, tm.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	got, err := svc.Repo.Get(ctx, tm.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUpdateMemberRoleScenario(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleViewer}))
	require.NoError(t, svc.UpdateMemberRole(ctx, "u1", tm.ID, "u2", RoleEditor))

	members, err := svc.Repo.ListMembersByTeam(ctx, tm.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	roles := map[string]Role{}
	for _, m := range members {
		roles[m.UserID] = m.Role
	}
	assert.Equal(t, RoleAdmin, roles["u1"])
	assert.Equal(t, RoleEditor, roles["u2"])
}

func TestUpdateMemberRoleAbsentIsSilent(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)

	assert.NoError(t, svc.UpdateMemberRole(ctx, "u1", tm.ID, "stranger", RoleEditor))
}

func TestDeleteTeamCascadesMembers(t *testing.T) {
	repo := newFakeRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleViewer}))

	require.NoError(t, svc.Delete(ctx, "u1", tm.ID))

	assert.Empty(t, repo.members)
	assert.Empty(t, repo.teams)
}

func TestDeleteTeamOwnerOnly(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleAdmin}))

	err = svc.Delete(ctx, "u2", tm.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateTeamRequiresAdmin(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleViewer}))

	name := "Ops"
	assert.ErrorIs(t, svc.Update(ctx, "u2", tm.ID, UpdateInput{Name: &name}), ErrForbidden)
	assert.NoError(t, svc.Update(ctx, "u1", tm.ID, UpdateInput{Name: &name}))

	got, err := svc.Repo.Get(ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", got.Name)
}

func TestMemberRole(t *testing.T) {
	svc := &Service{Repo: newFakeRepo()}
	ctx := context.Background()

	tm, err := svc.Create(ctx, u1, CreateInput{Name: "Eng"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(ctx, "u1", tm.ID, MemberInput{UserID: "u2", Role: RoleEditor}))

	role, ok, err := svc.MemberRole(ctx, tm.ID, "u2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "editor", role)

	_, ok, err = svc.MemberRole(ctx, tm.ID, "stranger")
	require.NoError(t, err)
	assert.False(t, ok)
}
