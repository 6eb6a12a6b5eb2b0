package identity

import (
	"context"
	"testing"
	"time"

	"teammarks/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users    map[string]auth.User // keyed by email
	profiles map[string]Profile   // keyed by user id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[string]auth.User{},
		profiles: map[string]Profile{},
	}
}

func (f *fakeRepo) UserByEmail(_ context.Context, email string) (*auth.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *auth.User) error {
	f.users[u.Email] = *u
	return nil
}

func (f *fakeRepo) Profile(_ context.Context, userID string) (*Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRepo) CreateProfile(_ context.Context, p *Profile) error {
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeRepo) PatchProfile(_ context.Context, userID string, fields map[string]any) error {
	p, ok := f.profiles[userID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "display_name":
			p.DisplayName = v.(string)
		case "photo_url":
			p.PhotoURL = v.(string)
		case "last_login":
			p.LastLogin = v.(time.Time)
		}
	}
	f.profiles[userID] = p
	return nil
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return &Service{Repo: repo, JWT: auth.NewJWT("test-secret")}, repo
}

func TestSignUpCreatesProfileEagerly(t *testing.T) {
	svc, repo := newService()

	sess, err := svc.SignUp(context.Background(), "Ada@Example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "ada@example.com", sess.Email)

	require.NotNil(t, sess.Profile)
	assert.Equal(t, "ada", sess.Profile.DisplayName)

	stored, ok := repo.profiles[sess.UserID]
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestSignUpEmailTaken(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ada@example.com", "otherpass1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInStampsLastLogin(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	up, err := svc.SignUp(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	before := repo.profiles[up.UserID].LastLogin
	time.Sleep(5 * time.Millisecond)

	in, err := svc.SignIn(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, up.UserID, in.UserID)
	assert.NotEmpty(t, in.Token)
	assert.True(t, repo.profiles[up.UserID].LastLogin.After(before))
}

func TestSignInWrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ada@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileMayBeNil(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	// a valid identity with no profile document
	delete(repo.profiles, sess.UserID)

	p, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, "ada@example.com", "s3cretpass")
	require.NoError(t, err)

	name := "Ada Lovelace"
	photo := "https://example.com/ada.png"
	p, err := svc.UpdateProfile(ctx, sess.UserID, ProfileUpdate{DisplayName: &name, PhotoURL: &photo})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ada Lovelace", p.DisplayName)
	assert.Equal(t, "https://example.com/ada.png", p.PhotoURL)
}

func TestUpdateProfileUnauthenticated(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateProfile(context.Background(), "", ProfileUpdate{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
