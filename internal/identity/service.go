package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"teammarks/internal/auth"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated    = errors.New("user not authenticated")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	Repo Repository
	JWT  *auth.JWT
}

// Session is what sign-in and sign-up hand back to the transport layer.
type Session struct {
	Token   string
	UserID  string
	Email   string
	Profile *Profile
}

type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// SignUp creates the credential record plus an initial profile whose display
// name is the email local-part.
func (s *Service) SignUp(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if existing != nil {
		return Session{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	u := auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.CreateUser(ctx, &u); err != nil {
		return Session{}, err
	}

	now := time.Now()
	p := Profile{
		UserID:      u.ID,
		Email:       email,
		DisplayName: localPart(email),
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := s.Repo.CreateProfile(ctx, &p); err != nil {
		return Session{}, err
	}

	token, err := s.JWT.Sign(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: u.ID, Email: email, Profile: &p}, nil
}

// SignIn verifies the credentials and stamps the profile's last_login.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if u == nil || !auth.ComparePassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}

	if err := s.Repo.PatchProfile(ctx, u.ID, map[string]any{"last_login": time.Now()}); err != nil {
		return Session{}, err
	}

	token, err := s.JWT.Sign(u.ID)
	if err != nil {
		return Session{}, err
	}

	p, err := s.Repo.Profile(ctx, u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: u.ID, Email: u.Email, Profile: p}, nil
}

// Profile returns the user's profile document, or nil when none exists.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.Repo.Profile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	fields := map[string]any{}
	if in.DisplayName != nil {
		fields["display_name"] = *in.DisplayName
	}
	if in.PhotoURL != nil {
		fields["photo_url"] = *in.PhotoURL
	}
	if len(fields) > 0 {
		if err := s.Repo.PatchProfile(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Repo.Profile(ctx, userID)
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
