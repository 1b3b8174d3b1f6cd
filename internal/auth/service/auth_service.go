package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/devforge-studio/crm-backend/internal/auth/repository"
	"github.com/devforge-studio/crm-backend/internal/auth/session"
)

// Role labels. Only the reserved admin username resolves to RoleAdmin;
// everyone else, authenticated or not, is standard.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"

	adminUsername = "admin"
)

// ErrInvalidCredentials is returned for any authentication failure. It
// deliberately carries no detail about which factor was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserLookup is the credential source the service authenticates against.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*repository.User, error)
}

type AuthService struct {
	users    UserLookup
	sessions *session.Store
}

func NewAuthService(users UserLookup, sessions *session.Store) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies the credentials and establishes a server-side session.
// The role is derived strictly from the authenticated identity; any
// caller-supplied role label is ignored.
func (s *AuthService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess := &session.Session{
		UserID:   u.ID,
		Username: u.Username,
		Role:     RoleForUsername(u.Username),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout destroys the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// RoleForUsername resolves the UI role label for a username.
func RoleForUsername(username string) string {
	if username == adminUsername {
		return RoleAdmin
	}
	return RoleStandard
}
