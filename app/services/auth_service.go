package services

import (
	"errors"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/google/uuid"
)

// ErrInvalidLogin is returned for a wrong username or password. The two
// cases are deliberately indistinguishable.
var ErrInvalidLogin = errors.New("invalid username or password")

// AuthService handles registration, login and session resolution
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	lifetime    time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService. lifetime is how long a session
// stays valid after login.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository,
	lifetime time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		lifetime:    lifetime,
		now:         time.Now,
	}
}

// SetClock overrides the service clock for testing
func (s *AuthService) SetClock(now func() time.Time) {
	s.now = now
}

// Lifetime returns the configured session lifetime.
func (s *AuthService) Lifetime() time.Duration {
	return s.lifetime
}

// Register creates a user from a validated form. Duplicate usernames and
// emails surface as repositories.ErrUsernameTaken / ErrEmailTaken.
func (s *AuthService) Register(form *models.RegisterForm) (*models.User, error) {
	user := &models.User{
		Username:  strings.TrimSpace(form.Username),
		Email:     strings.ToLower(strings.TrimSpace(form.Email)),
		CreatedAt: s.now(),
	}
	if err := user.SetPassword(form.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(username, password string) (*models.Session, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidLogin
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.lifetime),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout deletes the session for the given token. Unknown tokens are not
// an error.
func (s *AuthService) Logout(token string) error {
	return s.sessionRepo.Delete(token)
}

// CurrentUser resolves a session token to its user. Expired or unknown
// tokens return ErrNotFound.
func (s *AuthService) CurrentUser(token string) (*models.User, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(session.UserID)
}
