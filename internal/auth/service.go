package auth

import (
	"log/slog"
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	userDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository defines the data access methods the auth service needs.
// Lookups return nil without an error when no row matches.
type Repository interface {
	GetUserByEmail(email string) (*userDatamodel.User, error)
	GetUserByID(id int64) (*userDatamodel.User, error)
	CreateSession(session *userDatamodel.Session) error
	GetSessionByToken(token string) (*userDatamodel.Session, error)
	DeleteSession(token string) error
}

// Service authenticates owners and issues tokens. Access tokens are JWTs,
// refresh tokens are opaque values stored in the sessions table so they can
// be revoked.
type Service struct {
	repo            Repository
	tokens          TokenGenerator
	refreshTokenTTL time.Duration
	logger          *slog.Logger
}

func NewService(repo Repository, tokens TokenGenerator, refreshTTL time.Duration, logger *slog.Logger) *Service {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		repo:            repo,
		tokens:          tokens,
		refreshTokenTTL: refreshTTL,
		logger:          logger,
	}
}

// Authenticate validates credentials and returns a fresh token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	user, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to load user by email", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to load user", err)
	}
	if user == nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "user_id", user.ID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(user)
}

// RefreshTokens rotates the session: the presented refresh token is revoked
// and a new pair is issued.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	session, err := s.repo.GetSessionByToken(refreshToken)
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return AuthTokens{}, internal.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		_ = s.repo.DeleteSession(refreshToken)
		return AuthTokens{}, internal.ErrTokenExpired
	}

	user, err := s.repo.GetUserByID(session.UserID)
	if err != nil {
		s.logger.Error("failed to load session user", "error", err, "user_id", session.UserID)
		return AuthTokens{}, internal.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return AuthTokens{}, internal.ErrSessionNotFound
	}
	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := s.repo.DeleteSession(refreshToken); err != nil {
		s.logger.Error("failed to revoke refresh token", "error", err, "user_id", user.ID)
		return AuthTokens{}, err
	}

	return s.issueTokens(user)
}

// Logout revokes the session holding the refresh token.
func (s *Service) Logout(refreshToken string) error {
	session, err := s.repo.GetSessionByToken(refreshToken)
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return internal.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return internal.ErrSessionNotFound
	}
	return s.repo.DeleteSession(refreshToken)
}

// ValidateAccessToken verifies the JWT and returns its claims.
func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(token)
}

// GetUser loads the owner for a validated token.
func (s *Service) GetUser(userID int64) (*User, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, internal.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}
	return &User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) issueTokens(user *userDatamodel.User) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err, "user_id", user.ID)
		return AuthTokens{}, err
	}

	refreshToken := uuid.NewString()
	session := &userDatamodel.Session{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateSession(session); err != nil {
		s.logger.Error("failed to persist session", "error", err, "user_id", user.ID)
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
