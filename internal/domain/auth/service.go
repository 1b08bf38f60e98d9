package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"langodata/internal/core/apperror"
	"langodata/pkg/logger"
)

// User is a gateway account with the data groups it may read. An empty
// DataGroups list means unrestricted access.
type User struct {
	Username     string   `db:"username"`
	PasswordHash string   `db:"password_hash"`
	Institution  string   `db:"institution"`
	DataGroups   []string `db:"data_groups"`
	Active       bool     `db:"active"`
}

// Repository loads gateway accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Session is an issued session token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// Service authenticates users and issues sessions.
type Service struct {
	users  Repository
	tokens *JWTService
	log    *logger.Logger
}

// NewService creates the auth service.
func NewService(users Repository, tokens *JWTService, log *logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: log.WithComponent("auth")}
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	log := s.log.WithContext(ctx)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same answer as a wrong password, so accounts cannot be probed.
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperror.NewUnauthorized("account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Warnw("failed login attempt", "username", username)
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	token, expiresAt, err := s.tokens.GenerateSessionToken(user.Username, user.Institution, user.DataGroups)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	log.Infow("session issued", "username", username, "expires_at", expiresAt)
	return &Session{Token: token, ExpiresAt: expiresAt, Username: user.Username}, nil
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
