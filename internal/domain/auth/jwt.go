// Package auth provides session-token issuance and the environment gate the
// dispatcher checks before touching any catalog or database.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "langodata/internal/core/context"
)

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

// DefaultJWTConfig returns default session token configuration. Sessions
// last 30 minutes and are re-issued on login.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:     secret,
		Issuer:     "langodata",
		SessionTTL: 30 * time.Minute,
	}
}

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"usr"`
	Institution string   `json:"inst,omitempty"`
	DataGroups  []string `json:"groups,omitempty"`
}

// JWTService issues and validates session tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// GenerateSessionToken issues a session token for an authenticated user.
func (s *JWTService) GenerateSessionToken(username, institution string, dataGroups []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.SessionTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username:    username,
		Institution: institution,
		DataGroups:  dataGroups,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a session token and returns the user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.UserContext{
		Username:    claims.Username,
		Institution: claims.Institution,
		DataGroups:  claims.DataGroups,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
