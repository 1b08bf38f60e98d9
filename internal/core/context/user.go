// Package context provides request-scoped values extraction.
package context

import (
	"context"
	"time"
)

// UserContext contains authenticated user information for one gateway call.
type UserContext struct {
	Username    string
	Institution string // institution code the account belongs to, if any
	DataGroups  []string
	SessionID   string
	ExpiresAt   time.Time
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUsername returns the username from context or empty string.
func GetUsername(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Username
	}
	return ""
}

// HasDataGroup checks if the user is entitled to a data group.
// An empty DataGroups list means unrestricted access.
func HasDataGroup(ctx context.Context, group string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	if len(u.DataGroups) == 0 {
		return true
	}
	for _, g := range u.DataGroups {
		if g == group {
			return true
		}
	}
	return false
}
