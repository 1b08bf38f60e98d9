package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langodata/internal/core/apperror"
	appctx "langodata/internal/core/context"
	"langodata/internal/domain/catalog"
	"langodata/internal/domain/license"
	"langodata/pkg/logger"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateSessionToken("analyst", "BOT", []string{"MSP", "ITRS"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst", user.Username)
	assert.Equal(t, "BOT", user.Institution)
	assert.Equal(t, []string{"MSP", "ITRS"}, user.DataGroups)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService(DefaultJWTConfig("secret-a")).
		GenerateSessionToken("analyst", "", nil)
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("secret-b")).ValidateToken(token)
	assert.Error(t, err)
}

func validLicense(t *testing.T) *license.Manager {
	t.Helper()
	m, err := license.NewManager(license.Config{
		Key:          "keyword",
		IssueDate:    time.Now().Format("02-Jan-2006"),
		ValidityDays: 30,
	})
	require.NoError(t, err)
	return m
}

func expiredLicense(t *testing.T) *license.Manager {
	t.Helper()
	m, err := license.NewManager(license.Config{
		Key:          "keyword",
		IssueDate:    "01-Jan-2020",
		ValidityDays: 1,
	})
	require.NoError(t, err)
	return m
}

func TestGateInvalidLicense(t *testing.T) {
	gate := NewEnvironmentGate(expiredLicense(t))

	err := gate.Check(context.Background(), catalog.GroupMSP)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid license. Please validate your license.", appErr.Message)
}

func TestGateAuthentication(t *testing.T) {
	gate := NewEnvironmentGate(validLicense(t))

	// No session user.
	err := gate.Check(context.Background(), catalog.GroupMSP)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "User authentication failed for MSP.", appErr.Message)

	// Restricted user outside the requested group.
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		Username: "analyst", DataGroups: []string{"ITRS"},
	})
	err = gate.Check(ctx, catalog.GroupMSP)
	assert.Error(t, err)
	assert.NoError(t, gate.Check(ctx, catalog.GroupITRS))

	// Unrestricted user.
	ctx = appctx.WithUser(context.Background(), &appctx.UserContext{Username: "admin"})
	assert.NoError(t, gate.Check(ctx, catalog.GroupMSP))
}

type fakeUserRepo struct {
	users map[string]*User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", username)
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*User{
		"analyst":  {Username: "analyst", PasswordHash: hash, Active: true, DataGroups: []string{"MSP"}},
		"disabled": {Username: "disabled", PasswordHash: hash, Active: false},
	}}
	svc := NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")), logger.Default())

	session, err := svc.Login(context.Background(), "analyst", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "analyst", session.Username)

	_, err = svc.Login(context.Background(), "analyst", "wrong")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "missing", "s3cret")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "disabled", "s3cret")
	assert.Error(t, err)
}
