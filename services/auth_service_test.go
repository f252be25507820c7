package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinly-backend/events"
	"checkinly-backend/models"
)

const testSecret = "test-secret"

func TestSignUpValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, testSecret, time.Hour, 4)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, Credentials{Email: "not-an-email", Password: "short"})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	user, err := svc.SignUp(ctx, Credentials{Email: "  Owner@Example.com ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = svc.SignUp(ctx, Credentials{Email: "owner@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, fieldsOf(t, err), "email")
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	rec := &events.Recorder{}
	svc := NewAuthService(db, rec, testSecret, time.Hour, 4)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, Credentials{Email: "desk@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, Credentials{Email: "desk@example.com", Password: "wrong-password"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, Credentials{Email: "nobody@example.com", Password: "password1"}, SessionMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.SignIn(ctx, Credentials{Email: "DESK@example.com", Password: "password1"}, SessionMeta{UserAgent: "curl", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "curl", res.Session.UserAgent)

	user, session, err := svc.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
	assert.Equal(t, res.Session.ID, session.ID)

	state, err := svc.Current(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.True(t, state.IsAuthenticated)

	require.NoError(t, svc.SignOut(ctx, session.ID))
	require.NoError(t, svc.SignOut(ctx, session.ID))

	_, _, err = svc.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	state, err = svc.Current(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)

	assert.Equal(t, []string{events.SignedIn, events.SignedOut}, rec.Types())
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, testSecret, time.Hour, 4)
	ctx := context.Background()

	state, err := svc.Current(ctx, "")
	require.NoError(t, err)
	assert.False(t, state.IsAuthenticated)

	_, _, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.SignUp(ctx, Credentials{Email: "late@example.com", Password: "password1"})
	require.NoError(t, err)
	res, err := svc.SignIn(ctx, Credentials{Email: "late@example.com", Password: "password1"}, SessionMeta{})
	require.NoError(t, err)

	other := NewAuthService(db, nil, "another-secret", time.Hour, 4)
	_, _, err = other.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// an expired session row invalidates a still-signed token
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", res.Session.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)
	_, _, err = svc.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
