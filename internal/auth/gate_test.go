package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testGate(t *testing.T) (*Gate, *time.Time) {
	t.Helper()
	store, err := recordstore.OpenSQLite(filepath.Join(t.TempDir(), "store.db"), zap.NewNop())
	require.NoError(t, err)

	cfg := &config.AuthConfig{
		AdminHash:      HashPassword("secret-pass"),
		SessionSecret:  "test-signing-secret",
		SessionTimeout: 30,
		MaxAttempts:    3,
		LockoutWindow:  5,
	}

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	gate := NewGate(cfg, store, zap.NewNop())
	gate.now = func() time.Time { return now }
	return gate, &now
}

func TestGate_LoginSuccess(t *testing.T) {
	gate, _ := testGate(t)
	ctx := context.Background()

	token, expiresAt, err := gate.Login(ctx, "secret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 30*time.Minute, expiresAt.Sub(gate.now()))

	assert.NoError(t, gate.Verify(ctx, token))
}

func TestGate_LoginWrongPassword(t *testing.T) {
	gate, _ := testGate(t)

	_, _, err := gate.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGate_LockoutAfterThreeFailures(t *testing.T) {
	gate, now := testGate(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := gate.Login(ctx, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// fourth attempt is locked out even with the right password
	_, _, err := gate.Login(ctx, "secret-pass")
	var locked *LockedOutError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, 5*time.Minute, locked.Remaining)

	// the window elapses and login works again
	*now = now.Add(5 * time.Minute)
	_, _, err = gate.Login(ctx, "secret-pass")
	assert.NoError(t, err)
}

func TestGate_SuccessClearsFailureCount(t *testing.T) {
	gate, _ := testGate(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, _ = gate.Login(ctx, "wrong")
	}
	_, _, err := gate.Login(ctx, "secret-pass")
	require.NoError(t, err)

	// counter reset: two more failures do not lock
	for i := 0; i < 2; i++ {
		_, _, err = gate.Login(ctx, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestGate_SessionExpires(t *testing.T) {
	gate, now := testGate(t)
	ctx := context.Background()

	token, _, err := gate.Login(ctx, "secret-pass")
	require.NoError(t, err)

	*now = now.Add(31 * time.Minute)
	assert.ErrorIs(t, gate.Verify(ctx, token), ErrSessionExpired)
}

func TestGate_LogoutInvalidatesSession(t *testing.T) {
	gate, _ := testGate(t)
	ctx := context.Background()

	token, _, err := gate.Login(ctx, "secret-pass")
	require.NoError(t, err)

	gate.Logout(ctx)
	assert.ErrorIs(t, gate.Verify(ctx, token), ErrSessionExpired)
}

func TestGate_VerifyRejectsGarbageToken(t *testing.T) {
	gate, _ := testGate(t)
	assert.ErrorIs(t, gate.Verify(context.Background(), "not-a-token"), ErrInvalidToken)
}
