// Package auth implements the admin password gate: a single shared secret
// checked against a precomputed SHA-256 digest, attempt lockout, and a
// 30-minute session issued as a signed token.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is returned when the submitted password does
	// not match the admin secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired is returned when a session token is valid but the
	// session window has elapsed.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidToken is returned for missing, malformed, or badly signed
	// session tokens.
	ErrInvalidToken = errors.New("invalid session token")
)

// LockedOutError is returned while the attempt lockout is active.
type LockedOutError struct {
	// Remaining is how long until login attempts are accepted again.
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %ds", int(e.Remaining.Seconds()))
}

// Gate is the admin password gate. Attempt counters and session flags live
// in the record store under the auth keys so that every process sharing the
// store sees the same lockout state.
type Gate struct {
	cfg    *config.AuthConfig
	store  *recordstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewGate(cfg *config.AuthConfig, store *recordstore.Store, logger *zap.Logger) *Gate {
	return &Gate{cfg: cfg, store: store, logger: logger, now: time.Now}
}

// HashPassword returns the hex SHA-256 digest of a password. Exposed for
// provisioning the configured admin hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login verifies the password, enforcing the attempt lockout. On success it
// clears the failure counters, marks the session flags in the record store,
// and returns a signed session token expiring after the session window.
func (g *Gate) Login(ctx context.Context, password string) (string, time.Time, error) {
	if err := g.checkLockout(ctx); err != nil {
		return "", time.Time{}, err
	}

	digest := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(g.cfg.AdminHash)) != 1 {
		g.recordAttempt(ctx, false)
		g.logger.Warn("Admin login failed")
		return "", time.Time{}, ErrInvalidCredentials
	}
	g.recordAttempt(ctx, true)

	now := g.now()
	expiresAt := now.Add(g.cfg.SessionTimeoutDuration())

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.cfg.SessionSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := g.store.Set(ctx, recordstore.KeyAdminAuthenticated, "true"); err != nil {
		g.logger.Warn("Failed to persist auth flag", zap.Error(err))
	}
	if err := g.store.Set(ctx, recordstore.KeyAdminLoginTime, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		g.logger.Warn("Failed to persist login time", zap.Error(err))
	}

	g.logger.Info("Admin login succeeded")
	return token, expiresAt, nil
}

// Verify checks a session token's signature and expiry, then re-checks the
// persisted login time so that a logout or expiry in any process invalidates
// the session everywhere.
func (g *Gate) Verify(ctx context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(g.cfg.SessionSecret), nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrSessionExpired
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}

	var authenticated string
	if err := g.store.Get(ctx, recordstore.KeyAdminAuthenticated, &authenticated); err != nil || authenticated != "true" {
		return ErrSessionExpired
	}
	var loginMillis string
	if err := g.store.Get(ctx, recordstore.KeyAdminLoginTime, &loginMillis); err != nil {
		return ErrSessionExpired
	}
	loginTime, err := strconv.ParseInt(loginMillis, 10, 64)
	if err != nil {
		return ErrSessionExpired
	}
	if g.now().Sub(time.UnixMilli(loginTime)) > g.cfg.SessionTimeoutDuration() {
		g.Logout(ctx)
		return ErrSessionExpired
	}
	return nil
}

// Logout clears the persisted session flags.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.store.Delete(ctx, recordstore.KeyAdminAuthenticated); err != nil {
		g.logger.Warn("Failed to clear auth flag", zap.Error(err))
	}
	if err := g.store.Delete(ctx, recordstore.KeyAdminLoginTime); err != nil {
		g.logger.Warn("Failed to clear login time", zap.Error(err))
	}
}

// checkLockout enforces the attempt limit: MaxAttempts consecutive failures
// within the lockout window block further attempts for the remainder of the
// window.
func (g *Gate) checkLockout(ctx context.Context) error {
	attempts := g.readInt(ctx, recordstore.KeyLoginAttempts)
	lastAttempt := g.readInt(ctx, recordstore.KeyLastAttemptTime)
	if attempts < int64(g.cfg.MaxAttempts) {
		return nil
	}

	elapsed := g.now().Sub(time.UnixMilli(lastAttempt))
	if elapsed < g.cfg.LockoutWindowDuration() {
		return &LockedOutError{Remaining: g.cfg.LockoutWindowDuration() - elapsed}
	}
	return nil
}

// recordAttempt updates the failure counters: success clears them, failure
// increments the count and stamps the attempt time.
func (g *Gate) recordAttempt(ctx context.Context, success bool) {
	if success {
		if err := g.store.Delete(ctx, recordstore.KeyLoginAttempts); err != nil {
			g.logger.Warn("Failed to clear attempt counter", zap.Error(err))
		}
		if err := g.store.Delete(ctx, recordstore.KeyLastAttemptTime); err != nil {
			g.logger.Warn("Failed to clear attempt time", zap.Error(err))
		}
		return
	}

	attempts := g.readInt(ctx, recordstore.KeyLoginAttempts) + 1
	if err := g.store.Set(ctx, recordstore.KeyLoginAttempts, strconv.FormatInt(attempts, 10)); err != nil {
		g.logger.Warn("Failed to persist attempt counter", zap.Error(err))
	}
	if err := g.store.Set(ctx, recordstore.KeyLastAttemptTime, strconv.FormatInt(g.now().UnixMilli(), 10)); err != nil {
		g.logger.Warn("Failed to persist attempt time", zap.Error(err))
	}
}

func (g *Gate) readInt(ctx context.Context, key string) int64 {
	var raw string
	if err := g.store.Get(ctx, key, &raw); err != nil {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
