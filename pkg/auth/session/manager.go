package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasrivera/shopstead-backend/pkg/auth"
	"github.com/lucasrivera/shopstead-backend/pkg/config"
	redisclient "github.com/lucasrivera/shopstead-backend/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

// ErrInvalidRefreshToken covers unknown, expired, reused, and tampered
// refresh credentials. Callers translate it to an auth failure.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(jti string) string
}

// Manager issues access/refresh pairs and tracks refresh sessions in Redis.
// Refresh tokens are allowlisted by jti and rotate on every use, so a stolen
// or replayed refresh credential dies after its first exchange.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	cfg   config.JWTConfig
	now   func() time.Time
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return newManager(client, client, cfg)
}

func newManager(store sessionStore, keyer sessionKeyer, cfg config.JWTConfig) (*Manager, error) {
	ttl := cfg.RefreshTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: store,
		keyer: keyer,
		cfg:   cfg,
		now:   time.Now,
	}, nil
}

// IssuePair mints an access/refresh token pair and allowlists the refresh jti.
func (m *Manager) IssuePair(ctx context.Context, userID uint, username string) (string, string, error) {
	now := m.now()

	access, err := auth.MintAccessToken(m.cfg, now, auth.AccessTokenPayload{
		UserID:   userID,
		Username: username,
	})
	if err != nil {
		return "", "", fmt.Errorf("mint access token: %w", err)
	}

	refresh, err := auth.MintRefreshToken(m.cfg, now, auth.AccessTokenPayload{
		UserID:   userID,
		Username: username,
	})
	if err != nil {
		return "", "", fmt.Errorf("mint refresh token: %w", err)
	}

	claims, err := auth.ParseRefreshToken(m.cfg, refresh)
	if err != nil {
		return "", "", fmt.Errorf("parse minted refresh token: %w", err)
	}

	if err := m.store.Set(ctx, m.keyer.SessionKey(claims.ID), refresh, m.cfg.RefreshTokenTTL()); err != nil {
		return "", "", fmt.Errorf("store refresh session: %w", err)
	}

	return access, refresh, nil
}

// Refresh validates the provided refresh token against the allowlist,
// invalidates it, and issues a fresh pair.
func (m *Manager) Refresh(ctx context.Context, provided string) (string, string, error) {
	provided = strings.TrimSpace(provided)
	if provided == "" {
		return "", "", ErrInvalidRefreshToken
	}

	claims, err := auth.ParseRefreshToken(m.cfg, provided)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}
	if claims.ID == "" {
		return "", "", ErrInvalidRefreshToken
	}

	// GETDEL consumes the session in the same operation that reads it;
	// a concurrent exchange of the same token finds nothing.
	stored, err := m.store.GetDel(ctx, m.keyer.SessionKey(claims.ID))
	if err != nil {
		return "", "", wrapNotFound(err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) != 1 {
		return "", "", ErrInvalidRefreshToken
	}

	return m.IssuePair(ctx, claims.UserID, claims.Username)
}

// Revoke invalidates the session tied to the provided refresh token.
func (m *Manager) Revoke(ctx context.Context, provided string) error {
	claims, err := auth.ParseRefreshToken(m.cfg, provided)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return m.store.Del(ctx, m.keyer.SessionKey(claims.ID))
}

func wrapNotFound(err error) error {
	if errors.Is(err, redislib.Nil) {
		return ErrInvalidRefreshToken
	}
	return err
}
