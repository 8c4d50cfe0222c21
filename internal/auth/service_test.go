package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/auth/session"
	"github.com/lucasrivera/shopstead-backend/pkg/config"
	pkgmodels "github.com/lucasrivera/shopstead-backend/pkg/db/models"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/security"
)

type stubUserFinder struct {
	users map[string]*pkgmodels.User
}

func (s *stubUserFinder) FindByUsername(ctx context.Context, username string) (*pkgmodels.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newLoginService(t *testing.T, sessions sessionManager) (Service, *stubUserFinder) {
	t.Helper()
	hash, err := security.HashPassword("Secret123!", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	finder := &stubUserFinder{users: map[string]*pkgmodels.User{
		"jamie": {ID: 7, Username: "jamie", PasswordHash: hash},
	}}
	svc, err := NewService(ServiceParams{UserRepo: finder, SessionManager: sessions})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, finder
}

func TestLoginReturnsTokenPair(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, _ := newLoginService(t, sessions)

	pair, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected non-empty pair")
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	svc, _ := newLoginService(t, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginUnknownUserUnauthorized(t *testing.T) {
	svc, _ := newLoginService(t, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "Secret123!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestRefreshTranslatesInvalidToken(t *testing.T) {
	sessions := &stubSessionManager{refreshErr: session.ErrInvalidRefreshToken}
	svc, _ := newLoginService(t, sessions)

	_, err := svc.Refresh(context.Background(), RefreshRequest{Refresh: "stale"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestRefreshReturnsRotatedPair(t *testing.T) {
	svc, _ := newLoginService(t, &stubSessionManager{})

	pair, err := svc.Refresh(context.Background(), RefreshRequest{Refresh: "valid"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.Access != "access-token-2" || pair.Refresh != "refresh-token-2" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}
