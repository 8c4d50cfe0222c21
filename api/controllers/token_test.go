package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasrivera/shopstead-backend/internal/auth"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
)

type stubAuthService struct {
	loginResp   *auth.TokenPairResponse
	loginErr    error
	refreshResp *auth.TokenPairResponse
	refreshErr  error
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.TokenPairResponse, error) {
	return s.loginResp, s.loginErr
}

func (s stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPairResponse, error) {
	return s.refreshResp, s.refreshErr
}

func TestTokenObtainSuccess(t *testing.T) {
	handler := TokenObtain(stubAuthService{loginResp: &auth.TokenPairResponse{Access: "a", Refresh: "r"}}, nil)

	body := []byte(`{"username": "maria", "password": "Secret123!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}

	var envelope struct {
		Data auth.TokenPairResponse `json:"data"`
	}
	if err := json.NewDecoder(respRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Access != "a" || envelope.Data.Refresh != "r" {
		t.Fatalf("unexpected pair %+v", envelope.Data)
	}
}

func TestTokenObtainBadCredentials(t *testing.T) {
	handler := TokenObtain(stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := []byte(`{"username": "maria", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", respRec.Code)
	}
}

func TestTokenRefreshRotates(t *testing.T) {
	handler := TokenRefresh(stubAuthService{refreshResp: &auth.TokenPairResponse{Access: "a2", Refresh: "r2"}}, nil)

	body := []byte(`{"refresh": "r1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}

	var envelope struct {
		Data auth.TokenPairResponse `json:"data"`
	}
	if err := json.NewDecoder(respRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Refresh != "r2" {
		t.Fatalf("expected rotated refresh, got %+v", envelope.Data)
	}
}

func TestTokenRefreshRejectsReplay(t *testing.T) {
	handler := TokenRefresh(stubAuthService{refreshErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")}, nil)

	body := []byte(`{"refresh": "used-before"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", respRec.Code)
	}
}

func TestTokenRefreshRequiresBody(t *testing.T) {
	handler := TokenRefresh(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}
