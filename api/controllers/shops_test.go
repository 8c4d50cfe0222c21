package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lucasrivera/shopstead-backend/api/middleware"
	"github.com/lucasrivera/shopstead-backend/internal/shops"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withUser(req *http.Request, userID uint) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

type stubShopService struct {
	created    *shops.ShopDTO
	createErr  error
	listResp   *shops.ShopListDTO
	listParams pagination.Params
	updateErr  error
	reviewResp *shops.ShopReviewDTO
	reviewErr  error
	lastOwner  uint
}

func (s *stubShopService) Create(ctx context.Context, ownerID uint, input shops.CreateShopInput) (*shops.ShopDTO, error) {
	s.lastOwner = ownerID
	return s.created, s.createErr
}

func (s *stubShopService) GetByID(ctx context.Context, id uint) (*shops.ShopDTO, error) {
	return &shops.ShopDTO{ID: id, Name: "Glazeworks"}, nil
}

func (s *stubShopService) List(ctx context.Context, params pagination.Params) (*shops.ShopListDTO, error) {
	s.listParams = params
	if s.listResp != nil {
		return s.listResp, nil
	}
	return &shops.ShopListDTO{Shops: []shops.ShopDTO{}}, nil
}

func (s *stubShopService) Update(ctx context.Context, userID, shopID uint, input shops.UpdateShopInput) (*shops.ShopDTO, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &shops.ShopDTO{ID: shopID, OwnerID: userID}, nil
}

func (s *stubShopService) Delete(ctx context.Context, userID, shopID uint) error {
	return s.updateErr
}

func (s *stubShopService) AddCategory(ctx context.Context, userID, shopID uint, name string) (*shops.ShopCategoryDTO, error) {
	return &shops.ShopCategoryDTO{ID: 1, ShopID: shopID, Name: name}, nil
}

func (s *stubShopService) ListCategories(ctx context.Context, shopID uint) ([]shops.ShopCategoryDTO, error) {
	return []shops.ShopCategoryDTO{}, nil
}

func (s *stubShopService) DeleteCategory(ctx context.Context, userID, shopID, categoryID uint) error {
	return nil
}

func (s *stubShopService) AddReview(ctx context.Context, userID, shopID uint, input shops.ReviewInput) (*shops.ShopReviewDTO, error) {
	return s.reviewResp, s.reviewErr
}

func (s *stubShopService) ListReviews(ctx context.Context, shopID uint) ([]shops.ShopReviewDTO, error) {
	return []shops.ShopReviewDTO{}, nil
}

func TestShopCreateUsesCallerAsOwner(t *testing.T) {
	svc := &stubShopService{created: &shops.ShopDTO{ID: 3, OwnerID: 9, Name: "Glazeworks"}}
	handler := ShopCreate(svc, nil)

	body := []byte(`{"name": "Glazeworks"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shops/create/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, 9)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", respRec.Code)
	}
	if svc.lastOwner != 9 {
		t.Fatalf("expected owner from context, got %d", svc.lastOwner)
	}
}

func TestShopCreateWithoutIdentity(t *testing.T) {
	handler := ShopCreate(&stubShopService{}, nil)

	body := []byte(`{"name": "Glazeworks"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shops/create/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", respRec.Code)
	}
}

func TestShopListForwardsPagination(t *testing.T) {
	svc := &stubShopService{}
	handler := ShopList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/shops/?limit=5&cursor=abc", nil)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	if svc.listParams.Limit != 5 || svc.listParams.Cursor != "abc" {
		t.Fatalf("pagination not forwarded: %+v", svc.listParams)
	}
}

func TestShopUpdateForbiddenForNonOwner(t *testing.T) {
	svc := &stubShopService{updateErr: pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")}
	handler := ShopUpdate(svc, nil)

	body := []byte(`{"name": "Taken Over"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/shops/update/3/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, 2)
	req = withURLParams(req, map[string]string{"shopId": "3"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", respRec.Code)
	}
}

func TestShopDetailParsesID(t *testing.T) {
	handler := ShopDetail(&stubShopService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/shops/12/", nil)
	req = withURLParams(req, map[string]string{"shopId": "12"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}

	var envelope struct {
		Data shops.ShopDTO `json:"data"`
	}
	if err := json.NewDecoder(respRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 12 {
		t.Fatalf("expected shop 12 got %d", envelope.Data.ID)
	}
}

func TestShopDetailRejectsBadID(t *testing.T) {
	handler := ShopDetail(&stubShopService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/shops/banana/", nil)
	req = withURLParams(req, map[string]string{"shopId": "banana"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}

func TestShopReviewCreateDuplicateConflict(t *testing.T) {
	svc := &stubShopService{reviewErr: pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this shop")}
	handler := ShopReviewCreate(svc, nil)

	body := []byte(`{"rating": 4, "comment": "second time"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shops/3/reviews/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, 5)
	req = withURLParams(req, map[string]string{"shopId": "3"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", respRec.Code)
	}
}

func TestShopDeleteNoContent(t *testing.T) {
	handler := ShopDelete(&stubShopService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/shops/delete/3/", nil)
	req = withUser(req, 9)
	req = withURLParams(req, map[string]string{"shopId": "3"})
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", respRec.Code)
	}
	if respRec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", respRec.Body.String())
	}
}
