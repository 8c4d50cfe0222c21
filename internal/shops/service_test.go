package shops

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

type stubShopRepository struct {
	shops      map[uint]*models.Shop
	nextID     uint
	updated    *models.Shop
	deleted    []uint
	reviewErr  error
	categories map[uint][]models.ShopCategory
	reviews    map[uint][]models.ShopReview
}

func newStubShopRepository() *stubShopRepository {
	return &stubShopRepository{
		shops:      map[uint]*models.Shop{},
		nextID:     1,
		categories: map[uint][]models.ShopCategory{},
		reviews:    map[uint][]models.ShopReview{},
	}
}

func (s *stubShopRepository) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	shop := dto.ToModel()
	shop.ID = s.nextID
	s.nextID++
	s.shops[shop.ID] = shop
	return shop, nil
}

func (s *stubShopRepository) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	if shop, ok := s.shops[id]; ok {
		cpy := *shop
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubShopRepository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Shop, error) {
	out := make([]models.Shop, 0, len(s.shops))
	for _, shop := range s.shops {
		out = append(out, *shop)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	s.updated = shop
	s.shops[shop.ID] = shop
	return nil
}

func (s *stubShopRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := s.shops[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.shops, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubShopRepository) CreateCategory(ctx context.Context, shopID uint, name string) (*models.ShopCategory, error) {
	category := models.ShopCategory{ID: uint(len(s.categories[shopID]) + 1), ShopID: shopID, Name: name}
	s.categories[shopID] = append(s.categories[shopID], category)
	return &category, nil
}

func (s *stubShopRepository) ListCategories(ctx context.Context, shopID uint) ([]models.ShopCategory, error) {
	return s.categories[shopID], nil
}

func (s *stubShopRepository) DeleteCategory(ctx context.Context, shopID, categoryID uint) error {
	rows := s.categories[shopID]
	for i, c := range rows {
		if c.ID == categoryID {
			s.categories[shopID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubShopRepository) CreateReview(ctx context.Context, review *models.ShopReview) error {
	if s.reviewErr != nil {
		return s.reviewErr
	}
	review.ID = uint(len(s.reviews[review.ShopID]) + 1)
	s.reviews[review.ShopID] = append(s.reviews[review.ShopID], *review)
	return nil
}

func (s *stubShopRepository) ListReviews(ctx context.Context, shopID uint) ([]models.ShopReview, error) {
	return s.reviews[shopID], nil
}

func newShopService(t *testing.T) (Service, *stubShopRepository) {
	t.Helper()
	repo := newStubShopRepository()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func seedShop(t *testing.T, svc Service, ownerID uint) *ShopDTO {
	t.Helper()
	shop, err := svc.Create(context.Background(), ownerID, CreateShopInput{Name: "Seeded"})
	if err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCreateSetsOwnerFromCaller(t *testing.T) {
	svc, _ := newShopService(t)

	shop, err := svc.Create(context.Background(), 42, CreateShopInput{Name: "Mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if shop.OwnerID != 42 {
		t.Fatalf("expected owner 42, got %d", shop.OwnerID)
	}
}

func TestUpdateMissingShopNotFound(t *testing.T) {
	svc, repo := newShopService(t)

	_, err := svc.Update(context.Background(), 1, 999, UpdateShopInput{Name: strPtr("New")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no mutation")
	}
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	svc, repo := newShopService(t)
	shop := seedShop(t, svc, 1)

	_, err := svc.Update(context.Background(), 2, shop.ID, UpdateShopInput{Name: strPtr("Hijack")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no mutation")
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc, _ := newShopService(t)
	shop := seedShop(t, svc, 1)

	updated, err := svc.Update(context.Background(), 1, shop.ID, UpdateShopInput{
		Description:    strPtr("hand-thrown stoneware"),
		EnableShipping: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Seeded" {
		t.Fatalf("name should be untouched, got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "hand-thrown stoneware" {
		t.Fatalf("description not applied: %+v", updated.Description)
	}
	if !updated.EnableShipping {
		t.Fatal("shipping toggle not applied")
	}
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	svc, repo := newShopService(t)
	shop := seedShop(t, svc, 1)

	err := svc.Delete(context.Background(), 2, shop.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("expected no deletion")
	}
}

func TestAddReviewDisabledForbidden(t *testing.T) {
	svc, _ := newShopService(t)
	owner := uint(1)
	shop, err := svc.Create(context.Background(), owner, CreateShopInput{
		Name:          "No Reviews",
		EnableReviews: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.AddReview(context.Background(), 2, shop.ID, ReviewInput{Rating: 5})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestAddReviewDuplicateConflicts(t *testing.T) {
	svc, repo := newShopService(t)
	shop := seedShop(t, svc, 1)
	repo.reviewErr = errors.New("UNIQUE constraint failed: shop_reviews.shop_id, shop_reviews.user_id")

	_, err := svc.AddReview(context.Background(), 2, shop.ID, ReviewInput{Rating: 3})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _ := newShopService(t)
	shop := seedShop(t, svc, 1)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), 2, shop.ID, ReviewInput{Rating: rating})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected VALIDATION_ERROR, got %v", rating, err)
		}
	}
}

func TestShopDTORoundTrip(t *testing.T) {
	svc, _ := newShopService(t)

	input := CreateShopInput{
		Name:               "Round Trip",
		Description:        strPtr("ceramics"),
		Email:              strPtr("shop@example.com"),
		EnableCustomOrders: boolPtr(true),
		EnableReviews:      boolPtr(false),
		PrimaryColor:       strPtr("#112233"),
		FacebookURL:        strPtr("https://facebook.com/roundtrip"),
	}
	shop, err := svc.Create(context.Background(), 9, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), shop.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Name != input.Name {
		t.Errorf("name mismatch: %q", got.Name)
	}
	if got.Description == nil || *got.Description != *input.Description {
		t.Errorf("description mismatch: %v", got.Description)
	}
	if got.Email == nil || *got.Email != *input.Email {
		t.Errorf("email mismatch: %v", got.Email)
	}
	if !got.EnableCustomOrders || got.EnableReviews {
		t.Errorf("toggles mismatch: %+v", got)
	}
	if got.PrimaryColor != "#112233" {
		t.Errorf("primary color mismatch: %q", got.PrimaryColor)
	}
	if got.SecondaryColor != "#10B981" {
		t.Errorf("expected default secondary color, got %q", got.SecondaryColor)
	}
	if got.FacebookURL == nil || *got.FacebookURL != *input.FacebookURL {
		t.Errorf("facebook url mismatch: %v", got.FacebookURL)
	}
	if got.OwnerID != 9 {
		t.Errorf("owner mismatch: %d", got.OwnerID)
	}
}
