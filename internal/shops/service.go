package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db"
	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

type shopRepository interface {
	Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error)
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uint) error
	CreateCategory(ctx context.Context, shopID uint, name string) (*models.ShopCategory, error)
	ListCategories(ctx context.Context, shopID uint) ([]models.ShopCategory, error)
	DeleteCategory(ctx context.Context, shopID, categoryID uint) error
	CreateReview(ctx context.Context, review *models.ShopReview) error
	ListReviews(ctx context.Context, shopID uint) ([]models.ShopReview, error)
}

// Service exposes shop operations.
type Service interface {
	Create(ctx context.Context, ownerID uint, input CreateShopInput) (*ShopDTO, error)
	GetByID(ctx context.Context, id uint) (*ShopDTO, error)
	List(ctx context.Context, params pagination.Params) (*ShopListDTO, error)
	Update(ctx context.Context, userID, shopID uint, input UpdateShopInput) (*ShopDTO, error)
	Delete(ctx context.Context, userID, shopID uint) error
	AddCategory(ctx context.Context, userID, shopID uint, name string) (*ShopCategoryDTO, error)
	ListCategories(ctx context.Context, shopID uint) ([]ShopCategoryDTO, error)
	DeleteCategory(ctx context.Context, userID, shopID, categoryID uint) error
	AddReview(ctx context.Context, userID, shopID uint, input ReviewInput) (*ShopReviewDTO, error)
	ListReviews(ctx context.Context, shopID uint) ([]ShopReviewDTO, error)
}

type service struct {
	repo shopRepository
}

// NewService builds a shop service with the provided repository.
func NewService(repo shopRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// CreateShopInput captures the shop creation payload.
type CreateShopInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`

	EnableProductListings *bool `json:"enable_product_listings,omitempty"`
	EnableCustomOrders    *bool `json:"enable_custom_orders,omitempty"`
	EnableReviews         *bool `json:"enable_reviews,omitempty"`
	EnableContact         *bool `json:"enable_contact,omitempty"`
	EnableShipping        *bool `json:"enable_shipping,omitempty"`
	EnableSocialLinks     *bool `json:"enable_social_links,omitempty"`

	PrimaryColor   *string `json:"primary_color,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color,omitempty" validate:"omitempty,hexcolor"`

	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	TwitterURL   *string `json:"twitter_url,omitempty" validate:"omitempty,url"`
}

// UpdateShopInput captures the allowed shop fields for mutation. Nil means
// leave the field untouched.
type UpdateShopInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`

	EnableProductListings *bool `json:"enable_product_listings,omitempty"`
	EnableCustomOrders    *bool `json:"enable_custom_orders,omitempty"`
	EnableReviews         *bool `json:"enable_reviews,omitempty"`
	EnableContact         *bool `json:"enable_contact,omitempty"`
	EnableShipping        *bool `json:"enable_shipping,omitempty"`
	EnableSocialLinks     *bool `json:"enable_social_links,omitempty"`

	PrimaryColor   *string `json:"primary_color,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color,omitempty" validate:"omitempty,hexcolor"`

	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	TwitterURL   *string `json:"twitter_url,omitempty" validate:"omitempty,url"`
}

// ReviewInput captures the review payload.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// ShopListDTO is one page of shops plus the cursor for the next page.
type ShopListDTO struct {
	Shops      []ShopDTO `json:"shops"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func (s *service) Create(ctx context.Context, ownerID uint, input CreateShopInput) (*ShopDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	shop, err := s.repo.Create(ctx, CreateShopDTO{
		OwnerID:     ownerID,
		Name:        name,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		BannerURL:   input.BannerURL,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,

		EnableProductListings: input.EnableProductListings,
		EnableCustomOrders:    input.EnableCustomOrders,
		EnableReviews:         input.EnableReviews,
		EnableContact:         input.EnableContact,
		EnableShipping:        input.EnableShipping,
		EnableSocialLinks:     input.EnableSocialLinks,

		PrimaryColor:   input.PrimaryColor,
		SecondaryColor: input.SecondaryColor,

		FacebookURL:  input.FacebookURL,
		InstagramURL: input.InstagramURL,
		TwitterURL:   input.TwitterURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return FromModel(shop), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*ShopDTO, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(shop), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ShopListDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]ShopDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ShopListDTO{Shops: dtos, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, userID, shopID uint, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.loadOwnedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		shop.Name = name
	}
	if input.Description != nil {
		shop.Description = cloneStringPtr(input.Description)
	}
	if input.LogoURL != nil {
		shop.LogoURL = cloneStringPtr(input.LogoURL)
	}
	if input.BannerURL != nil {
		shop.BannerURL = cloneStringPtr(input.BannerURL)
	}
	if input.Email != nil {
		shop.Email = cloneStringPtr(input.Email)
	}
	if input.Phone != nil {
		shop.Phone = cloneStringPtr(input.Phone)
	}
	if input.Address != nil {
		shop.Address = cloneStringPtr(input.Address)
	}
	if input.EnableProductListings != nil {
		shop.EnableProductListings = *input.EnableProductListings
	}
	if input.EnableCustomOrders != nil {
		shop.EnableCustomOrders = *input.EnableCustomOrders
	}
	if input.EnableReviews != nil {
		shop.EnableReviews = *input.EnableReviews
	}
	if input.EnableContact != nil {
		shop.EnableContact = *input.EnableContact
	}
	if input.EnableShipping != nil {
		shop.EnableShipping = *input.EnableShipping
	}
	if input.EnableSocialLinks != nil {
		shop.EnableSocialLinks = *input.EnableSocialLinks
	}
	if input.PrimaryColor != nil {
		shop.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		shop.SecondaryColor = *input.SecondaryColor
	}
	if input.FacebookURL != nil {
		shop.FacebookURL = cloneStringPtr(input.FacebookURL)
	}
	if input.InstagramURL != nil {
		shop.InstagramURL = cloneStringPtr(input.InstagramURL)
	}
	if input.TwitterURL != nil {
		shop.TwitterURL = cloneStringPtr(input.TwitterURL)
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return FromModel(shop), nil
}

func (s *service) Delete(ctx context.Context, userID, shopID uint) error {
	if _, err := s.loadOwnedShop(ctx, userID, shopID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

func (s *service) AddCategory(ctx context.Context, userID, shopID uint, name string) (*ShopCategoryDTO, error) {
	if _, err := s.loadOwnedShop(ctx, userID, shopID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category, err := s.repo.CreateCategory(ctx, shopID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return categoryFromModel(category), nil
}

func (s *service) ListCategories(ctx context.Context, shopID uint) ([]ShopCategoryDTO, error) {
	if _, err := s.loadShop(ctx, shopID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCategories(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]ShopCategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *categoryFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) DeleteCategory(ctx context.Context, userID, shopID, categoryID uint) error {
	if _, err := s.loadOwnedShop(ctx, userID, shopID); err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, shopID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) AddReview(ctx context.Context, userID, shopID uint, input ReviewInput) (*ShopReviewDTO, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.EnableReviews {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviews are disabled for this shop")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	review := &models.ShopReview{
		ShopID:  shopID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "shop_reviews_shop_user_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this shop")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return reviewFromModel(review), nil
}

func (s *service) ListReviews(ctx context.Context, shopID uint) ([]ShopReviewDTO, error) {
	if _, err := s.loadShop(ctx, shopID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListReviews(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	dtos := make([]ShopReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *reviewFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) loadShop(ctx context.Context, id uint) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) loadOwnedShop(ctx context.Context, userID, shopID uint) (*models.Shop, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}
	return shop, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
