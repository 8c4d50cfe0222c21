package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db"
	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

type productRepository interface {
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, shopID *uint, cursor *pagination.Cursor, limit int) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	CreateImage(ctx context.Context, image *models.ProductImage) error
	DeleteImage(ctx context.Context, productID, imageID uint) error
	CreateReview(ctx context.Context, review *models.ProductReview) error
	ListReviews(ctx context.Context, productID uint) ([]models.ProductReview, error)
}

type shopFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
}

// Service exposes product operations.
type Service interface {
	Create(ctx context.Context, userID uint, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id uint) (*ProductDTO, error)
	List(ctx context.Context, input ListProductsInput) (*ProductListDTO, error)
	Update(ctx context.Context, userID, productID uint, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID, productID uint) error
	AddImage(ctx context.Context, userID, productID uint, input ImageInput) (*ProductImageDTO, error)
	DeleteImage(ctx context.Context, userID, productID, imageID uint) error
	AddReview(ctx context.Context, userID, productID uint, input ReviewInput) (*ProductReviewDTO, error)
	ListReviews(ctx context.Context, productID uint) ([]ProductReviewDTO, error)
}

type service struct {
	repo  productRepository
	shops shopFinder
}

// NewService builds a product service with the provided repositories.
func NewService(repo productRepository, shops shopFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo, shops: shops}, nil
}

// CreateProductInput captures the product creation payload.
type CreateProductInput struct {
	ShopID      uint            `json:"shop_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Inventory   int             `json:"inventory" validate:"min=0"`
}

// UpdateProductInput captures the mutable product fields. Nil leaves a field
// untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Inventory   *int             `json:"inventory,omitempty" validate:"omitempty,min=0"`
}

// ImageInput captures the image attachment payload.
type ImageInput struct {
	URL      string  `json:"url" validate:"required,url"`
	AltText  *string `json:"alt_text,omitempty"`
	Position int     `json:"position" validate:"min=0"`
}

// ReviewInput captures the review payload.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter products.
type ListProductsInput struct {
	ShopID     *uint
	Pagination pagination.Params
}

// ProductListDTO is one page of products plus the cursor for the next page.
type ProductListDTO struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func (s *service) Create(ctx context.Context, userID uint, input CreateProductInput) (*ProductDTO, error) {
	shop, err := s.loadShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}
	if !shop.EnableProductListings {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product listings are disabled for this shop")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Inventory < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
	}

	product, err := s.repo.Create(ctx, CreateProductDTO{
		ShopID:      input.ShopID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Inventory:   input.Inventory,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductListDTO, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	rows, err := s.repo.List(ctx, input.ShopID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ProductListDTO{Products: dtos, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, userID, productID uint, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Inventory != nil {
		if *input.Inventory < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory cannot be negative")
		}
		product.Inventory = *input.Inventory
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, userID, productID uint) error {
	if _, err := s.loadOwnedProduct(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) AddImage(ctx context.Context, userID, productID uint, input ImageInput) (*ProductImageDTO, error) {
	if _, err := s.loadOwnedProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is required")
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       input.URL,
		AltText:   input.AltText,
		Position:  input.Position,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create image")
	}
	return imageFromModel(image), nil
}

func (s *service) DeleteImage(ctx context.Context, userID, productID, imageID uint) error {
	if _, err := s.loadOwnedProduct(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, productID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}

func (s *service) AddReview(ctx context.Context, userID, productID uint, input ReviewInput) (*ProductReviewDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	shop, err := s.loadShop(ctx, product.ShopID)
	if err != nil {
		return nil, err
	}
	if !shop.EnableReviews {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviews are disabled for this shop")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	review := &models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "product_reviews_product_user_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return reviewFromModel(review), nil
}

func (s *service) ListReviews(ctx context.Context, productID uint) ([]ProductReviewDTO, error) {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	dtos := make([]ProductReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *reviewFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) loadProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) loadShop(ctx context.Context, id uint) (*models.Shop, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) loadOwnedProduct(ctx context.Context, userID, productID uint) (*models.Product, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	shop, err := s.loadShop(ctx, product.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}
	return product, nil
}
