package products

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

// Repository handles product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product with its images.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products newest-first, optionally scoped to one shop.
func (r *Repository) List(ctx context.Context, shopID *uint, cursor *pagination.Cursor, limit int) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Omit("Images", "Reviews").Save(product).Error
}

// Delete removes the product row. Images and reviews cascade.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateImage attaches an image to the product.
func (r *Repository) CreateImage(ctx context.Context, image *models.ProductImage) error {
	if image == nil {
		return fmt.Errorf("image is required")
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// DeleteImage removes one image scoped to the product.
func (r *Repository) DeleteImage(ctx context.Context, productID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductImage{}, "id = ?", imageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateReview inserts a review. The composite unique index rejects a second
// review from the same user.
func (r *Repository) CreateReview(ctx context.Context, review *models.ProductReview) error {
	if review == nil {
		return fmt.Errorf("review is required")
	}
	return r.db.WithContext(ctx).Create(review).Error
}

// ListReviews returns all reviews for the product, newest first.
func (r *Repository) ListReviews(ctx context.Context, productID uint) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
