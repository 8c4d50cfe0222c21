package shops

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	"github.com/lucasrivera/shopstead-backend/pkg/pagination"
)

// Repository handles shop persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to shop operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new shop row.
func (r *Repository) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	shop := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID loads a shop by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// List returns shops newest-first, starting after the optional cursor.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Shop, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var shops []models.Shop
	if err := q.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Update saves the provided shop.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return fmt.Errorf("shop is required")
	}
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete removes the shop row. Categories, reviews, products, and custom
// orders go with it via FK cascade.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateCategory adds a category label to the shop.
func (r *Repository) CreateCategory(ctx context.Context, shopID uint, name string) (*models.ShopCategory, error) {
	category := &models.ShopCategory{ShopID: shopID, Name: name}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories for the shop.
func (r *Repository) ListCategories(ctx context.Context, shopID uint) ([]models.ShopCategory, error) {
	var categories []models.ShopCategory
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes one category scoped to the shop.
func (r *Repository) DeleteCategory(ctx context.Context, shopID, categoryID uint) error {
	result := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&models.ShopCategory{}, "id = ?", categoryID)
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
func (r *Repository) CreateReview(ctx context.Context, review *models.ShopReview) error {
	if review == nil {
		return fmt.Errorf("review is required")
	}
	return r.db.WithContext(ctx).Create(review).Error
}

// ListReviews returns all reviews for the shop, newest first.
func (r *Repository) ListReviews(ctx context.Context, shopID uint) ([]models.ShopReview, error) {
	var reviews []models.ShopReview
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
