package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
)

// ProductDTO is the catalog transport shape.
type ProductDTO struct {
	ID          uint              `json:"id"`
	ShopID      uint              `json:"shop_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Inventory   int               `json:"inventory"`
	Images      []ProductImageDTO `json:"images,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductImageDTO is the transport shape for product images.
type ProductImageDTO struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	URL       string  `json:"url"`
	AltText   *string `json:"alt_text,omitempty"`
	Position  int     `json:"position"`
}

// ProductReviewDTO is the transport shape for product reviews.
type ProductReviewDTO struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductDTO holds creation-time data for a new product.
type CreateProductDTO struct {
	ShopID      uint
	Name        string
	Description string
	Price       decimal.Decimal
	Inventory   int
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:          m.ID,
		ShopID:      m.ShopID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Inventory:   m.Inventory,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Images {
		dto.Images = append(dto.Images, *imageFromModel(&m.Images[i]))
	}
	return dto
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		ShopID:      c.ShopID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Inventory:   c.Inventory,
	}
}

func imageFromModel(m *models.ProductImage) *ProductImageDTO {
	if m == nil {
		return nil
	}
	return &ProductImageDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		URL:       m.URL,
		AltText:   m.AltText,
		Position:  m.Position,
	}
}

func reviewFromModel(m *models.ProductReview) *ProductReviewDTO {
	if m == nil {
		return nil
	}
	return &ProductReviewDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
