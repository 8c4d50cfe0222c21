package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing owned by a shop.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	ShopID      uint            `gorm:"column:shop_id;not null;index"`
	Name        string          `gorm:"column:name;size:100;not null"`
	Description string          `gorm:"column:description;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Inventory   int             `gorm:"column:inventory;not null;default:0"`

	Images  []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews []ProductReview `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is an ordered image attachment for a product.
type ProductImage struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	ProductID uint    `gorm:"column:product_id;not null;index"`
	URL       string  `gorm:"column:url;not null"`
	AltText   *string `gorm:"column:alt_text"`
	Position  int     `gorm:"column:position;not null;default:0"`
}

// ProductReview parallels ShopReview: one review per (product, user) pair.
type ProductReview struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ProductID uint      `gorm:"column:product_id;not null;uniqueIndex:product_reviews_product_user_key"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:product_reviews_product_user_key"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
