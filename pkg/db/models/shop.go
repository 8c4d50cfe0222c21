package models

import "time"

// Shop is the tenant storefront. Deleting the owner removes the shop, and
// deleting the shop cascades to categories, reviews, products, and custom
// orders.
type Shop struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	OwnerID     uint    `gorm:"column:owner_id;not null;index"`
	Name        string  `gorm:"column:name;size:100;not null"`
	Description *string `gorm:"column:description"`
	LogoURL     *string `gorm:"column:logo_url"`
	BannerURL   *string `gorm:"column:banner_url"`
	Email       *string `gorm:"column:email"`
	Phone       *string `gorm:"column:phone;size:20"`
	Address     *string `gorm:"column:address"`

	EnableProductListings bool `gorm:"column:enable_product_listings;not null;default:true"`
	EnableCustomOrders    bool `gorm:"column:enable_custom_orders;not null;default:false"`
	EnableReviews         bool `gorm:"column:enable_reviews;not null;default:true"`
	EnableContact         bool `gorm:"column:enable_contact;not null;default:true"`
	EnableShipping        bool `gorm:"column:enable_shipping;not null;default:false"`
	EnableSocialLinks     bool `gorm:"column:enable_social_links;not null;default:false"`

	PrimaryColor   string `gorm:"column:primary_color;size:7;not null;default:'#3B82F6'"`
	SecondaryColor string `gorm:"column:secondary_color;size:7;not null;default:'#10B981'"`

	FacebookURL  *string `gorm:"column:facebook_url"`
	InstagramURL *string `gorm:"column:instagram_url"`
	TwitterURL   *string `gorm:"column:twitter_url"`

	Categories []ShopCategory `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Reviews    []ShopReview   `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Products   []Product      `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ShopCategory is a simple name label scoped to one shop.
type ShopCategory struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	ShopID uint   `gorm:"column:shop_id;not null;index"`
	Name   string `gorm:"column:name;size:50;not null"`
}

// ShopReview holds one user's rating of a shop. A (shop, user) pair may
// review at most once, enforced by a composite unique index.
type ShopReview struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ShopID    uint      `gorm:"column:shop_id;not null;uniqueIndex:shop_reviews_shop_user_key"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:shop_reviews_shop_user_key"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
