package shops

import (
	"time"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
)

// ShopDTO exposes safe tenant data in API responses.
type ShopDTO struct {
	ID          uint    `json:"id"`
	OwnerID     uint    `json:"owner"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`

	EnableProductListings bool `json:"enable_product_listings"`
	EnableCustomOrders    bool `json:"enable_custom_orders"`
	EnableReviews         bool `json:"enable_reviews"`
	EnableContact         bool `json:"enable_contact"`
	EnableShipping        bool `json:"enable_shipping"`
	EnableSocialLinks     bool `json:"enable_social_links"`

	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`

	FacebookURL  *string `json:"facebook_url,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty"`
	TwitterURL   *string `json:"twitter_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateShopDTO holds creation-time data for a new shop.
type CreateShopDTO struct {
	OwnerID     uint
	Name        string
	Description *string
	LogoURL     *string
	BannerURL   *string
	Email       *string
	Phone       *string
	Address     *string

	EnableProductListings *bool
	EnableCustomOrders    *bool
	EnableReviews         *bool
	EnableContact         *bool
	EnableShipping        *bool
	EnableSocialLinks     *bool

	PrimaryColor   *string
	SecondaryColor *string

	FacebookURL  *string
	InstagramURL *string
	TwitterURL   *string
}

// ShopCategoryDTO is the transport shape for shop categories.
type ShopCategoryDTO struct {
	ID     uint   `json:"id"`
	ShopID uint   `json:"shop_id"`
	Name   string `json:"name"`
}

// ShopReviewDTO is the transport shape for shop reviews.
type ShopReviewDTO struct {
	ID        uint      `json:"id"`
	ShopID    uint      `json:"shop_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	defaultPrimaryColor   = "#3B82F6"
	defaultSecondaryColor = "#10B981"
)

// FromModel maps the persisted shop into a DTO.
func FromModel(m *models.Shop) *ShopDTO {
	if m == nil {
		return nil
	}

	return &ShopDTO{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		BannerURL:   m.BannerURL,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,

		EnableProductListings: m.EnableProductListings,
		EnableCustomOrders:    m.EnableCustomOrders,
		EnableReviews:         m.EnableReviews,
		EnableContact:         m.EnableContact,
		EnableShipping:        m.EnableShipping,
		EnableSocialLinks:     m.EnableSocialLinks,

		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,

		FacebookURL:  m.FacebookURL,
		InstagramURL: m.InstagramURL,
		TwitterURL:   m.TwitterURL,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateShopDTO) ToModel() *models.Shop {
	model := &models.Shop{
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		BannerURL:   c.BannerURL,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,

		EnableProductListings: true,
		EnableCustomOrders:    false,
		EnableReviews:         true,
		EnableContact:         true,
		EnableShipping:        false,
		EnableSocialLinks:     false,

		PrimaryColor:   defaultPrimaryColor,
		SecondaryColor: defaultSecondaryColor,

		FacebookURL:  c.FacebookURL,
		InstagramURL: c.InstagramURL,
		TwitterURL:   c.TwitterURL,
	}

	if c.EnableProductListings != nil {
		model.EnableProductListings = *c.EnableProductListings
	}
	if c.EnableCustomOrders != nil {
		model.EnableCustomOrders = *c.EnableCustomOrders
	}
	if c.EnableReviews != nil {
		model.EnableReviews = *c.EnableReviews
	}
	if c.EnableContact != nil {
		model.EnableContact = *c.EnableContact
	}
	if c.EnableShipping != nil {
		model.EnableShipping = *c.EnableShipping
	}
	if c.EnableSocialLinks != nil {
		model.EnableSocialLinks = *c.EnableSocialLinks
	}
	if c.PrimaryColor != nil {
		model.PrimaryColor = *c.PrimaryColor
	}
	if c.SecondaryColor != nil {
		model.SecondaryColor = *c.SecondaryColor
	}

	return model
}

func categoryFromModel(m *models.ShopCategory) *ShopCategoryDTO {
	if m == nil {
		return nil
	}
	return &ShopCategoryDTO{ID: m.ID, ShopID: m.ShopID, Name: m.Name}
}

func reviewFromModel(m *models.ShopReview) *ShopReviewDTO {
	if m == nil {
		return nil
	}
	return &ShopReviewDTO{
		ID:        m.ID,
		ShopID:    m.ShopID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
