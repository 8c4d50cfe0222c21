package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasrivera/shopstead-backend/pkg/enums"
)

// Order is a standard catalog order placed by a user.
type Order struct {
	ID              uint              `gorm:"primaryKey;autoIncrement"`
	UserID          uint              `gorm:"column:user_id;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a line item within an order. UnitPrice is captured at order
// time so later product edits do not rewrite history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `gorm:"column:order_id;not null;index"`
	ProductID uint            `gorm:"column:product_id;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
}

// CustomOrder is a bespoke request tied to a shop and budget, outside the
// standard catalog flow.
type CustomOrder struct {
	ID          uint                    `gorm:"primaryKey;autoIncrement"`
	UserID      uint                    `gorm:"column:user_id;not null;index"`
	ShopID      uint                    `gorm:"column:shop_id;not null;index"`
	Description string                  `gorm:"column:description;not null"`
	Budget      decimal.Decimal         `gorm:"column:budget;type:numeric(10,2);not null"`
	Status      enums.CustomOrderStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
