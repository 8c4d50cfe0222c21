package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	"github.com/lucasrivera/shopstead-backend/pkg/enums"
)

// OrderDTO is the transport shape for standard orders.
type OrderDTO struct {
	ID              uint              `json:"id"`
	UserID          uint              `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	ShippingAddress string            `json:"shipping_address"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderItemDTO is one line item of an order.
type OrderItemDTO struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CustomOrderDTO is the transport shape for bespoke order requests.
type CustomOrderDTO struct {
	ID          uint                    `json:"id"`
	UserID      uint                    `json:"user_id"`
	ShopID      uint                    `json:"shop_id"`
	Description string                  `json:"description"`
	Budget      decimal.Decimal         `json:"budget"`
	Status      enums.CustomOrderStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// FromModel maps the persisted order into a DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:              m.ID,
		UserID:          m.UserID,
		Status:          m.Status,
		TotalAmount:     m.TotalAmount,
		ShippingAddress: m.ShippingAddress,
		Items:           make([]OrderItemDTO, 0, len(m.Items)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, item := range m.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto
}

func customFromModel(m *models.CustomOrder) *CustomOrderDTO {
	if m == nil {
		return nil
	}
	return &CustomOrderDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		ShopID:      m.ShopID,
		Description: m.Description,
		Budget:      m.Budget,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
