package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasrivera/shopstead-backend/pkg/db/models"
	"github.com/lucasrivera/shopstead-backend/pkg/enums"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CreateCustom(ctx context.Context, order *models.CustomOrder) error
	FindCustomByID(ctx context.Context, id uint) (*models.CustomOrder, error)
	ListCustomByUser(ctx context.Context, userID uint) ([]models.CustomOrder, error)
	UpdateCustomStatus(ctx context.Context, id uint, status string) error
}

type productFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)
}

type shopFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
}

// Service exposes order operations.
type Service interface {
	Create(ctx context.Context, userID uint, input CreateOrderInput) (*OrderDTO, error)
	ListMine(ctx context.Context, userID uint) ([]OrderDTO, error)
	GetByID(ctx context.Context, userID, orderID uint) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, userID, orderID uint, status string) (*OrderDTO, error)
	Delete(ctx context.Context, userID, orderID uint) error
	CreateCustom(ctx context.Context, userID uint, input CreateCustomOrderInput) (*CustomOrderDTO, error)
	ListMineCustom(ctx context.Context, userID uint) ([]CustomOrderDTO, error)
	UpdateCustomStatus(ctx context.Context, userID, orderID uint, status string) (*CustomOrderDTO, error)
}

type service struct {
	repo     orderRepository
	products productFinder
	shops    shopFinder
}

// NewService builds an order service with the provided repositories.
func NewService(repo orderRepository, products productFinder, shops shopFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo, products: products, shops: shops}, nil
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderInput captures the order creation payload. Prices are never
// taken from the client; they are captured from the catalog at order time.
type CreateOrderInput struct {
	ShippingAddress string           `json:"shipping_address" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateCustomOrderInput captures the bespoke order payload.
type CreateCustomOrderInput struct {
	ShopID      uint            `json:"shop_id" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Budget      decimal.Decimal `json:"budget" validate:"required"`
}

func (s *service) Create(ctx context.Context, userID uint, input CreateOrderInput) (*OrderDTO, error) {
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping_address is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	order := &models.Order{
		UserID:          userID,
		Status:          enums.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
	}

	total := decimal.Zero
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", item.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	order.TotalAmount = total

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return FromModel(order), nil
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, userID, orderID uint) (*OrderDTO, error) {
	order, err := s.loadOwnOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, orderID uint, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.loadOwnOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, orderID, parsed.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = parsed
	return FromModel(order), nil
}

func (s *service) Delete(ctx context.Context, userID, orderID uint) error {
	if _, err := s.loadOwnOrder(ctx, userID, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) CreateCustom(ctx context.Context, userID uint, input CreateCustomOrderInput) (*CustomOrderDTO, error) {
	shop, err := s.shops.FindByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	if !shop.EnableCustomOrders {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "custom orders are disabled for this shop")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.Budget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
	}

	order := &models.CustomOrder{
		UserID:      userID,
		ShopID:      input.ShopID,
		Description: input.Description,
		Budget:      input.Budget,
		Status:      enums.CustomOrderStatusPending,
	}
	if err := s.repo.CreateCustom(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create custom order")
	}
	return customFromModel(order), nil
}

func (s *service) ListMineCustom(ctx context.Context, userID uint) ([]CustomOrderDTO, error) {
	rows, err := s.repo.ListCustomByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom orders")
	}
	dtos := make([]CustomOrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *customFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) UpdateCustomStatus(ctx context.Context, userID, orderID uint, status string) (*CustomOrderDTO, error) {
	parsed, err := enums.ParseCustomOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid custom order status")
	}

	order, err := s.repo.FindCustomByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load custom order")
	}

	// Only the shop owner moves a request through its lifecycle.
	shop, err := s.shops.FindByID(ctx, order.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	if shop.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}

	if err := s.repo.UpdateCustomStatus(ctx, orderID, parsed.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update custom order status")
	}
	order.Status = parsed
	return customFromModel(order), nil
}

func (s *service) loadOwnOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
