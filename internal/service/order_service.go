package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// OrderStore is the order persistence surface the service needs. Implemented
// by *repository.OrderRepository.
type OrderStore interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	ListPaged(f repository.OrderFilter) ([]repository.OrderSummary, int, error)
	MarkPaid(id string) (claimed bool, err error)
	UpdateStatus(id string, status models.OrderStatus) error
}

// ProductGetter resolves products for order validation and price snapshots.
// Implemented by *repository.ProductRepository.
type ProductGetter interface {
	GetByID(id int) (*models.Product, error)
}

// OrderNotifier dispatches the admin notification for a new order.
// Implemented by *NotificationService.
type OrderNotifier interface {
	NotifyNewOrder(order *models.Order)
}

// OrderService owns order creation, status transitions, and payment marking.
type OrderService struct {
	orders   OrderStore
	products ProductGetter
	notifier OrderNotifier
}

// NewOrderService constructs an OrderService. notifier may be nil, in which
// case no new-order notifications are sent.
func NewOrderService(orders OrderStore, products ProductGetter, notifier OrderNotifier) *OrderService {
	return &OrderService{orders: orders, products: products, notifier: notifier}
}

// OrderItemRequest is one submitted order line.
type OrderItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the checkout input.
type CreateOrderRequest struct {
	ClientName  string             `json:"clientName" binding:"required"`
	ClientPhone string             `json:"clientPhone" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required,dive"`
}

// CreateOrder validates the submitted lines, snapshots unit prices, and
// persists the order with status PENDING. The total is the sum of
// price x quantity at creation time and is never recomputed later.
func (s *OrderService) CreateOrder(req *CreateOrderRequest) (*models.Order, error) {
	order, err := s.createOrder(req)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		// Fire-and-forget: a failed notification must never affect the order.
		go s.notifier.NotifyNewOrder(order)
	}
	return order, nil
}

func (s *OrderService) createOrder(req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, utils.ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, utils.ErrEmptyOrder
		}
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			return nil, err
		}
		if line.Quantity > product.Stock {
			return nil, utils.ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := &models.Order{
		ID:          uuid.New().String(),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Status:      models.StatusPending,
		Total:       total,
	}
	if err := s.orders.Create(order, items); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid transitions an order into PAID, decrementing stock for each line
// exactly once. It is idempotent: marking an already-PAID order succeeds
// without a second decrement. Terminal orders reject with ErrIllegalTransition.
func (s *OrderService) MarkPaid(orderID string) (*models.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case models.StatusPaid:
		// Replay: already paid, nothing to do.
		return order, nil
	case models.StatusPending:
		// fall through to the claim below
	default:
		return nil, utils.ErrIllegalTransition
	}

	claimed, err := s.orders.MarkPaid(orderID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// A concurrent call won the claim. Re-read and report its outcome.
		order, err = s.getOrder(orderID)
		if err != nil {
			return nil, err
		}
		if order.Status != models.StatusPaid {
			return nil, utils.ErrIllegalTransition
		}
		return order, nil
	}

	log.Info().Str("order_id", orderID).Msg("order marked paid")
	return s.getOrder(orderID)
}

// UpdateStatus applies a status change after checking the transition table.
// Transitions into PAID are routed through MarkPaid so the stock decrement
// guard cannot be bypassed. Writing the current status again is a no-op.
func (s *OrderService) UpdateStatus(orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, utils.ErrInvalidStatus
	}
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == newStatus {
		return order, nil
	}
	if !models.CanTransition(order.Status, newStatus) {
		return nil, utils.ErrIllegalTransition
	}
	if newStatus == models.StatusPaid {
		return s.MarkPaid(orderID)
	}
	if err := s.orders.UpdateStatus(orderID, newStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	log.Info().Str("order_id", orderID).Str("status", string(newStatus)).Msg("order status updated")
	return s.getOrder(orderID)
}

// GetOrder returns an order with its items.
func (s *OrderService) GetOrder(orderID string) (*models.Order, error) {
	return s.getOrder(orderID)
}

// ListOrders returns a page of order summaries for the admin panel.
func (s *OrderService) ListOrders(f repository.OrderFilter) ([]repository.OrderSummary, int, error) {
	return s.orders.ListPaged(f)
}

// POSSale records a walk-in sale: the order is created and immediately
// marked paid, since payment happens at the counter. No admin notification
// is sent; the admin is the one ringing it up.
func (s *OrderService) POSSale(req *CreateOrderRequest) (*models.Order, error) {
	order, err := s.createOrder(req)
	if err != nil {
		return nil, err
	}
	return s.MarkPaid(order.ID)
}

func (s *OrderService) getOrder(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
