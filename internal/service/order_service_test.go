package service

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// memProductStore is an in-memory ProductGetter.
type memProductStore struct {
	mu       sync.Mutex
	products map[int]*models.Product
}

func newMemProductStore(products ...*models.Product) *memProductStore {
	m := &memProductStore{products: make(map[int]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductStore) GetByID(id int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memProductStore) stock(id int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Stock
}

// memOrderStore is an in-memory OrderStore with the same claim semantics as
// the SQL implementation: the order row claim and the conditional stock
// decrements succeed or fail as one atomic unit.
type memOrderStore struct {
	mu       sync.Mutex
	orders   map[string]*models.Order
	items    map[string][]models.OrderItem
	products *memProductStore
}

func newMemOrderStore(products *memProductStore) *memOrderStore {
	return &memOrderStore{
		orders:   make(map[string]*models.Order),
		items:    make(map[string][]models.OrderItem),
		products: products,
	}
}

func (m *memOrderStore) Create(order *models.Order, items []models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.orders[order.ID] = &cp
	m.items[order.ID] = append([]models.OrderItem{}, items...)
	order.Items = items
	return nil
}

func (m *memOrderStore) GetByID(id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	cp.Items = append([]models.OrderItem{}, m.items[id]...)
	return &cp, nil
}

func (m *memOrderStore) ListPaged(f repository.OrderFilter) ([]repository.OrderSummary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.OrderSummary
	for id, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, repository.OrderSummary{Order: *o, ItemCount: len(m.items[id])})
	}
	return out, len(out), nil
}

func (m *memOrderStore) MarkPaid(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return false, sql.ErrNoRows
	}
	if o.Status != models.StatusPending || o.StockDecremented {
		return false, nil
	}

	m.products.mu.Lock()
	defer m.products.mu.Unlock()
	for _, item := range m.items[id] {
		p := m.products.products[item.ProductID]
		if p == nil || p.Stock < item.Quantity {
			// Whole claim rolls back.
			return false, fmt.Errorf("product %d: %w", item.ProductID, utils.ErrInsufficientStock)
		}
	}
	for _, item := range m.items[id] {
		m.products.products[item.ProductID].Stock -= item.Quantity
	}
	o.Status = models.StatusPaid
	o.Paid = true
	o.StockDecremented = true
	return true, nil
}

func (m *memOrderStore) UpdateStatus(id string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	return nil
}

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTestOrderService(products ...*models.Product) (*OrderService, *memOrderStore, *memProductStore) {
	ps := newMemProductStore(products...)
	os := newMemOrderStore(ps)
	return NewOrderService(os, ps, nil), os, ps
}

func TestCreateOrderTotalIsSnapshotSum(t *testing.T) {
	svc, _, _ := newTestOrderService(
		&models.Product{ID: 1, Title: "Kite", Price: money("10.00"), Stock: 10},
		&models.Product{ID: 2, Title: "Balloons", Price: money("5.50"), Stock: 10},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(money("25.50")), "total = %s", order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.Paid)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(money("10.00")))
	assert.True(t, order.Items[1].UnitPrice.Equal(money("5.50")))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 1},
	)

	_, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
	assert.Equal(t, 1, ps.stock(1), "stock must be untouched")
}

func TestCreateOrderEmpty(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.CreateOrder(&CreateOrderRequest{ClientName: "Ana", ClientPhone: "1"})
	assert.ErrorIs(t, err, utils.ErrEmptyOrder)
}

func TestMarkPaidDecrementsStockOnce(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 5},
		&models.Product{ID: 2, Price: money("5.50"), Stock: 3},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
	assert.True(t, paid.Paid)
	assert.Equal(t, 3, ps.stock(1))
	assert.Equal(t, 2, ps.stock(2))
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 5},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	first, err := svc.MarkPaid(order.ID)
	require.NoError(t, err)
	second, err := svc.MarkPaid(order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, first.Status)
	assert.Equal(t, models.StatusPaid, second.Status)
	assert.Equal(t, 3, ps.stock(1), "stock decremented exactly once")
}

func TestMarkPaidInsufficientStockLeavesOrderPending(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 2},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	// Someone else buys the stock out from under the pending order.
	ps.mu.Lock()
	ps.products[1].Stock = 1
	ps.mu.Unlock()

	_, err = svc.MarkPaid(order.ID)
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
	assert.Equal(t, 1, ps.stock(1), "failed decrement leaves stock unchanged")

	got, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestMarkPaidConcurrentSingleDecrement(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 1},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.MarkPaid(order.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, 0, ps.stock(1), "stock decremented exactly once, never negative")

	got, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
}

func TestUpdateStatusTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		wantErr error
	}{
		{name: "pending to cancelled", from: models.StatusPending, to: models.StatusCancelled},
		{name: "paid to delivered", from: models.StatusPaid, to: models.StatusDelivered},
		{name: "paid to cancelled", from: models.StatusPaid, to: models.StatusCancelled},
		{name: "same status is a no-op", from: models.StatusPending, to: models.StatusPending},
		{name: "delivered back to pending", from: models.StatusDelivered, to: models.StatusPending, wantErr: utils.ErrIllegalTransition},
		{name: "cancelled to paid", from: models.StatusCancelled, to: models.StatusPaid, wantErr: utils.ErrIllegalTransition},
		{name: "pending to delivered skips paid", from: models.StatusPending, to: models.StatusDelivered, wantErr: utils.ErrIllegalTransition},
		{name: "unknown status", from: models.StatusPending, to: "SHIPPED", wantErr: utils.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestOrderService(
				&models.Product{ID: 1, Price: money("10.00"), Stock: 5},
			)
			order, err := svc.CreateOrder(&CreateOrderRequest{
				ClientName:  "Ana",
				ClientPhone: "+56911111111",
				Items:       []OrderItemRequest{{ProductID: 1, Quantity: 1}},
			})
			require.NoError(t, err)

			store.mu.Lock()
			store.orders[order.ID].Status = tt.from
			if tt.from == models.StatusPaid || tt.from == models.StatusDelivered {
				store.orders[order.ID].Paid = true
				store.orders[order.ID].StockDecremented = true
			}
			store.mu.Unlock()

			got, err := svc.UpdateStatus(order.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				current, gerr := svc.GetOrder(order.ID)
				require.NoError(t, gerr)
				assert.Equal(t, tt.from, current.Status, "status unchanged after rejected transition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
		})
	}
}

func TestUpdateStatusToPaidRoutesThroughDecrement(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("10.00"), Stock: 4},
	)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		ClientName:  "Ana",
		ClientPhone: "+56911111111",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)

	got, err := svc.UpdateStatus(order.ID, models.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
	assert.Equal(t, 1, ps.stock(1), "status route must also decrement stock")
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _ := newTestOrderService()
	_, err := svc.UpdateStatus("missing", models.StatusCancelled)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestPOSSaleCreatesPaidOrder(t *testing.T) {
	svc, _, ps := newTestOrderService(
		&models.Product{ID: 1, Price: money("3.00"), Stock: 2},
	)

	order, err := svc.POSSale(&CreateOrderRequest{
		ClientName:  "Walk-in",
		ClientPhone: "-",
		Items:       []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, order.Status)
	assert.True(t, order.Total.Equal(money("6.00")))
	assert.Equal(t, 0, ps.stock(1))
}
