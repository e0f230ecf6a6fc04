package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/utils"
)

// OrderRepository handles data access for orders and their line items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderFilter narrows ListPaged results. Empty fields are ignored.
type OrderFilter struct {
	Status models.OrderStatus
	Search string
	Page   int
	Limit  int
}

// OrderSummary is an order row with its line count, used by admin listings
// and the spreadsheet export.
type OrderSummary struct {
	models.Order
	ItemCount int `db:"item_count"`
}

// Create persists an order together with its items in a single transaction.
// Either everything is written or nothing is.
func (r *OrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowx(`
        INSERT INTO orders (id, client_name, client_phone, status, paid, total)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`,
		order.ID, order.ClientName, order.ClientPhone, order.Status, order.Paid, order.Total,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowx(`
            INSERT INTO order_items (order_id, product_id, quantity, unit_price)
            VALUES ($1, $2, $3, $4) RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.Items = items
	return nil
}

// GetByID returns an order with its items (product titles joined).
func (r *OrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Get(&order, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&order.Items, `
        SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price,
               p.title AS product_title
        FROM order_items i
        JOIN products p ON p.id = i.product_id
        WHERE i.order_id = $1
        ORDER BY i.id`, id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListPaged returns a page of order summaries plus the total count.
func (r *OrderRepository) ListPaged(f OrderFilter) ([]OrderSummary, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	const baseWhere = `FROM orders o
        WHERE ($1 = '' OR o.status = $1)
        AND ($2 = '' OR o.client_name ILIKE '%' || $2 || '%' OR o.client_phone ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) `+baseWhere, string(f.Status), f.Search); err != nil {
		return nil, 0, err
	}

	var orders []OrderSummary
	err := r.db.Select(&orders, `
        SELECT o.*, (SELECT COUNT(1) FROM order_items i WHERE i.order_id = o.id) AS item_count
        `+baseWhere+`
        ORDER BY o.created_at DESC LIMIT $3 OFFSET $4`,
		string(f.Status), f.Search, f.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// MarkPaid transitions a PENDING order to PAID and decrements stock for each
// line exactly once, all inside one transaction. The order row claim
// (status = PENDING AND stock_decremented = false) guarantees that under
// concurrent calls only one caller performs the decrement; losers see
// claimed = false and re-read the order. Each stock decrement is conditional
// on stock >= quantity; any failed guard rolls the whole transaction back
// with ErrInsufficientStock, leaving stock and the order untouched.
func (r *OrderRepository) MarkPaid(id string) (claimed bool, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
        UPDATE orders
        SET status = $1, paid = true, stock_decremented = true, updated_at = NOW()
        WHERE id = $2 AND status = $3 AND stock_decremented = false`,
		models.StatusPaid, id, models.StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Already claimed (concurrent call or replay) or not PENDING.
		return false, nil
	}

	var items []models.OrderItem
	if err := tx.Select(&items,
		`SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = $1`,
		id); err != nil {
		return false, err
	}

	for _, item := range items {
		res, err := tx.Exec(`
            UPDATE products SET stock = stock - $1, updated_at = NOW()
            WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, fmt.Errorf("product %d: %w", item.ProductID, utils.ErrInsufficientStock)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStatus writes a new status. Transition legality is enforced by the
// service layer before this is called; transitions into PAID must go through
// MarkPaid instead so the stock decrement guard is never bypassed.
func (r *OrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res, err := r.db.Exec(
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
