package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golden-elegance/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ErrDuplicateOrderNumber is returned by Create when the order number is
// already taken.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

// OrderRepository persists placed orders. ListByUser returns the newest
// orders first together with the user's total order count.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByUser(ctx context.Context, email string, limit, offset int) ([]models.Order, int, error)
}

type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]models.Order
	nextID int64
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.OrderNumber]; ok {
		return ErrDuplicateOrderNumber
	}
	r.nextID++
	order.ID = r.nextID
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
	}
	r.orders[order.OrderNumber] = cloneOrder(*order)
	return nil
}

func (r *MemoryOrderRepository) ByNumber(_ context.Context, number string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[number]
	if !ok {
		return nil, nil
	}
	out := cloneOrder(order)
	return &out, nil
}

func (r *MemoryOrderRepository) ListByUser(_ context.Context, email string, limit, offset int) ([]models.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mine := []models.Order{}
	for _, o := range r.orders {
		if o.UserEmail == email {
			mine = append(mine, cloneOrder(o))
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	return page(mine, limit, offset), len(mine), nil
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

func page(orders []models.Order, limit, offset int) []models.Order {
	if offset >= len(orders) {
		return []models.Order{}
	}
	end := len(orders)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return orders[offset:end]
}

// RedisOrderRepository stores each order as JSON under order:<number> and
// keeps a newest-first list of order numbers per user.
type RedisOrderRepository struct {
	client *redis.Client
}

func NewRedisOrderRepository(client *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{client: client}
}

func orderKey(number string) string {
	return "order:" + number
}

func userOrdersKey(email string) string {
	return "orders:user:" + email
}

func (r *RedisOrderRepository) Create(ctx context.Context, order *models.Order) error {
	id, err := r.client.Incr(ctx, "order_seq").Result()
	if err != nil {
		return fmt.Errorf("redis incr order seq: %w", err)
	}
	order.ID = id
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
	}

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	ok, err := r.client.SetNX(ctx, orderKey(order.OrderNumber), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis set order: %w", err)
	}
	if !ok {
		return ErrDuplicateOrderNumber
	}
	if err := r.client.LPush(ctx, userOrdersKey(order.UserEmail), order.OrderNumber).Err(); err != nil {
		return fmt.Errorf("redis index order: %w", err)
	}
	return nil
}

func (r *RedisOrderRepository) ByNumber(ctx context.Context, number string) (*models.Order, error) {
	data, err := r.client.Get(ctx, orderKey(number)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get order: %w", err)
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}

func (r *RedisOrderRepository) ListByUser(ctx context.Context, email string, limit, offset int) ([]models.Order, int, error) {
	key := userOrdersKey(email)
	total, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis count orders: %w", err)
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}
	numbers, err := r.client.LRange(ctx, key, int64(offset), stop).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis list orders: %w", err)
	}

	orders := make([]models.Order, 0, len(numbers))
	for _, number := range numbers {
		order, err := r.ByNumber(ctx, number)
		if err != nil {
			return nil, 0, err
		}
		if order != nil {
			orders = append(orders, *order)
		}
	}
	return orders, int(total), nil
}

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Create writes the order, its items and its payment in one transaction.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	a := order.Address
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_email, status, subtotal, shipping, total,
		                    full_name, phone, email, address_line, city, state, pincode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		order.OrderNumber, order.UserEmail, order.Status, order.Subtotal, order.Shipping, order.Total,
		a.FullName, a.Phone, a.Email, a.AddressLine, a.City, a.State, a.Pincode, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, variant_snapshot, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			order.ID, item.ProductID, item.ProductName, item.VariantSnapshot, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO payments (order_id, method, status, amount) VALUES ($1, $2, $3, $4)`,
		order.ID, order.Payment.Method, order.Payment.Status, order.Payment.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return tx.Commit(ctx)
}

const orderColumns = `
	o.id, o.order_number, o.user_email, o.status, o.subtotal, o.shipping, o.total,
	o.full_name, o.phone, o.email, o.address_line, o.city, o.state, o.pincode, o.created_at,
	COALESCE(p.method, ''), COALESCE(p.status, ''), COALESCE(p.amount, 0)`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	a := &o.Address
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserEmail, &o.Status, &o.Subtotal, &o.Shipping, &o.Total,
		&a.FullName, &a.Phone, &a.Email, &a.AddressLine, &a.City, &a.State, &a.Pincode, &o.CreatedAt,
		&o.Payment.Method, &o.Payment.Status, &o.Payment.Amount,
	)
	return o, err
}

func (r *PostgresOrderRepository) ByNumber(ctx context.Context, number string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + `
	          FROM orders o LEFT JOIN payments p ON p.order_id = o.id
	          WHERE o.order_number = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.Items, err = r.items(ctx, order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresOrderRepository) ListByUser(ctx context.Context, email string, limit, offset int) ([]models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_email = $1`, email).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + `
	          FROM orders o LEFT JOIN payments p ON p.order_id = o.id
	          WHERE o.user_email = $1
	          ORDER BY o.created_at DESC, o.id DESC
	          LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = total
	}
	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	rows.Close()

	for i := range orders {
		if orders[i].Items, err = r.items(ctx, orders[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PostgresOrderRepository) items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, product_name, variant_snapshot, unit_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.VariantSnapshot, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
