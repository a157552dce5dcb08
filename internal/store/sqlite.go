// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides commerce entity persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS products (
			product_id  TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			price       REAL NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

		CREATE TABLE IF NOT EXISTS customers (
			customer_id   TEXT PRIMARY KEY,
			email         TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			given_name    TEXT NOT NULL DEFAULT '',
			family_name   TEXT NOT NULL DEFAULT '',
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email);

		CREATE TABLE IF NOT EXISTS orders (
			order_id           TEXT PRIMARY KEY,
			customer_id        TEXT NOT NULL,
			product_id         TEXT NOT NULL,
			quantity           INTEGER NOT NULL,
			unit_price         REAL NOT NULL,
			total_price        REAL NOT NULL,
			status             TEXT NOT NULL,
			estimated_delivery TEXT NOT NULL,
			created_at         TEXT NOT NULL,

			CHECK (status IN ('placed', 'returned')),
			CHECK (quantity > 0)
		);

		CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS reviews (
			review_id   TEXT PRIMARY KEY,
			product_id  TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			rating      INTEGER NOT NULL,
			review_text TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,

			CHECK (rating BETWEEN 1 AND 5)
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS returns (
			return_id   TEXT PRIMARY KEY,
			order_id    TEXT UNIQUE NOT NULL,
			customer_id TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_returns_order ON returns(order_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// classify maps driver-level failures onto the store error taxonomy.
// Busy/locked errors are transient and become ErrUnavailable; everything
// else is wrapped with the given operation name.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	errStr := err.Error()
	if strings.Contains(errStr, "database is locked") || strings.Contains(errStr, "SQLITE_BUSY") {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- Products ---

// PutProduct inserts or replaces a product
func (s *SQLiteStore) PutProduct(ctx context.Context, p *Product) error {
	query := `
		INSERT OR REPLACE INTO products (product_id, name, category, price, description)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, p.ID, p.Name, p.Category, p.Price, p.Description)
	if err != nil {
		return classify("inserting product", err)
	}

	return nil
}

// GetProduct returns the product with the given ID, or ErrNotFound
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT product_id, name, category, price, description
		FROM products
		WHERE product_id = ?
	`

	var p Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.Description,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("querying product", err)
	}

	return &p, nil
}

// SearchProducts returns products matching the filter. Category and price
// bounds narrow the SQL query; the free-text query is matched in Go against
// name and description, case-insensitively and with plural/singular variants.
func (s *SQLiteStore) SearchProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	query := `SELECT product_id, name, category, price, description FROM products`

	var conds []string
	var args []any

	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY product_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("searching products", err)
	}
	defer rows.Close()

	var variants []string
	if filter.Query != "" {
		variants = searchVariants(filter.Query)
	}

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		if len(variants) > 0 && !matchesAny(&p, variants) {
			continue
		}

		products = append(products, &p)
		if filter.Limit > 0 && len(products) >= filter.Limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, classify("iterating products", err)
	}

	return products, nil
}

// CountProducts returns the number of products in the catalog
func (s *SQLiteStore) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, classify("counting products", err)
	}
	return count, nil
}

// searchVariants generates lowercase search terms covering common plural
// and singular forms of the query (laptops -> laptop, battery -> batteries).
func searchVariants(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	seen := map[string]struct{}{query: {}}

	if strings.HasSuffix(query, "ies") {
		seen[query[:len(query)-3]+"y"] = struct{}{}
	}
	if strings.HasSuffix(query, "es") {
		seen[query[:len(query)-2]] = struct{}{}
	}
	if strings.HasSuffix(query, "s") && len(query) > 2 {
		seen[query[:len(query)-1]] = struct{}{}
	}
	if !strings.HasSuffix(query, "s") {
		seen[query+"s"] = struct{}{}
	}
	if strings.HasSuffix(query, "y") {
		seen[query[:len(query)-1]+"ies"] = struct{}{}
	}

	variants := make([]string, 0, len(seen))
	for v := range seen {
		variants = append(variants, v)
	}
	return variants
}

// matchesAny reports whether any variant appears in the product's name or description.
func matchesAny(p *Product, variants []string) bool {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, v := range variants {
		if strings.Contains(name, v) || strings.Contains(desc, v) {
			return true
		}
	}
	return false
}

// --- Customers ---

// PutCustomer inserts or replaces a customer
func (s *SQLiteStore) PutCustomer(ctx context.Context, c *Customer) error {
	query := `
		INSERT OR REPLACE INTO customers (customer_id, email, password_hash, given_name, family_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Email,
		c.PasswordHash,
		c.GivenName,
		c.FamilyName,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return classify("inserting customer", err)
	}

	return nil
}

// GetCustomer returns the customer with the given ID, or ErrNotFound
func (s *SQLiteStore) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	query := `
		SELECT customer_id, email, password_hash, given_name, family_name, created_at
		FROM customers
		WHERE customer_id = ?
	`
	return s.scanCustomer(s.db.QueryRowContext(ctx, query, id))
}

// GetCustomerByEmail returns the customer with the given email, or ErrNotFound
func (s *SQLiteStore) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `
		SELECT customer_id, email, password_hash, given_name, family_name, created_at
		FROM customers
		WHERE email = ?
	`
	return s.scanCustomer(s.db.QueryRowContext(ctx, query, email))
}

func (s *SQLiteStore) scanCustomer(row *sql.Row) (*Customer, error) {
	var c Customer
	var createdAtStr string

	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.GivenName,
		&c.FamilyName,
		&createdAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("querying customer", err)
	}

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &c, nil
}

// --- Orders ---

// PutOrder inserts a new order
func (s *SQLiteStore) PutOrder(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (order_id, customer_id, product_id, quantity, unit_price, total_price, status, estimated_delivery, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		o.ID,
		o.CustomerID,
		o.ProductID,
		o.Quantity,
		o.UnitPrice,
		o.TotalPrice,
		o.Status,
		o.EstimatedDelivery.UTC().Format(time.RFC3339),
		o.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return classify("inserting order", err)
	}

	s.logger.Debug("created order", "id", o.ID, "customer", o.CustomerID)
	return nil
}

// GetOrder returns the order with the given ID, or ErrNotFound
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT order_id, customer_id, product_id, quantity, unit_price, total_price, status, estimated_delivery, created_at
		FROM orders
		WHERE order_id = ?
	`

	var o Order
	var deliveryStr, createdAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID,
		&o.CustomerID,
		&o.ProductID,
		&o.Quantity,
		&o.UnitPrice,
		&o.TotalPrice,
		&o.Status,
		&deliveryStr,
		&createdAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("querying order", err)
	}

	o.EstimatedDelivery, err = time.Parse(time.RFC3339, deliveryStr)
	if err != nil {
		return nil, fmt.Errorf("parsing estimated_delivery: %w", err)
	}

	o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &o, nil
}

// GetCustomerOrders returns a customer's orders, most recent first
func (s *SQLiteStore) GetCustomerOrders(ctx context.Context, customerID string, limit int) ([]*Order, error) {
	query := `
		SELECT order_id, customer_id, product_id, quantity, unit_price, total_price, status, estimated_delivery, created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, query, customerID, limit)
	if err != nil {
		return nil, classify("querying customer orders", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		var deliveryStr, createdAtStr string

		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.ProductID,
			&o.Quantity,
			&o.UnitPrice,
			&o.TotalPrice,
			&o.Status,
			&deliveryStr,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		o.EstimatedDelivery, err = time.Parse(time.RFC3339, deliveryStr)
		if err != nil {
			return nil, fmt.Errorf("parsing estimated_delivery: %w", err)
		}
		o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("iterating orders", err)
	}

	return orders, nil
}

// UpdateOrderStatus sets the status of an existing order.
// Returns ErrNotFound if no such order exists.
func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE order_id = ?`,
		status, orderID,
	)
	if err != nil {
		return classify("updating order status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated order status", "id", orderID, "status", status)
	return nil
}

// --- Reviews ---

// PutReview inserts a new review
func (s *SQLiteStore) PutReview(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO reviews (review_id, product_id, customer_id, rating, review_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.ProductID,
		r.CustomerID,
		r.Rating,
		r.ReviewText,
		r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return classify("inserting review", err)
	}

	s.logger.Debug("created review", "id", r.ID, "product", r.ProductID)
	return nil
}

// GetProductReviews returns reviews for a product, most recent first
func (s *SQLiteStore) GetProductReviews(ctx context.Context, productID string, limit int) ([]*Review, error) {
	query := `
		SELECT review_id, product_id, customer_id, rating, review_text, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, classify("querying reviews", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var r Review
		var createdAtStr string

		if err := rows.Scan(
			&r.ID,
			&r.ProductID,
			&r.CustomerID,
			&r.Rating,
			&r.ReviewText,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}

		r.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		reviews = append(reviews, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("iterating reviews", err)
	}

	return reviews, nil
}

// --- Returns ---

// PutReturn inserts a new return request
func (s *SQLiteStore) PutReturn(ctx context.Context, r *Return) error {
	query := `
		INSERT INTO returns (return_id, order_id, customer_id, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.OrderID,
		r.CustomerID,
		r.Reason,
		r.Status,
		r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return classify("inserting return", err)
	}

	s.logger.Debug("created return", "id", r.ID, "order", r.OrderID)
	return nil
}

// GetReturnByOrder returns the return request for an order, or ErrNotFound
func (s *SQLiteStore) GetReturnByOrder(ctx context.Context, orderID string) (*Return, error) {
	query := `
		SELECT return_id, order_id, customer_id, reason, status, created_at
		FROM returns
		WHERE order_id = ?
	`

	var r Return
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&r.ID,
		&r.OrderID,
		&r.CustomerID,
		&r.Reason,
		&r.Status,
		&createdAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("querying return", err)
	}

	r.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &r, nil
}
