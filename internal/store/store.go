// ABOUTME: Store interface and data types for commerce-gateway persistence
// ABOUTME: Defines Product, Customer, Order, Review, Return and the Store interface

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the store is temporarily unable to serve
// a request (e.g. the database is locked by a concurrent writer). Callers
// may retry idempotent reads; writes must not be retried.
var ErrUnavailable = errors.New("store unavailable")

// Retryable reports whether err is a transient store failure that is safe
// to retry for idempotent operations.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Order status constants. The only transition is placed -> returned,
// driven by a successful return initiation.
const (
	OrderStatusPlaced   = "placed"
	OrderStatusReturned = "returned"
)

// ReturnStatusRequested is the initial (and only) status of a return request.
const ReturnStatusRequested = "requested"

// Product is a catalog entry. Immutable after creation.
type Product struct {
	ID          string
	Name        string
	Category    string
	Price       float64
	Description string
}

// Customer is a shopper account. The password hash is a bcrypt digest
// managed by the auth layer; the store only persists it.
type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	GivenName    string
	FamilyName   string
	CreatedAt    time.Time
}

// Order records a single product purchase by a customer.
// Owned by exactly one customer, established at creation.
type Order struct {
	ID                string
	CustomerID        string
	ProductID         string
	Quantity          int
	UnitPrice         float64
	TotalPrice        float64
	Status            string // "placed" or "returned"
	EstimatedDelivery time.Time
	CreatedAt         time.Time
}

// Review is a customer's rating of a product. Immutable after creation.
type Review struct {
	ID         string
	ProductID  string
	CustomerID string
	Rating     int // 1..5
	ReviewText string
	CreatedAt  time.Time
}

// Return is a return request referencing exactly one order.
type Return struct {
	ID         string
	OrderID    string
	CustomerID string
	Reason     string
	Status     string
	CreatedAt  time.Time
}

// ProductFilter narrows SearchProducts results. Zero values mean "no filter".
type ProductFilter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// Store defines the interface for commerce entity persistence.
// Each entity supports get-by-id, query-by-secondary-key, and put.
// No method spans more than one entity table.
type Store interface {
	// Products
	PutProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	SearchProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)
	CountProducts(ctx context.Context) (int, error)

	// Customers
	PutCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*Customer, error)

	// Orders
	PutOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id string) (*Order, error)
	GetCustomerOrders(ctx context.Context, customerID string, limit int) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error

	// Reviews
	PutReview(ctx context.Context, r *Review) error
	GetProductReviews(ctx context.Context, productID string, limit int) ([]*Review, error)

	// Returns
	PutReturn(ctx context.Context, r *Return) error
	GetReturnByOrder(ctx context.Context, orderID string) (*Return, error)

	Close() error
}
