// ABOUTME: Tests for the e-commerce tool handlers.
// ABOUTME: Uses real SQLite store for integration testing.

package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/store"
	"github.com/2389/commerce-gateway/internal/tools"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedCatalog(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	products := []*store.Product{
		{ID: "prod-001", Name: "Acme Laptop Pro", Category: "Electronics", Price: 1299.99, Description: "A fast laptop"},
		{ID: "prod-002", Name: "Gaming Laptop X", Category: "Electronics", Price: 1899.00, Description: "For serious gamers"},
		{ID: "prod-003", Name: "Desk Chair", Category: "Furniture", Price: 149.00, Description: "Comfortable office chair"},
	}
	for _, p := range products {
		require.NoError(t, s.PutProduct(ctx, p))
	}
}

func findHandler(t *testing.T, name string) (tools.Handler, store.Store) {
	t.Helper()
	s := newTestStore(t)
	seedCatalog(t, s)
	for _, def := range Tools(s) {
		if def.Name == name {
			return def.Handler, s
		}
	}
	t.Fatalf("%s handler not found", name)
	return nil, nil
}

func callerIdentity() *auth.Identity {
	return &auth.Identity{CustomerID: "cust-001", Email: "demo1@example.com"}
}

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func toolCode(t *testing.T, err error) tools.Code {
	t.Helper()
	var te *tools.Error
	require.True(t, errors.As(err, &te), "expected *tools.Error, got %v", err)
	return te.Code
}

func TestSearchProducts_NoFilters(t *testing.T) {
	handler, _ := findHandler(t, "search_products")

	result, err := handler(context.Background(), nil, json.RawMessage(`{}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 3, resp["count"])
}

func TestSearchProducts_NoLimitReturnsWholeCatalog(t *testing.T) {
	handler, s := findHandler(t, "search_products")
	ctx := context.Background()

	// Grow the catalog past any default page size
	for i := 0; i < 12; i++ {
		require.NoError(t, s.PutProduct(ctx, &store.Product{
			ID:       fmt.Sprintf("prod-bulk-%03d", i),
			Name:     fmt.Sprintf("Bulk Item %d", i),
			Category: "Home",
			Price:    9.99,
		}))
	}

	result, err := handler(ctx, nil, json.RawMessage(`{}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.EqualValues(t, 15, resp["count"])
	assert.Len(t, resp["products"].([]any), 15)

	// An explicit limit still caps the results
	result, err = handler(ctx, nil, json.RawMessage(`{"limit":4}`))
	require.NoError(t, err)
	assert.EqualValues(t, 4, decode(t, result)["count"])
}

func TestSearchProducts_MaxPrice(t *testing.T) {
	handler, _ := findHandler(t, "search_products")

	result, err := handler(context.Background(), nil, json.RawMessage(`{"query":"laptop","max_price":1500}`))
	require.NoError(t, err)

	resp := decode(t, result)
	products := resp["products"].([]any)
	require.Len(t, products, 1)
	for _, p := range products {
		price := p.(map[string]any)["price"].(float64)
		assert.LessOrEqual(t, price, 1500.0)
	}
}

func TestSearchProducts_InvalidBounds(t *testing.T) {
	handler, _ := findHandler(t, "search_products")

	_, err := handler(context.Background(), nil, json.RawMessage(`{"min_price":100,"max_price":50}`))
	assert.Equal(t, tools.CodeInvalidInput, toolCode(t, err))
}

func TestGetProductReviews(t *testing.T) {
	handler, s := findHandler(t, "get_product_reviews")
	ctx := context.Background()

	require.NoError(t, s.PutReview(ctx, &store.Review{
		ID: "rev-001", ProductID: "prod-001", CustomerID: "cust-002",
		Rating: 5, ReviewText: "Great laptop", CreatedAt: time.Now().UTC(),
	}))

	result, err := handler(ctx, nil, json.RawMessage(`{"product_id":"prod-001"}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.Equal(t, "Acme Laptop Pro", resp["product_name"])
	assert.EqualValues(t, 1, resp["review_count"])
}

func TestGetProductReviews_UnknownProduct(t *testing.T) {
	handler, _ := findHandler(t, "get_product_reviews")

	_, err := handler(context.Background(), nil, json.RawMessage(`{"product_id":"prod-999"}`))
	assert.Equal(t, tools.CodeNotFound, toolCode(t, err))
}

func TestOrderProduct(t *testing.T) {
	handler, s := findHandler(t, "order_product")
	ctx := context.Background()

	result, err := handler(ctx, callerIdentity(), json.RawMessage(`{"product_id":"prod-001","quantity":2}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.Equal(t, "placed", resp["status"])
	assert.Equal(t, "cust-001", resp["customer_id"])
	assert.InDelta(t, 2599.98, resp["total_price"].(float64), 0.001)

	// The order is persisted and owned by the caller
	orderID := resp["order_id"].(string)
	order, err := s.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "cust-001", order.CustomerID)
	assert.Equal(t, store.OrderStatusPlaced, order.Status)
}

func TestOrderProduct_DefaultQuantity(t *testing.T) {
	handler, _ := findHandler(t, "order_product")

	result, err := handler(context.Background(), callerIdentity(), json.RawMessage(`{"product_id":"prod-003"}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.EqualValues(t, 1, resp["quantity"])
	assert.InDelta(t, 149.00, resp["total_price"].(float64), 0.001)
}

func TestOrderProduct_UnknownProduct(t *testing.T) {
	handler, _ := findHandler(t, "order_product")

	_, err := handler(context.Background(), callerIdentity(), json.RawMessage(`{"product_id":"prod-999"}`))
	assert.Equal(t, tools.CodeNotFound, toolCode(t, err))
}

func TestOrderProduct_NegativeQuantity(t *testing.T) {
	handler, _ := findHandler(t, "order_product")

	_, err := handler(context.Background(), callerIdentity(), json.RawMessage(`{"product_id":"prod-001","quantity":-2}`))
	assert.Equal(t, tools.CodeInvalidInput, toolCode(t, err))
}

func TestWriteProductReview(t *testing.T) {
	handler, s := findHandler(t, "write_product_review")
	ctx := context.Background()

	result, err := handler(ctx, callerIdentity(), json.RawMessage(`{"product_id":"prod-001","rating":4,"review_text":"Solid machine"}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 4, resp["rating"])

	reviews, err := s.GetProductReviews(ctx, "prod-001", 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "cust-001", reviews[0].CustomerID)
}

func TestWriteProductReview_RatingBounds(t *testing.T) {
	handler, _ := findHandler(t, "write_product_review")

	for _, rating := range []int{0, 6, -1} {
		input, _ := json.Marshal(map[string]any{
			"product_id": "prod-001", "rating": rating, "review_text": "x",
		})
		_, err := handler(context.Background(), callerIdentity(), input)
		assert.Equal(t, tools.CodeInvalidInput, toolCode(t, err), "rating %d", rating)
	}
}

func TestWriteProductReview_MissingRating(t *testing.T) {
	handler, _ := findHandler(t, "write_product_review")

	_, err := handler(context.Background(), callerIdentity(), json.RawMessage(`{"product_id":"prod-001","review_text":"x"}`))
	assert.Equal(t, tools.CodeInvalidInput, toolCode(t, err))
}

func TestGetOrderHistory_ScopedToCaller(t *testing.T) {
	handler, s := findHandler(t, "get_order_history")
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.PutOrder(ctx, &store.Order{
		ID: "ord-mine", CustomerID: "cust-001", ProductID: "prod-001",
		Quantity: 1, UnitPrice: 1299.99, TotalPrice: 1299.99,
		Status: store.OrderStatusPlaced, EstimatedDelivery: now, CreatedAt: now,
	}))
	require.NoError(t, s.PutOrder(ctx, &store.Order{
		ID: "ord-theirs", CustomerID: "cust-002", ProductID: "prod-002",
		Quantity: 1, UnitPrice: 1899.00, TotalPrice: 1899.00,
		Status: store.OrderStatusPlaced, EstimatedDelivery: now, CreatedAt: now,
	}))

	result, err := handler(ctx, callerIdentity(), json.RawMessage(`{}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.EqualValues(t, 1, resp["order_count"])

	orders := resp["orders"].([]any)
	require.Len(t, orders, 1)
	entry := orders[0].(map[string]any)
	assert.Equal(t, "ord-mine", entry["order_id"])
	assert.Equal(t, "Acme Laptop Pro", entry["product_name"])
	assert.Equal(t, "Electronics", entry["product_category"])
}

func TestInitiateReturn(t *testing.T) {
	handler, s := findHandler(t, "initiate_return")
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.PutOrder(ctx, &store.Order{
		ID: "ord-001", CustomerID: "cust-001", ProductID: "prod-001",
		Quantity: 1, UnitPrice: 1299.99, TotalPrice: 1299.99,
		Status: store.OrderStatusPlaced, EstimatedDelivery: now, CreatedAt: now,
	}))

	result, err := handler(ctx, callerIdentity(), json.RawMessage(`{"order_id":"ord-001","reason":"defective"}`))
	require.NoError(t, err)

	resp := decode(t, result)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "requested", resp["status"])

	// The order transitioned to returned
	order, err := s.GetOrder(ctx, "ord-001")
	require.NoError(t, err)
	assert.Equal(t, store.OrderStatusReturned, order.Status)

	// And the return row is owned by the caller
	ret, err := s.GetReturnByOrder(ctx, "ord-001")
	require.NoError(t, err)
	assert.Equal(t, "cust-001", ret.CustomerID)
}

func TestInitiateReturn_CrossCustomer(t *testing.T) {
	handler, s := findHandler(t, "initiate_return")
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.PutOrder(ctx, &store.Order{
		ID: "ord-theirs", CustomerID: "cust-002", ProductID: "prod-001",
		Quantity: 1, UnitPrice: 1299.99, TotalPrice: 1299.99,
		Status: store.OrderStatusPlaced, EstimatedDelivery: now, CreatedAt: now,
	}))

	_, err := handler(ctx, callerIdentity(), json.RawMessage(`{"order_id":"ord-theirs","reason":"not mine"}`))
	assert.Equal(t, tools.CodeForbidden, toolCode(t, err))

	// The order is untouched
	order, err := s.GetOrder(ctx, "ord-theirs")
	require.NoError(t, err)
	assert.Equal(t, store.OrderStatusPlaced, order.Status)
}

func TestInitiateReturn_DoubleReturn(t *testing.T) {
	handler, s := findHandler(t, "initiate_return")
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.PutOrder(ctx, &store.Order{
		ID: "ord-001", CustomerID: "cust-001", ProductID: "prod-001",
		Quantity: 1, UnitPrice: 1299.99, TotalPrice: 1299.99,
		Status: store.OrderStatusPlaced, EstimatedDelivery: now, CreatedAt: now,
	}))

	_, err := handler(ctx, callerIdentity(), json.RawMessage(`{"order_id":"ord-001","reason":"defective"}`))
	require.NoError(t, err)

	// A second return on the same order is an error, not a no-op
	_, err = handler(ctx, callerIdentity(), json.RawMessage(`{"order_id":"ord-001","reason":"still defective"}`))
	assert.Equal(t, tools.CodeInvalidInput, toolCode(t, err))
}

func TestInitiateReturn_UnknownOrder(t *testing.T) {
	handler, _ := findHandler(t, "initiate_return")

	_, err := handler(context.Background(), callerIdentity(), json.RawMessage(`{"order_id":"ord-999","reason":"x"}`))
	assert.Equal(t, tools.CodeNotFound, toolCode(t, err))
}
