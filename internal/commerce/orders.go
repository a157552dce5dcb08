// ABOUTME: Authenticated order tools: placement and history
// ABOUTME: All data access is scoped to the caller's customer ID

package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/store"
	"github.com/2389/commerce-gateway/internal/tools"
)

const (
	defaultOrderLimit = 10
	deliveryEstimate  = 72 * time.Hour
)

// newEntityID builds a prefixed short identifier like "ord-1a2b3c4d5e".
func newEntityID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + hex[:10]
}

type orderProductInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *handlers) OrderProduct(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in orderProductInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.ProductID == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "product_id is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return nil, tools.Errorf(tools.CodeInvalidInput, "quantity must be at least 1")
	}

	product, err := h.store.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, tools.Errorf(tools.CodeNotFound, "product %q not found", in.ProductID)
		}
		return nil, fmt.Errorf("getting product: %w", err)
	}

	now := time.Now().UTC()
	order := &store.Order{
		ID:                newEntityID("ord"),
		CustomerID:        id.CustomerID,
		ProductID:         product.ID,
		Quantity:          in.Quantity,
		UnitPrice:         product.Price,
		TotalPrice:        product.Price * float64(in.Quantity),
		Status:            store.OrderStatusPlaced,
		EstimatedDelivery: now.Add(deliveryEstimate),
		CreatedAt:         now,
	}

	if err := h.store.PutOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return json.Marshal(map[string]any{
		"success":            true,
		"order_id":           order.ID,
		"customer_id":        order.CustomerID,
		"product_name":       product.Name,
		"quantity":           order.Quantity,
		"total_price":        order.TotalPrice,
		"status":             order.Status,
		"estimated_delivery": order.EstimatedDelivery.Format(time.RFC3339),
	})
}

type getOrderHistoryInput struct {
	Limit int `json:"limit"`
}

type orderResult struct {
	OrderID           string  `json:"order_id"`
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	ProductCategory   string  `json:"product_category"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	TotalPrice        float64 `json:"total_price"`
	Status            string  `json:"status"`
	EstimatedDelivery string  `json:"estimated_delivery"`
	CreatedAt         string  `json:"created_at"`
}

func (h *handlers) GetOrderHistory(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in getOrderHistoryInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.Limit <= 0 {
		in.Limit = defaultOrderLimit
	}

	// Scoped to the caller: orders for other customers are unreachable here
	orders, err := h.store.GetCustomerOrders(ctx, id.CustomerID, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("getting orders: %w", err)
	}

	results := make([]orderResult, len(orders))
	for i, o := range orders {
		result := orderResult{
			OrderID:           o.ID,
			ProductID:         o.ProductID,
			ProductName:       "Product Not Found",
			Quantity:          o.Quantity,
			UnitPrice:         o.UnitPrice,
			TotalPrice:        o.TotalPrice,
			Status:            o.Status,
			EstimatedDelivery: o.EstimatedDelivery.UTC().Format(time.RFC3339),
			CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339),
		}

		// Enrich with product details when the product still exists
		if product, err := h.store.GetProduct(ctx, o.ProductID); err == nil {
			result.ProductName = product.Name
			result.ProductCategory = product.Category
		}

		results[i] = result
	}

	return json.Marshal(map[string]any{
		"success":     true,
		"order_count": len(results),
		"orders":      results,
	})
}
