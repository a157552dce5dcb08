// ABOUTME: Authenticated return tool: initiate a return on an owned order
// ABOUTME: Enforces ownership and the placed -> returned transition

package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2389/commerce-gateway/internal/auth"
	"github.com/2389/commerce-gateway/internal/store"
	"github.com/2389/commerce-gateway/internal/tools"
)

type initiateReturnInput struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

func (h *handlers) InitiateReturn(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in initiateReturnInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.OrderID == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "order_id is required")
	}
	if in.Reason == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "reason is required")
	}

	order, err := h.store.GetOrder(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, tools.Errorf(tools.CodeNotFound, "order %q not found", in.OrderID)
		}
		return nil, fmt.Errorf("getting order: %w", err)
	}

	// Ownership invariant: only the order's customer may return it
	if order.CustomerID != id.CustomerID {
		return nil, tools.Errorf(tools.CodeForbidden, "order does not belong to this customer")
	}

	// A second return on the same order is an error, not a no-op
	if _, err := h.store.GetReturnByOrder(ctx, order.ID); err == nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "return already requested for this order")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing return: %w", err)
	}

	ret := &store.Return{
		ID:         newEntityID("ret"),
		OrderID:    order.ID,
		CustomerID: id.CustomerID,
		Reason:     in.Reason,
		Status:     store.ReturnStatusRequested,
		CreatedAt:  time.Now().UTC(),
	}

	// The return row goes in first: a crash between the two writes leaves
	// a visible pending return rather than a returned order with no return
	if err := h.store.PutReturn(ctx, ret); err != nil {
		return nil, fmt.Errorf("creating return: %w", err)
	}

	if err := h.store.UpdateOrderStatus(ctx, order.ID, store.OrderStatusReturned); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	return json.Marshal(map[string]any{
		"success":   true,
		"return_id": ret.ID,
		"order_id":  order.ID,
		"status":    ret.Status,
		"message":   "Return request submitted",
	})
}
