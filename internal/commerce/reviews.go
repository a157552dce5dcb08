// ABOUTME: Authenticated review tool: write a product review
// ABOUTME: Rating bounds are validated before any store access

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

type writeProductReviewInput struct {
	ProductID  string `json:"product_id"`
	Rating     *int   `json:"rating"`
	ReviewText string `json:"review_text"`
}

func (h *handlers) WriteProductReview(ctx context.Context, id *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in writeProductReviewInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.ProductID == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "product_id is required")
	}
	if in.Rating == nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "rating is required")
	}
	if *in.Rating < 1 || *in.Rating > 5 {
		return nil, tools.Errorf(tools.CodeInvalidInput, "rating must be between 1 and 5")
	}
	if in.ReviewText == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "review_text is required")
	}

	product, err := h.store.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, tools.Errorf(tools.CodeNotFound, "product %q not found", in.ProductID)
		}
		return nil, fmt.Errorf("getting product: %w", err)
	}

	review := &store.Review{
		ID:         newEntityID("rev"),
		ProductID:  product.ID,
		CustomerID: id.CustomerID,
		Rating:     *in.Rating,
		ReviewText: in.ReviewText,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.store.PutReview(ctx, review); err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	return json.Marshal(map[string]any{
		"success":      true,
		"review_id":    review.ID,
		"product_name": product.Name,
		"rating":       review.Rating,
		"message":      "Review submitted successfully",
	})
}
