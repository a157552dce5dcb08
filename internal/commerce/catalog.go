// ABOUTME: Public catalog tools: product search and review reading
// ABOUTME: No caller identity required for either tool

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

const defaultReviewLimit = 5

type searchProductsInput struct {
	Query    string   `json:"query"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Limit    int      `json:"limit"`
}

type productResult struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (h *handlers) SearchProducts(ctx context.Context, _ *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in searchProductsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.Limit < 0 {
		return nil, tools.Errorf(tools.CodeInvalidInput, "limit must not be negative")
	}
	// An absent limit means the whole catalog: a filterless search must
	// return every product.
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return nil, tools.Errorf(tools.CodeInvalidInput, "min_price must not exceed max_price")
	}

	products, err := h.store.SearchProducts(ctx, store.ProductFilter{
		Query:    in.Query,
		Category: in.Category,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}

	results := make([]productResult, len(products))
	for i, p := range products {
		results[i] = productResult{
			ProductID:   p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
		}
	}

	return json.Marshal(map[string]any{
		"success":  true,
		"count":    len(results),
		"products": results,
	})
}

type getProductReviewsInput struct {
	ProductID string `json:"product_id"`
	Limit     int    `json:"limit"`
}

type reviewResult struct {
	ReviewID   string `json:"review_id"`
	CustomerID string `json:"customer_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}

func (h *handlers) GetProductReviews(ctx context.Context, _ *auth.Identity, input json.RawMessage) (json.RawMessage, error) {
	var in getProductReviewsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, tools.Errorf(tools.CodeInvalidInput, "invalid input: %v", err)
	}
	if in.ProductID == "" {
		return nil, tools.Errorf(tools.CodeInvalidInput, "product_id is required")
	}
	if in.Limit <= 0 {
		in.Limit = defaultReviewLimit
	}

	product, err := h.store.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, tools.Errorf(tools.CodeNotFound, "product %q not found", in.ProductID)
		}
		return nil, fmt.Errorf("getting product: %w", err)
	}

	reviews, err := h.store.GetProductReviews(ctx, in.ProductID, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("getting reviews: %w", err)
	}

	results := make([]reviewResult, len(reviews))
	for i, r := range reviews {
		results[i] = reviewResult{
			ReviewID:   r.ID,
			CustomerID: r.CustomerID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return json.Marshal(map[string]any{
		"success":      true,
		"product_name": product.Name,
		"review_count": len(results),
		"reviews":      results,
	})
}
