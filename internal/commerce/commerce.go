// ABOUTME: E-commerce tool definitions for the gateway
// ABOUTME: Declares the six tools with schemas, access markers, and handlers

package commerce

import (
	"github.com/2389/commerce-gateway/internal/store"
	"github.com/2389/commerce-gateway/internal/tools"
)

// Tools builds the tool definitions backed by the given store.
// Two tools are public; the other four require a customer identity.
func Tools(s store.Store) []*tools.Definition {
	h := &handlers{store: s}
	return []*tools.Definition{
		{
			Name:        "search_products",
			Description: "Search for products in the e-commerce catalog. Supports keyword, category, and price filters.",
			InputSchema: `{"type":"object","properties":{"query":{"type":"string","description":"Search keywords"},"category":{"type":"string","description":"Filter by category"},"min_price":{"type":"number","description":"Minimum price in dollars"},"max_price":{"type":"number","description":"Maximum price in dollars"},"limit":{"type":"integer","description":"Maximum number of results"}}}`,
			Access:      tools.AccessPublic,
			ReadOnly:    true,
			Handler:     h.SearchProducts,
		},
		{
			Name:        "get_product_reviews",
			Description: "Get customer reviews for a specific product.",
			InputSchema: `{"type":"object","properties":{"product_id":{"type":"string"},"limit":{"type":"integer","description":"Maximum number of reviews"}},"required":["product_id"]}`,
			Access:      tools.AccessPublic,
			ReadOnly:    true,
			Handler:     h.GetProductReviews,
		},
		{
			Name:        "order_product",
			Description: "Place an order for a product.",
			InputSchema: `{"type":"object","properties":{"product_id":{"type":"string"},"quantity":{"type":"integer","description":"Number of items to order"}},"required":["product_id"]}`,
			Access:      tools.AccessCustomer,
			Handler:     h.OrderProduct,
		},
		{
			Name:        "write_product_review",
			Description: "Write a review for a product with a star rating from 1 to 5.",
			InputSchema: `{"type":"object","properties":{"product_id":{"type":"string"},"rating":{"type":"integer","minimum":1,"maximum":5},"review_text":{"type":"string"}},"required":["product_id","rating","review_text"]}`,
			Access:      tools.AccessCustomer,
			Handler:     h.WriteProductReview,
		},
		{
			Name:        "get_order_history",
			Description: "Get order history for the authenticated customer.",
			InputSchema: `{"type":"object","properties":{"limit":{"type":"integer","description":"Maximum number of orders"}}}`,
			Access:      tools.AccessCustomer,
			ReadOnly:    true,
			Handler:     h.GetOrderHistory,
		},
		{
			Name:        "initiate_return",
			Description: "Initiate a return for one of your orders.",
			InputSchema: `{"type":"object","properties":{"order_id":{"type":"string"},"reason":{"type":"string","description":"Reason for the return"}},"required":["order_id","reason"]}`,
			Access:      tools.AccessCustomer,
			Handler:     h.InitiateReturn,
		},
	}
}

type handlers struct {
	store store.Store
}
