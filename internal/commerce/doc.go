// Package commerce implements the e-commerce tools exposed by the gateway.
//
// Six tools are defined:
//
//	PUBLIC:
//	  - search_products
//	  - get_product_reviews
//	AUTHENTICATED:
//	  - order_product
//	  - write_product_review
//	  - get_order_history
//	  - initiate_return
//
// All authenticated tools scope data access to the caller's customer ID.
// Orders follow a single state transition, placed -> returned, driven
// only by a successful initiate_return; a second return on the same
// order fails with invalid_input. Order placement is a single store
// write with no inventory side effect.
package commerce
