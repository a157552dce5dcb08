// Package store provides persistence for commerce-gateway entities.
//
// # Entities
//
// Five entity types back the tool surface:
//
//   - Product: catalog entries, read by search and review tools
//   - Customer: shopper accounts with bcrypt password hashes
//   - Order: purchases, owned by one customer, status placed or returned
//   - Review: product ratings, immutable after creation
//   - Return: return requests, one per order
//
// # Implementation
//
// SQLiteStore implements the Store interface using modernc.org/sqlite with
// WAL mode. The schema is created automatically on open. Timestamps are
// stored as RFC3339 strings in UTC.
//
// # Error Taxonomy
//
// Store methods surface two sentinel errors:
//
//   - ErrNotFound: the requested entity does not exist (permanent)
//   - ErrUnavailable: transient contention, safe to retry reads
//
// Retryable(err) classifies an error for the dispatcher's retry policy.
// Writes are never retried; a duplicated retry of PutOrder would create a
// second order.
//
// # Seeding
//
// Seed loads a TOML fixture of demo products, customers, and reviews.
// It is idempotent: a populated catalog short-circuits the load.
package store
