// ABOUTME: Request authentication supporting Bearer JWT and Basic credentials
// ABOUTME: Resolves an Authorization header to a caller Identity against the customer store

package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/2389/commerce-gateway/internal/store"
)

// Authentication errors
var (
	ErrMissingAuth       = errors.New("missing authorization header")
	ErrUnsupportedScheme = errors.New("unsupported authentication method")
	ErrBadCredentials    = errors.New("invalid email or password")
)

// dummyHash is compared when the customer lookup fails, keeping password
// verification constant-time so valid emails cannot be enumerated.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CustomerStore is the subset of the store the authenticator needs.
type CustomerStore interface {
	GetCustomerByEmail(ctx context.Context, email string) (*store.Customer, error)
}

// Authenticator resolves Authorization headers to caller identities.
// Bearer tokens are verified locally; Basic credentials are checked
// against the customer store's bcrypt hashes.
type Authenticator struct {
	customers CustomerStore
	verifier  *JWTVerifier
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator backed by the given customer
// store and JWT verifier.
func NewAuthenticator(customers CustomerStore, verifier *JWTVerifier, tokenTTL time.Duration, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		customers: customers,
		verifier:  verifier,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Authenticate resolves an Authorization header value to an Identity.
// Supports "Bearer <jwt>" and "Basic <base64(email:password)>".
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string) (*Identity, error) {
	if authHeader == "" {
		return nil, ErrMissingAuth
	}

	switch {
	case strings.HasPrefix(authHeader, "Bearer "):
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return nil, ErrInvalidToken
		}
		return a.verifier.Verify(token)

	case strings.HasPrefix(authHeader, "Basic "):
		email, password, err := decodeBasic(strings.TrimPrefix(authHeader, "Basic "))
		if err != nil {
			return nil, err
		}
		return a.verifyPassword(ctx, email, password)

	default:
		return nil, ErrUnsupportedScheme
	}
}

// LoginResult is the outcome of a successful password login.
type LoginResult struct {
	Identity    *Identity
	AccessToken string
	ExpiresIn   int // seconds
}

// PasswordLogin verifies credentials and issues an access token.
func (a *Authenticator) PasswordLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	id, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := a.verifier.Generate(id, a.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	a.logger.Info("customer logged in", "customer_id", id.CustomerID)

	return &LoginResult{
		Identity:    id,
		AccessToken: token,
		ExpiresIn:   int(a.tokenTTL.Seconds()),
	}, nil
}

// verifyPassword checks email/password against the customer store.
func (a *Authenticator) verifyPassword(ctx context.Context, email, password string) (*Identity, error) {
	customer, err := a.customers.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Dummy comparison to maintain constant timing
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return &Identity{CustomerID: customer.ID, Email: customer.Email}, nil
}

// decodeBasic decodes a base64 email:password pair.
func decodeBasic(encoded string) (email, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid base64", ErrBadCredentials)
	}

	credentials := string(raw)
	idx := strings.IndexByte(credentials, ':')
	if idx < 0 {
		return "", "", fmt.Errorf("%w: missing separator", ErrBadCredentials)
	}

	return credentials[:idx], credentials[idx+1:], nil
}

// IsAuthError reports whether err is an authentication failure (as opposed
// to an upstream store failure).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingAuth) ||
		errors.Is(err, ErrUnsupportedScheme) ||
		errors.Is(err, ErrBadCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingClaim)
}
