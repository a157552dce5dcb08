// Package auth provides authentication for commerce-gateway.
//
// # Authentication Methods
//
// Two Authorization header schemes are accepted:
//
//   - Bearer <token>: HS256 JWT access token issued by /auth/login.
//     Claims: sub (customer ID), email, iat, exp.
//
//   - Basic <base64(email:password)>: credentials verified against the
//     customer store's bcrypt hashes on every request.
//
// Both resolve to the same Identity carrying the caller's customer ID,
// which the dispatcher uses for ownership scoping.
//
// # Identity Propagation
//
// The resolved Identity travels through context:
//
//	ctx = auth.WithIdentity(ctx, id)
//	id := auth.FromContext(ctx)
//
// Public tools never receive an identity; authenticated tools are
// guaranteed one by the dispatcher before their handler runs.
//
// # Token Management
//
//	verifier := auth.NewJWTVerifier(secret)
//	token, err := verifier.Generate(id, time.Hour)
//	id, err := verifier.Verify(token)
//
// Expired tokens return ErrExpiredToken; forged or malformed tokens
// return ErrInvalidToken.
//
// # Timing Safety
//
// Password verification performs a dummy bcrypt comparison when the email
// is unknown, so response timing does not reveal which accounts exist.
package auth
