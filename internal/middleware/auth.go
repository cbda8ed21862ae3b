package middleware

import (
	"context"
	"net/http"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/auth"
)

// TokenCookie is the HTTP-only cookie carrying the identity token.
const TokenCookie = "token"

type key string

const identityKey key = "identity"

// Guard resolves the caller's identity from the token cookie.
type Guard struct {
	Tokens *auth.TokenService
}

func NewGuard(tokens *auth.TokenService) *Guard {
	return &Guard{Tokens: tokens}
}

// ResolveIdentity returns the verified identity of r's caller. The error is
// Unauthenticated when no token is present and InvalidToken when it does not verify.
func (g *Guard) ResolveIdentity(r *http.Request) (auth.Identity, error) {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		return auth.Identity{}, apperr.Unauthenticated("token missing")
	}
	id, err := g.Tokens.Verify(c.Value)
	if err != nil {
		return auth.Identity{}, apperr.InvalidToken(err)
	}
	return id, nil
}

// Require rejects requests without a valid identity through onError and
// stores the identity in the request context otherwise.
func (g *Guard) Require(onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := g.ResolveIdentity(r)
			if err != nil {
				onError(w, r, err)
				return
			}
			noteUser(r.Context(), id.ID)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by Require.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
