package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// SessionCookieName is the HTTP-only cookie carrying the session token. The
// cookie is the only session transport; Authorization headers are ignored.
const SessionCookieName = "access_token"

type ctxKey int

const (
	identityKey ctxKey = iota
	slotKey
)

// identitySlot is a mutable cell installed by outer middleware. Context values
// added by RequireSession never propagate back up the chain, so the logging
// middleware plants a slot on the way in and RequireSession fills it.
type identitySlot struct {
	identity *Identity
}

// WithIdentitySlot returns a context carrying an empty slot for the verified
// identity. Installed by the logging middleware before routing.
func WithIdentitySlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, slotKey, &identitySlot{})
}

// IdentityFromSlot reports the identity RequireSession recorded in the slot,
// if the request passed the session gate.
func IdentityFromSlot(ctx context.Context) (Identity, bool) {
	if slot, ok := ctx.Value(slotKey).(*identitySlot); ok && slot.identity != nil {
		return *slot.identity, true
	}
	return Identity{}, false
}

func fillIdentitySlot(ctx context.Context, identity Identity) {
	if slot, ok := ctx.Value(slotKey).(*identitySlot); ok {
		slot.identity = &identity
	}
}

// RequireSession gates a route behind session verification. On any failure it
// responds 401 with a JSON body naming the failure kind; on success it injects
// the verified Identity into the request context.
func RequireSession(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				tokenStr = cookie.Value
			}

			identity, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w, err)
				return
			}

			fillIdentitySlot(r.Context(), identity)
			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity injected by RequireSession.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// ContextWithIdentity injects an identity directly. Used by tests.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
