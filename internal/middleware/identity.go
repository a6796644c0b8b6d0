package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
)

type ContextKey string

const IdentityKey ContextKey = "identity"

// Identity is who sent the request and from which channel. Admin is
// set when the caller presented the shared admin token.
type Identity struct {
	ChannelID int64
	UserID    int64
	Admin     bool
}

// RequireIdentity rejects requests that don't say which channel and
// user they act for. The gateway in front of this service fills the
// headers after verifying the chat platform's signature.
func RequireIdentity(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			channelID, err := strconv.ParseInt(r.Header.Get("X-Channel-ID"), 10, 64)
			if err != nil {
				http.Error(w, "missing or invalid X-Channel-ID header", http.StatusUnauthorized)
				return
			}
			userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
			if err != nil {
				http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
				return
			}

			identity := Identity{ChannelID: channelID, UserID: userID}
			if token := r.Header.Get("X-Admin-Token"); token != "" && adminToken != "" {
				identity.Admin = subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	val := ctx.Value(IdentityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
