package middleware

import (
	"context"
	"net/http"
	"strings"

	"plp-bookstore/internal/utils"
)

type contextKey string

const ContextUserID contextKey = "user_id"

// JWTAuthMiddleware guards the catalogue mutations. It stores the caller's
// user ID on the request context and tags the context with the token's
// session ID, so every audit entry written for the request carries it as
// its run_id.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tokenStr == "" {
			unauthorized(w, "Unauthorized")
			return
		}

		claims, err := utils.ParseJWT(tokenStr)
		if err != nil || claims.UserID == "" {
			unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
		if claims.ID != "" {
			ctx = utils.ContextWithRunID(ctx, claims.ID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="bookstore"`)
	utils.JSONError(w, msg, http.StatusUnauthorized)
}

// UserID returns the authenticated caller, or "anonymous" on unguarded routes.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextUserID).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}
