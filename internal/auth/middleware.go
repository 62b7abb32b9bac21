package auth

import (
	"net/http"
	"strings"

	"github.com/jaakkopy/todo-backend/internal/platform/httpx"
	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Middleware returns the identity gate guarding protected routes. A request
// with no Authorization header is rejected Unauthenticated; a header whose
// token cannot be verified is rejected Forbidden. On success the verified
// identity, together with the raw token, is injected into the request context.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
				return
			}
			scheme, raw, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				httpx.RespondError(w, shared.Forbidden("invalid or expired token"))
				return
			}
			identity, err := issuer.Verify(raw)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			ctx := shared.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
