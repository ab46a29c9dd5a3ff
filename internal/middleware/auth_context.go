package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader solo se acepta cuando no hay verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve las claims del request y las deja en el contexto.
// Sin claims el request sigue igual; cada handler decide si responde 401.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					r = r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid}))
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("token rejected", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"error":      err.Error(),
				})
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
