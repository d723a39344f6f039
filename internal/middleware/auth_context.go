package middleware

import (
	"context"
	"net/http"
	"strings"

	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "operator_claims"

// DebugOperatorHeader solo se respeta cuando no hay verifier configurado (modo dev).
const DebugOperatorHeader = "X-Debug-User-ID"

// AuthContext resuelve el operador del request y lo deja en el contexto.
// Nunca corta el request: el dashboard es de solo lectura y público, y son los handlers
// de escritura los que responden 401 si no hay claims.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier, log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugOperatorHeader))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid, Source: "debug"}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		log.Warn("operator token rejected", map[string]any{
			"path":  r.URL.Path,
			"error": err,
		})
		return auth.Claims{}, false
	}
	return claims, true
}

// WithClaims permite a tests y comandos internos inyectar un operador.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
