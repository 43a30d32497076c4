package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
)

// TokenDataKey is the key for storing the authenticated principal in request context.
const TokenDataKey contextKey = "token_data"

// apiKeyPrincipal is the principal attached to requests authenticated by API key.
var apiKeyPrincipal = model.TokenData{Nome: "api-key", Role: model.RoleAdmin}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	TokenService *service.TokenService
	APIKeys      []string
}

// NewAuthMiddleware creates an authentication middleware with injected dependencies.
// Sessions come from X-Token or a Bearer token with the session prefix; anything
// else in Authorization or X-API-Key is checked against the API keys.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			bearer := ""
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				bearer = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}

			token := r.Header.Get("X-Token")
			if token == "" && strings.HasPrefix(bearer, service.TokenPrefix) {
				token = bearer
			}

			if token != "" {
				if cfg.TokenService == nil {
					writeError(w, apierror.ServiceUnavailable("Sessions are not enabled"))
					return
				}
				tokenData, err := cfg.TokenService.ValidateToken(r.Context(), token)
				if err != nil {
					writeError(w, apierror.Unauthorized("Invalid or expired token"))
					return
				}

				next.ServeHTTP(w, r.WithContext(WithTokenData(r.Context(), tokenData)))
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				apiKey = bearer
			}

			if apiKey == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use X-Token, Bearer or X-API-Key header."))
				return
			}

			if !isValidKey(apiKey, cfg.APIKeys) {
				writeError(w, apierror.Unauthorized("Invalid API key"))
				return
			}

			principal := apiKeyPrincipal
			next.ServeHTTP(w, r.WithContext(WithTokenData(r.Context(), &principal)))
		})
	}
}

// RequireRole rejects requests whose principal has none of roles.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := GetTokenDataFromContext(r.Context())
			if data == nil {
				writeError(w, apierror.Unauthorized(""))
				return
			}
			for _, role := range roles {
				if data.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apierror.Forbidden(""))
		})
	}
}

func isPublic(r *http.Request) bool {
	switch r.URL.Path {
	case "/api/v1/health", "/api/v1/ready":
		return true
	case "/api/v1/auth/login":
		return r.Method == http.MethodPost
	}
	return false
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// isValidKey checks if the provided key is in the valid keys list.
func isValidKey(key string, validKeys []string) bool {
	for _, valid := range validKeys {
		if valid != "" && subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
			return true
		}
	}
	return false
}

// WithTokenData returns a copy of ctx carrying data as the principal.
func WithTokenData(ctx context.Context, data *model.TokenData) context.Context {
	return context.WithValue(ctx, TokenDataKey, data)
}

// GetTokenDataFromContext retrieves the principal from request context.
func GetTokenDataFromContext(ctx context.Context) *model.TokenData {
	if data, ok := ctx.Value(TokenDataKey).(*model.TokenData); ok {
		return data
	}
	return nil
}
