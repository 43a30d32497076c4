package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// TokenResponse represents the response for issued or refreshed sessions.
type TokenResponse struct {
	Token     string      `json:"token,omitempty"`
	ExpiresIn int         `json:"expires_in"`
	User      interface{} `json:"user,omitempty"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Error(w, apierror.Unauthorized("invalid e-mail or password"))
		return
	}
	if err != nil {
		response.Error(w, apierror.InternalError("failed to open session"))
		return
	}

	response.OK(w, TokenResponse{
		Token:     session.Token,
		ExpiresIn: int(service.TokenTTL.Seconds()),
		User:      session.Data,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		response.Error(w, apierror.BadRequest("session token required"))
		return
	}

	if err := h.tokenService.RevokeToken(r.Context(), token); err != nil {
		response.Error(w, apierror.InternalError("failed to revoke token"))
		return
	}

	response.OK(w, map[string]string{"status": "revoked"})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		response.Error(w, apierror.BadRequest("session token required"))
		return
	}

	data, err := h.tokenService.RefreshToken(r.Context(), token)
	if err != nil {
		response.Error(w, apierror.Unauthorized("invalid or expired token"))
		return
	}

	response.OK(w, TokenResponse{
		ExpiresIn: int(service.TokenTTL.Seconds()),
		User:      data,
	})
}

// sessionToken reads the session token from X-Token or a session Bearer token.
func sessionToken(r *http.Request) string {
	if token := r.Header.Get("X-Token"); token != "" {
		return token
	}
	bearer := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if strings.HasPrefix(bearer, service.TokenPrefix) {
		return bearer
	}
	return ""
}
