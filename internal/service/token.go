package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

const (
	// TokenPrefix is the prefix for all session tokens
	TokenPrefix = "amt_"

	// TokenTTL is the default session lifetime (1 hour)
	TokenTTL = 1 * time.Hour

	// TokenKeyPrefix namespaces sessions in the store
	TokenKeyPrefix = "assist:token:"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token not found or expired")
)

// TokenService issues and validates session tokens. Sessions live in the
// same store as the cache but under their own prefix, so cache purges never
// touch them.
type TokenService struct {
	store cache.Store
	now   func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(store cache.Store) *TokenService {
	return &TokenService{
		store: store,
		now:   time.Now,
	}
}

// GenerateToken creates a new session token and stores it.
func (s *TokenService) GenerateToken(ctx context.Context, data model.TokenData) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := TokenPrefix + hex.EncodeToString(tokenBytes)

	data.CreatedAt = s.now().UTC()
	data.ExpiresAt = data.CreatedAt.Add(TokenTTL)
	if err := s.save(ctx, token, data); err != nil {
		return "", err
	}

	log.Printf("[TokenService] Generated token for user_id=%d, role=%s, expires=%v",
		data.UserID, data.Role, data.ExpiresAt)

	return token, nil
}

// ValidateToken checks if a token is valid and returns its data.
func (s *TokenService) ValidateToken(ctx context.Context, token string) (*model.TokenData, error) {
	data, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.now().After(data.ExpiresAt) {
		s.revoke(ctx, token)
		return nil, ErrTokenExpired
	}

	return data, nil
}

// RevokeToken deletes a session.
func (s *TokenService) RevokeToken(ctx context.Context, token string) error {
	if !strings.HasPrefix(token, TokenPrefix) {
		return ErrInvalidToken
	}
	return s.revoke(ctx, token)
}

// RefreshToken extends the lifetime of an existing session and returns its new data.
func (s *TokenService) RefreshToken(ctx context.Context, token string) (*model.TokenData, error) {
	data, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	data.ExpiresAt = s.now().UTC().Add(TokenTTL)
	if err := s.save(ctx, token, *data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *TokenService) load(ctx context.Context, token string) (*model.TokenData, error) {
	if !strings.HasPrefix(token, TokenPrefix) || len(token) == len(TokenPrefix) {
		return nil, ErrInvalidToken
	}

	raw, err := s.store.Get(ctx, TokenKeyPrefix+token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var data model.TokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse token data: %w", err)
	}
	return &data, nil
}

func (s *TokenService) save(ctx context.Context, token string, data model.TokenData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize token data: %w", err)
	}
	if err := s.store.SetWithTTL(ctx, TokenKeyPrefix+token, raw, TokenTTL); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *TokenService) revoke(ctx context.Context, token string) error {
	return s.store.Delete(ctx, TokenKeyPrefix+token)
}
