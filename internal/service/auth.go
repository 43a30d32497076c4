package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
)

// ErrInvalidCredentials is returned for unknown e-mails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks user credentials and opens sessions.
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Session is the outcome of a successful login.
type Session struct {
	Token string           `json:"token"`
	Data  *model.TokenData `json:"user"`
}

// Login verifies email and password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[AuthService] Failed login for user_id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	data := model.TokenData{
		UserID: user.ID,
		Nome:   user.Nome,
		Email:  user.Email,
		Role:   user.Role.Normalize(),
	}
	token, err := s.tokens.GenerateToken(ctx, data)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Data: stored}, nil
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, nome, email, password string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.CreateUser(ctx, &model.User{
		Nome:         nome,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}
