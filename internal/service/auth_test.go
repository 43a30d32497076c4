package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newMemoryCache(t)
	users := new(mockUserRepo)
	tokens := NewTokenService(store)
	svc := NewAuthService(users, tokens)

	users.On("GetUserByEmail", mock.Anything, "ana@assist.org").Return(&model.User{
		ID:           5,
		Nome:         "Ana",
		Email:        "ana@assist.org",
		PasswordHash: hashPassword(t, "s3nha-forte"),
		Role:         model.RoleCoordinator,
		Ativo:        true,
	}, nil)

	session, err := svc.Login(ctx, "ana@assist.org", "s3nha-forte")
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.Data.UserID)
	assert.Equal(t, model.RoleCoordinator, session.Data.Role)

	data, err := tokens.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ana", data.Nome)

	_, err = svc.Login(ctx, "ana@assist.org", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	store, _, _ := newMemoryCache(t)
	users := new(mockUserRepo)
	users.On("GetUserByEmail", mock.Anything, "x@assist.org").Return(nil, repository.ErrNotFound)
	svc := NewAuthService(users, NewTokenService(store))

	_, err := svc.Login(context.Background(), "x@assist.org", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	store, _, _ := newMemoryCache(t)
	users := new(mockUserRepo)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "novo@assist.org" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo123")) == nil
	})).Return(&model.User{ID: 1, Email: "novo@assist.org"}, nil).Once()
	svc := NewAuthService(users, NewTokenService(store))

	u, err := svc.Register(context.Background(), "Novo", "novo@assist.org", "segredo123", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	users.AssertExpectations(t)
}
