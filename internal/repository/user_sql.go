package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

// SQLUserRepository implements UserRepository over database/sql.
type SQLUserRepository struct {
	db *DB
}

// NewSQLUserRepository creates a user repository on db.
func NewSQLUserRepository(db *DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// GetUserByEmail finds an active user by e-mail, case-insensitively.
func (r *SQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	err := r.db.queryRow(ctx, `
		SELECT id, nome, email, senha_hash, papel, ativo, created_at
		FROM usuarios
		WHERE email = ? AND ativo = ?`, normalizeEmail(email), true).
		Scan(&u.ID, &u.Nome, &u.Email, &u.PasswordHash, &role, &u.Ativo, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

// CreateUser inserts u. The e-mail is stored lower-cased.
func (r *SQLUserRepository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	created := *u
	created.Email = normalizeEmail(u.Email)
	created.Role = u.Role.Normalize()
	created.Ativo = true
	created.CreatedAt = time.Now().UTC()

	id, err := r.db.insert(ctx, `
		INSERT INTO usuarios (nome, email, senha_hash, papel, ativo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		created.Nome, created.Email, created.PasswordHash, string(created.Role), true, created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	created.ID = id
	return &created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ UserRepository = (*SQLUserRepository)(nil)
