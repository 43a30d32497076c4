package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "modernc.org/sqlite"             // Pure Go SQLite driver - no CGO required
)

// Dialect captures the differences between the supported SQL backends.
type Dialect struct {
	Name   string
	Driver string

	// numbered placeholders ($1, $2) instead of '?'
	numbered bool
	// INSERT ... RETURNING id instead of LastInsertId
	returning bool
	schema    []string
}

var (
	SQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS projetos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT NOT NULL,
				descricao TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'planejamento',
				data_inicio DATETIME NOT NULL,
				data_fim_prevista DATETIME,
				responsavel TEXT NOT NULL DEFAULT '',
				ativo INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_projetos_status ON projetos(status, ativo)`,
			`CREATE TABLE IF NOT EXISTS beneficiarias (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome_completo TEXT NOT NULL,
				cpf TEXT NOT NULL UNIQUE,
				ativo INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				senha_hash TEXT NOT NULL,
				papel TEXT NOT NULL DEFAULT 'voluntario',
				ativo INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL
			)`,
		},
	}

	Postgres = Dialect{
		Name:      "postgres",
		Driver:    "postgres",
		numbered:  true,
		returning: true,
		schema: []string{
			`CREATE TABLE IF NOT EXISTS projetos (
				id BIGSERIAL PRIMARY KEY,
				nome TEXT NOT NULL,
				descricao TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'planejamento',
				data_inicio TIMESTAMPTZ NOT NULL,
				data_fim_prevista TIMESTAMPTZ,
				responsavel TEXT NOT NULL DEFAULT '',
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_projetos_status ON projetos(status, ativo)`,
			`CREATE TABLE IF NOT EXISTS beneficiarias (
				id BIGSERIAL PRIMARY KEY,
				nome_completo TEXT NOT NULL,
				cpf TEXT NOT NULL UNIQUE,
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id BIGSERIAL PRIMARY KEY,
				nome TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				senha_hash TEXT NOT NULL,
				papel TEXT NOT NULL DEFAULT 'voluntario',
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	}

	MySQL = Dialect{
		Name:   "mysql",
		Driver: "mysql",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS projetos (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				nome VARCHAR(255) NOT NULL,
				descricao TEXT NOT NULL,
				status VARCHAR(32) NOT NULL DEFAULT 'planejamento',
				data_inicio DATETIME(6) NOT NULL,
				data_fim_prevista DATETIME(6) NULL,
				responsavel VARCHAR(255) NOT NULL DEFAULT '',
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at DATETIME(6) NOT NULL,
				updated_at DATETIME(6) NOT NULL,
				INDEX idx_projetos_status (status, ativo)
			)`,
			`CREATE TABLE IF NOT EXISTS beneficiarias (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				nome_completo VARCHAR(255) NOT NULL,
				cpf VARCHAR(14) NOT NULL UNIQUE,
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at DATETIME(6) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS usuarios (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				nome VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL UNIQUE,
				senha_hash VARCHAR(255) NOT NULL,
				papel VARCHAR(32) NOT NULL DEFAULT 'voluntario',
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				created_at DATETIME(6) NOT NULL
			)`,
		},
	}
)

// DialectFor resolves a DB_TYPE value. Unknown values fall back to SQLite.
func DialectFor(dbType string) Dialect {
	switch strings.ToLower(dbType) {
	case "postgres", "postgresql":
		return Postgres
	case "mysql", "mariadb":
		return MySQL
	default:
		return SQLite
	}
}

// Rebind rewrites '?' placeholders for dialects that number them.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// DB is a database handle bound to its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to dsn, applies pool settings suited to the dialect and creates missing tables.
func Open(d Dialect, dsn string) (*DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.Name, err)
	}

	switch d.Name {
	case SQLite.Name:
		db.SetMaxOpenConns(1) // SQLite only supports 1 writer
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(1 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", d.Name, err)
	}

	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	log.Printf("[Repository] %s database ready", d.Name)
	return &DB{DB: db, dialect: d}, nil
}

// Dialect returns the dialect the handle was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// insert runs an INSERT and returns the new row ID.
func (db *DB) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if db.dialect.returning {
		var id int64
		err := db.QueryRowContext(ctx, db.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := db.ExecContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.ExecContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.dialect.Rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.dialect.Rebind(query), args...)
}
