package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

// SQLProjectRepository implements ProjectRepository and DashboardRepository over database/sql.
type SQLProjectRepository struct {
	db *DB
}

// NewSQLProjectRepository creates a project repository on db.
func NewSQLProjectRepository(db *DB) *SQLProjectRepository {
	return &SQLProjectRepository{db: db}
}

const projectColumns = `id, nome, descricao, status, data_inicio, data_fim_prevista, responsavel, created_at, updated_at`

// List returns one page of active projects, newest first.
func (r *SQLProjectRepository) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, int64, error) {
	where := `WHERE ativo = ?`
	args := []any{true}
	if filter.Status != "" {
		where += ` AND status = ?`
		args = append(args, string(filter.Status))
	}

	var total int64
	if err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM projetos `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := `SELECT ` + projectColumns + ` FROM projetos ` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetByID retrieves an active project by ID.
func (r *SQLProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row := r.db.queryRow(ctx, `SELECT `+projectColumns+` FROM projetos WHERE id = ? AND ativo = ?`, id, true)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return p, nil
}

// Create inserts p.
func (r *SQLProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	now := time.Now().UTC()
	if p.Status == "" {
		p.Status = model.ProjectPlanning
	}
	if p.DataInicio.IsZero() {
		p.DataInicio = now
	}

	id, err := r.db.insert(ctx, `
		INSERT INTO projetos (nome, descricao, status, data_inicio, data_fim_prevista, responsavel, ativo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Nome, p.Descricao, string(p.Status), p.DataInicio.UTC(), nullTime(p.DataFimPrevista), p.Responsavel, true, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update overwrites the editable fields of project id.
func (r *SQLProjectRepository) Update(ctx context.Context, id int64, p *model.Project) (*model.Project, error) {
	res, err := r.db.exec(ctx, `
		UPDATE projetos
		SET nome = ?, descricao = ?, status = ?, data_inicio = ?, data_fim_prevista = ?, responsavel = ?, updated_at = ?
		WHERE id = ? AND ativo = ?`,
		p.Nome, p.Descricao, string(p.Status), p.DataInicio.UTC(), nullTime(p.DataFimPrevista), p.Responsavel, time.Now().UTC(), id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	if err := expectRow(res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete soft-deletes project id.
func (r *SQLProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `UPDATE projetos SET ativo = ?, updated_at = ? WHERE id = ? AND ativo = ?`,
		false, time.Now().UTC(), id, true)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return expectRow(res)
}

// CountProjectsByStatus returns active project counts keyed by status.
func (r *SQLProjectRepository) CountProjectsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.query(ctx, `SELECT status, COUNT(*) FROM projetos WHERE ativo = ? GROUP BY status`, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan project count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountBeneficiaries returns the number of active beneficiaries.
func (r *SQLProjectRepository) CountBeneficiaries(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM beneficiarias WHERE ativo = ?`, true).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count beneficiaries: %w", err)
	}
	return n, nil
}

// AddBeneficiary inserts a beneficiary row. Used to seed development databases.
func (r *SQLProjectRepository) AddBeneficiary(ctx context.Context, nome, cpf string) (int64, error) {
	id, err := r.db.insert(ctx, `INSERT INTO beneficiarias (nome_completo, cpf, ativo, created_at) VALUES (?, ?, ?, ?)`,
		nome, cpf, true, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to add beneficiary: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p      model.Project
		status string
		fim    sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Nome, &p.Descricao, &status, &p.DataInicio, &fim, &p.Responsavel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = model.ProjectStatus(status)
	if fim.Valid {
		t := fim.Time
		p.DataFimPrevista = &t
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	_ ProjectRepository   = (*SQLProjectRepository)(nil)
	_ DashboardRepository = (*SQLProjectRepository)(nil)
)
