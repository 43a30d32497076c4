package repository

import (
	"context"
	"errors"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ProjectRepository defines project data access methods.
type ProjectRepository interface {
	// List returns one page of active projects and the total matching the filter.
	List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, int64, error)

	// GetByID retrieves an active project. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id int64) (*model.Project, error)

	// Create inserts a project and returns it with its ID and timestamps.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// Update overwrites the editable fields of project id.
	Update(ctx context.Context, id int64, p *model.Project) (*model.Project, error)

	// Delete soft-deletes project id.
	Delete(ctx context.Context, id int64) error
}

// DashboardRepository provides the aggregates behind the dashboard.
type DashboardRepository interface {
	// CountProjectsByStatus returns active project counts keyed by status.
	CountProjectsByStatus(ctx context.Context) (map[string]int64, error)

	// CountBeneficiaries returns the number of active beneficiaries.
	CountBeneficiaries(ctx context.Context) (int64, error)
}

// UserRepository defines user data access methods.
type UserRepository interface {
	// GetUserByEmail finds an active user. Returns ErrNotFound if missing.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateUser inserts a user whose PasswordHash is already set.
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
}
