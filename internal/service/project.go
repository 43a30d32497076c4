package service

import (
	"context"
	"log"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
)

const (
	// ProjectCacheTTL applies to project lists and details.
	ProjectCacheTTL = 300 * time.Second

	DefaultProjectLimit = 20
	MaxProjectLimit     = 100
)

// ProjectPatterns are purged after project writes. List pages are keyed by
// status and limit; every write drops all of them rather than guessing which
// pages moved. Dashboard stats aggregate projects and go with them.
var ProjectPatterns = cache.PatternSet{
	OnAnyWrite: []cache.Pattern{
		cache.Prefix("projetos:list"),
		cache.Prefix(DashboardStatsNamespace),
	},
	Entity: func(id any) []cache.Pattern {
		return []cache.Pattern{cache.Exact(projectKey(id))}
	},
}

// ProjectService handles project business logic.
type ProjectService struct {
	repo        repository.ProjectRepository
	cache       *cache.ReadThrough
	invalidator *cache.Invalidator
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, rt *cache.ReadThrough, inv *cache.Invalidator) *ProjectService {
	return &ProjectService{
		repo:        repo,
		cache:       rt,
		invalidator: inv,
	}
}

// List returns a page of projects filtered by status ("" for all).
func (s *ProjectService) List(ctx context.Context, status model.ProjectStatus, limit int) (model.ProjectPage, error) {
	limit = clampLimit(limit)
	statusKey := string(status)
	if statusKey == "" {
		statusKey = "all"
	}

	key := cache.JoinKey("projetos", "list", statusKey, limit)
	return cache.GetOrCompute(ctx, s.cache, key, ProjectCacheTTL, func(ctx context.Context) (model.ProjectPage, error) {
		items, total, err := s.repo.List(ctx, model.ProjectFilter{Status: status, Limit: limit})
		if err != nil {
			return model.ProjectPage{}, err
		}
		return model.ProjectPage{Items: items, Total: total, Limit: limit}, nil
	})
}

// Get returns project id. Missing projects are not cached.
func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return cache.GetOrCompute(ctx, s.cache, projectKey(id), ProjectCacheTTL, func(ctx context.Context) (*model.Project, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// Create stores a new project and purges list caches.
func (s *ProjectService) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.purge(ctx, ProjectPatterns.ForCreate())
	return created, nil
}

// Update overwrites project id and purges list and detail caches.
func (s *ProjectService) Update(ctx context.Context, id int64, p *model.Project) (*model.Project, error) {
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.purge(ctx, ProjectPatterns.ForUpdate(id))
	return updated, nil
}

// Delete removes project id and purges list and detail caches.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.purge(ctx, ProjectPatterns.ForDelete(id))
	return nil
}

func (s *ProjectService) purge(ctx context.Context, patterns []cache.Pattern) {
	n := s.invalidator.Invalidate(ctx, patterns...)
	log.Printf("[ProjectService] Invalidated %d cache entries", n)
}

func projectKey(id any) string {
	return cache.JoinKey("projetos", "id", id)
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultProjectLimit
	}
	if limit > MaxProjectLimit {
		return MaxProjectLimit
	}
	return limit
}
