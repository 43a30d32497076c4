package service

import (
	"context"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
)

const (
	DashboardStatsNamespace = "dashboard:stats"
	QuickAccessNamespace    = "quick-access"

	// DashboardCacheTTL applies to stats and quick-access entries.
	DashboardCacheTTL = 300 * time.Second
)

// quickAccessCatalog lists every shortcut with the roles allowed to see it.
var quickAccessCatalog = []struct {
	item  model.QuickAccessItem
	roles []model.Role
}{
	{
		item:  model.QuickAccessItem{Key: "beneficiarias", Label: "Beneficiárias", Path: "/beneficiarias"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional},
	},
	{
		item:  model.QuickAccessItem{Key: "nova-beneficiaria", Label: "Nova beneficiária", Path: "/beneficiarias/nova"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional},
	},
	{
		item:  model.QuickAccessItem{Key: "projetos", Label: "Projetos", Path: "/projetos"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional, model.RoleVolunteer},
	},
	{
		item:  model.QuickAccessItem{Key: "oficinas", Label: "Oficinas", Path: "/oficinas"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional, model.RoleVolunteer},
	},
	{
		item:  model.QuickAccessItem{Key: "mensagens", Label: "Mensagens", Path: "/mensagens"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional, model.RoleVolunteer},
	},
	{
		item:  model.QuickAccessItem{Key: "relatorios", Label: "Relatórios", Path: "/relatorios"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleCoordinator},
	},
	{
		item:  model.QuickAccessItem{Key: "usuarios", Label: "Usuários", Path: "/configuracoes/usuarios"},
		roles: []model.Role{model.RoleSuperAdmin, model.RoleAdmin},
	},
}

// DashboardService builds role-specific dashboard data.
type DashboardService struct {
	repo  repository.DashboardRepository
	cache *cache.ReadThrough
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repo repository.DashboardRepository, rt *cache.ReadThrough) *DashboardService {
	return &DashboardService{repo: repo, cache: rt, now: time.Now}
}

// Stats returns the dashboard summary for role. Only admins get the per-status breakdown.
func (s *DashboardService) Stats(ctx context.Context, role model.Role) (model.DashboardStats, error) {
	role = role.Normalize()
	key := cache.JoinKey(DashboardStatsNamespace, role)

	return cache.GetOrCompute(ctx, s.cache, key, DashboardCacheTTL, func(ctx context.Context) (model.DashboardStats, error) {
		byStatus, err := s.repo.CountProjectsByStatus(ctx)
		if err != nil {
			return model.DashboardStats{}, err
		}
		beneficiaries, err := s.repo.CountBeneficiaries(ctx)
		if err != nil {
			return model.DashboardStats{}, err
		}

		stats := model.DashboardStats{
			Role:               role,
			TotalBeneficiarias: beneficiaries,
			ProjetosAtivos:     byStatus[string(model.ProjectInProgress)],
			GeneratedAt:        s.now().UTC(),
		}
		for _, n := range byStatus {
			stats.TotalProjetos += n
		}
		if role.IsAdmin() {
			stats.ProjetosPorStatus = byStatus
		}
		return stats, nil
	})
}

// QuickAccess returns the shortcuts visible to role.
func (s *DashboardService) QuickAccess(ctx context.Context, role model.Role) ([]model.QuickAccessItem, error) {
	role = role.Normalize()
	key := cache.JoinKey(QuickAccessNamespace, role)

	return cache.GetOrCompute(ctx, s.cache, key, DashboardCacheTTL, func(ctx context.Context) ([]model.QuickAccessItem, error) {
		items := []model.QuickAccessItem{}
		for _, entry := range quickAccessCatalog {
			for _, r := range entry.roles {
				if r == role {
					items = append(items, entry.item)
					break
				}
			}
		}
		return items, nil
	})
}
