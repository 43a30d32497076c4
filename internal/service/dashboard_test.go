package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

func newDashboardRepo() *mockDashboardRepo {
	repo := new(mockDashboardRepo)
	repo.On("CountProjectsByStatus", mock.Anything).Return(map[string]int64{
		"planejamento": 2,
		"em_andamento": 3,
		"concluido":    1,
	}, nil)
	repo.On("CountBeneficiaries", mock.Anything).Return(int64(42), nil)
	return repo
}

func TestDashboardService_StatsByRole(t *testing.T) {
	ctx := context.Background()
	_, rt, _ := newMemoryCache(t)
	svc := NewDashboardService(newDashboardRepo(), rt)

	admin, err := svc.Stats(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(6), admin.TotalProjetos)
	assert.Equal(t, int64(3), admin.ProjetosAtivos)
	assert.Equal(t, int64(42), admin.TotalBeneficiarias)
	assert.Equal(t, int64(2), admin.ProjetosPorStatus["planejamento"])

	volunteer, err := svc.Stats(ctx, model.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(6), volunteer.TotalProjetos)
	assert.Nil(t, volunteer.ProjetosPorStatus)
}

func TestDashboardService_StatsCachedPerRole(t *testing.T) {
	ctx := context.Background()
	store, rt, _ := newMemoryCache(t)
	repo := newDashboardRepo()
	svc := NewDashboardService(repo, rt)

	for i := 0; i < 3; i++ {
		_, err := svc.Stats(ctx, model.RoleCoordinator)
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "CountProjectsByStatus", 1)

	_, err := store.Get(ctx, "dashboard:stats:coordenador")
	assert.NoError(t, err)
}

func TestDashboardService_UnknownRoleGetsVolunteerView(t *testing.T) {
	ctx := context.Background()
	store, rt, _ := newMemoryCache(t)
	svc := NewDashboardService(newDashboardRepo(), rt)

	stats, err := svc.Stats(ctx, model.Role("root"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleVolunteer, stats.Role)
	assert.Nil(t, stats.ProjetosPorStatus)

	_, err = store.Get(ctx, "dashboard:stats:voluntario")
	assert.NoError(t, err)
}

func TestDashboardService_StatsErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store, rt, _ := newMemoryCache(t)
	repo := new(mockDashboardRepo)
	repo.On("CountProjectsByStatus", mock.Anything).Return(nil, errors.New("db down"))
	svc := NewDashboardService(repo, rt)

	_, err := svc.Stats(ctx, model.RoleAdmin)
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestDashboardService_QuickAccess(t *testing.T) {
	ctx := context.Background()
	_, rt, _ := newMemoryCache(t)
	svc := NewDashboardService(new(mockDashboardRepo), rt)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	keys := func(items []model.QuickAccessItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Key)
		}
		return out
	}

	admin, err := svc.QuickAccess(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, keys(admin), "usuarios")
	assert.Len(t, admin, len(quickAccessCatalog))

	volunteer, err := svc.QuickAccess(ctx, model.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, []string{"projetos", "oficinas", "mensagens"}, keys(volunteer))
}
