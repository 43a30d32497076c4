package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, int64, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]model.Project)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Project)
	return p, args.Error(1)
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(*model.Project)
	return created, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, id int64, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, id, p)
	updated, _ := args.Get(0).(*model.Project)
	return updated, args.Error(1)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) CountProjectsByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockDashboardRepo) CountBeneficiaries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(*model.User)
	return created, args.Error(1)
}

func newMemoryCache(t *testing.T) (*cache.MemoryStore, *cache.ReadThrough, *cache.Invalidator) {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return store, cache.NewReadThrough(store), cache.NewInvalidator(store)
}
