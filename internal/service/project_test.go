package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/repository"
)

func TestProjectService_ListIsCached(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	items := []model.Project{{ID: 1, Nome: "Horta comunitária", Status: model.ProjectInProgress}}
	repo.On("List", mock.Anything, model.ProjectFilter{Status: model.ProjectInProgress, Limit: 10}).
		Return(items, int64(1), nil).Once()

	first, err := svc.List(ctx, model.ProjectInProgress, 10)
	require.NoError(t, err)
	second, err := svc.List(ctx, model.ProjectInProgress, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), second.Total)
	assert.Equal(t, 10, second.Limit)
	repo.AssertExpectations(t)

	_, err = store.Get(ctx, "projetos:list:em_andamento:10")
	assert.NoError(t, err)
}

func TestProjectService_ListClampsLimit(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	repo.On("List", mock.Anything, model.ProjectFilter{Limit: DefaultProjectLimit}).Return([]model.Project{}, int64(0), nil).Once()
	repo.On("List", mock.Anything, model.ProjectFilter{Limit: MaxProjectLimit}).Return([]model.Project{}, int64(0), nil).Once()

	_, err := svc.List(ctx, "", 0)
	require.NoError(t, err)
	_, err = svc.List(ctx, "", 500)
	require.NoError(t, err)

	_, err = store.Get(ctx, "projetos:list:all:20")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "projetos:list:all:100")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProjectService_GetNotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound).Twice()

	_, err := svc.Get(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Get(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, 0, store.Len())
	repo.AssertExpectations(t)
}

func TestProjectService_UpdateInvalidatesListsDetailAndDashboard(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	p := &model.Project{ID: 3, Nome: "Oficina", Status: model.ProjectPlanning}
	repo.On("GetByID", mock.Anything, int64(3)).Return(p, nil).Once()
	repo.On("GetByID", mock.Anything, int64(4)).Return(&model.Project{ID: 4}, nil).Once()
	repo.On("List", mock.Anything, mock.Anything).Return([]model.Project{*p}, int64(1), nil).Once()

	_, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 4)
	require.NoError(t, err)
	_, err = svc.List(ctx, "", 20)
	require.NoError(t, err)
	require.NoError(t, store.SetWithTTL(ctx, "dashboard:stats:admin", []byte(`{}`), ProjectCacheTTL))
	require.Equal(t, 4, store.Len())

	changed := &model.Project{ID: 3, Nome: "Oficina", Status: model.ProjectInProgress}
	repo.On("Update", mock.Anything, int64(3), changed).Return(changed, nil).Once()

	_, err = svc.Update(ctx, 3, changed)
	require.NoError(t, err)

	_, err = store.Get(ctx, "projetos:id:3")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = store.Get(ctx, "projetos:list:all:20")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = store.Get(ctx, "dashboard:stats:admin")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	_, err = store.Get(ctx, "projetos:id:4")
	assert.NoError(t, err, "other projects stay cached")
	repo.AssertExpectations(t)
}

func TestProjectService_CreateKeepsDetailEntries(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	require.NoError(t, store.SetWithTTL(ctx, "projetos:id:1", []byte(`{"id":1}`), ProjectCacheTTL))
	require.NoError(t, store.SetWithTTL(ctx, "projetos:list:all:20", []byte(`{}`), ProjectCacheTTL))

	in := &model.Project{Nome: "Novo"}
	repo.On("Create", mock.Anything, in).Return(&model.Project{ID: 9, Nome: "Novo"}, nil).Once()

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	_, err = store.Get(ctx, "projetos:id:1")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "projetos:list:all:20")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestProjectService_FailedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	require.NoError(t, store.SetWithTTL(ctx, "projetos:id:5", []byte(`{"id":5}`), ProjectCacheTTL))
	repo.On("Delete", mock.Anything, int64(5)).Return(errors.New("constraint violation")).Once()

	err := svc.Delete(ctx, 5)
	assert.Error(t, err)

	_, err = store.Get(ctx, "projetos:id:5")
	assert.NoError(t, err)
}

func TestProjectService_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	store, rt, inv := newMemoryCache(t)
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, rt, inv)

	require.NoError(t, store.SetWithTTL(ctx, "projetos:id:5", []byte(`{"id":5}`), ProjectCacheTTL))
	repo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, 5))

	_, err := store.Get(ctx, "projetos:id:5")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
