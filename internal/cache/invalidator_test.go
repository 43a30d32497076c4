package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInvalidator_SumsCounts(t *testing.T) {
	store := &mockStore{}
	store.On("DeleteMatching", mock.Anything, "projetos:list:*").Return(int64(3), nil)
	store.On("DeleteMatching", mock.Anything, "projetos:id:7").Return(int64(1), nil)

	n := NewInvalidator(store).Invalidate(context.Background(), "projetos:list:*", "projetos:id:7")
	assert.Equal(t, int64(4), n)
	store.AssertExpectations(t)
}

func TestInvalidator_ContinuesPastFailures(t *testing.T) {
	store := &mockStore{}
	store.On("DeleteMatching", mock.Anything, "projetos:list:*").Return(int64(0), fmt.Errorf("%w: timeout", ErrStoreUnavailable))
	store.On("DeleteMatching", mock.Anything, "projetos:id:7").Return(int64(1), nil)

	n := NewInvalidator(store).Invalidate(context.Background(), "projetos:list:*", "projetos:id:7")
	assert.Equal(t, int64(1), n)
	store.AssertExpectations(t)
}

func TestInvalidator_NoPatterns(t *testing.T) {
	store := &mockStore{}
	assert.Equal(t, int64(0), NewInvalidator(store).Invalidate(context.Background()))
	store.AssertNotCalled(t, "DeleteMatching", mock.Anything, mock.Anything)
}

func TestInvalidator_MemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	for _, k := range []string{"projetos:list:all:20", "projetos:id:7", "projetos:id:70", "dashboard:stats:admin"} {
		require.NoError(t, store.SetWithTTL(ctx, k, []byte("x"), time.Minute))
	}

	n := NewInvalidator(store).Invalidate(ctx, Prefix("projetos:list"), Exact("projetos:id:7"))
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2, store.Len())
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, Pattern("projetos:list:*"), Prefix("projetos:list"))
	assert.Equal(t, Pattern("projetos:id:7"), Exact("projetos:id:7"))
	assert.Equal(t, Pattern(`move:cost:\{"volume":\[1\]\}`), Exact(`move:cost:{"volume":[1]}`))
}

func TestPatternSet(t *testing.T) {
	ps := PatternSet{
		OnAnyWrite: []Pattern{"projetos:list:*", "dashboard:stats:*"},
		Entity: func(id any) []Pattern {
			return []Pattern{Exact(JoinKey("projetos", "id", id))}
		},
	}

	assert.Equal(t, []Pattern{"projetos:list:*", "dashboard:stats:*"}, ps.ForCreate())
	assert.Equal(t, []Pattern{"projetos:list:*", "dashboard:stats:*", "projetos:id:9"}, ps.ForUpdate(9))
	assert.Equal(t, []Pattern{"projetos:list:*", "dashboard:stats:*", "projetos:id:9"}, ps.ForDelete(9))

	// Rendering entity patterns must not leak into the shared slice.
	assert.Len(t, ps.OnAnyWrite, 2)
}
