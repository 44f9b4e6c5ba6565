package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/usecase"
)

// fakeEventsRepository はテスト用のインメモリEventsRepository
type fakeEventsRepository struct {
	events []*model.Event
	err    error
	calls  int
}

func (r *fakeEventsRepository) GetAll(ctx context.Context) ([]*model.Event, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.events, nil
}

func TestEventSnapshotProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("鮮度内の再読み込みはキャッシュを返す", func(t *testing.T) {
		repo := &fakeEventsRepository{events: []*model.Event{{ID: "e1"}}}
		provider := usecase.NewEventSnapshotProvider(repo, 10*time.Minute)

		first, err := provider.Load(ctx)
		require.NoError(t, err)
		second, err := provider.Load(ctx)
		require.NoError(t, err)

		assert.Len(t, first, 1)
		assert.Len(t, second, 1)
		assert.Equal(t, 1, repo.calls, "鮮度内は再取得しない")
	})

	t.Run("Refreshはアトミックに置き換える", func(t *testing.T) {
		repo := &fakeEventsRepository{events: []*model.Event{{ID: "e1"}}}
		provider := usecase.NewEventSnapshotProvider(repo, 10*time.Minute)

		require.NoError(t, provider.Refresh(ctx))
		repo.events = []*model.Event{{ID: "e1"}, {ID: "e2"}}
		require.NoError(t, provider.Refresh(ctx))

		events, err := provider.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("更新失敗時は前回のスナップショットで続行する", func(t *testing.T) {
		repo := &fakeEventsRepository{events: []*model.Event{{ID: "e1"}}}
		provider := usecase.NewEventSnapshotProvider(repo, time.Duration(0))

		_, err := provider.Load(ctx)
		require.NoError(t, err)

		repo.err = fmt.Errorf("firestore unavailable")
		events, err := provider.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("スナップショットが一度も取れない場合はエラー", func(t *testing.T) {
		repo := &fakeEventsRepository{err: fmt.Errorf("firestore unavailable")}
		provider := usecase.NewEventSnapshotProvider(repo, 10*time.Minute)

		_, err := provider.Load(ctx)
		assert.Error(t, err)
	})
}
