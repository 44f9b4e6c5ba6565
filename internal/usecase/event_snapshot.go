package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
)

// EventSnapshotProvider はイベントスナップショットのインメモリキャッシュ
// 集約パスは1つのイミュータブルなスナップショットだけを読む。
// 更新は全件取得が成功した場合にのみアトミックに置き換え、
// 部分的な結果で上書きすることはない
type EventSnapshotProvider struct {
	eventsRepo repository.EventsRepository
	maxAge     time.Duration

	mu       sync.RWMutex
	events   []*model.Event
	loadedAt time.Time
}

// NewEventSnapshotProvider は新しいEventSnapshotProviderインスタンスを作成
func NewEventSnapshotProvider(eventsRepo repository.EventsRepository, maxAge time.Duration) *EventSnapshotProvider {
	return &EventSnapshotProvider{
		eventsRepo: eventsRepo,
		maxAge:     maxAge,
	}
}

// Load はスナップショットを返す。鮮度が切れている場合は再取得する
func (p *EventSnapshotProvider) Load(ctx context.Context) ([]*model.Event, error) {
	p.mu.RLock()
	events, loadedAt := p.events, p.loadedAt
	p.mu.RUnlock()

	if events != nil && time.Since(loadedAt) < p.maxAge {
		return events, nil
	}

	if err := p.Refresh(ctx); err != nil {
		if events != nil {
			// 古いスナップショットが残っていればそれで処理を続ける
			log.Printf("⚠️ スナップショット更新に失敗、前回分を使用 (取得時刻: %s): %v",
				loadedAt.Format(time.RFC3339), err)
			return events, nil
		}
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.events, nil
}

// Refresh はスナップショットを強制的に再取得してアトミックに置き換える
func (p *EventSnapshotProvider) Refresh(ctx context.Context) error {
	events, err := p.eventsRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("イベントスナップショットの更新に失敗: %w", err)
	}

	p.mu.Lock()
	p.events = events
	p.loadedAt = time.Now()
	p.mu.Unlock()

	log.Printf("✅ イベントスナップショット更新完了: %d件", len(events))
	return nil
}
