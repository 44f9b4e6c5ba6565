package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
)

// LocationResolver はイベントの実効位置（座標・住所）を解決する
// customAddressによる上書き → locationIdの参照先Place → 未解決 の優先順
type LocationResolver struct {
	placesRepo    repository.PlacesRepository
	maxGoroutines int
}

// NewLocationResolver は新しいLocationResolverインスタンスを作成
func NewLocationResolver(placesRepo repository.PlacesRepository) *LocationResolver {
	return &LocationResolver{
		placesRepo:    placesRepo,
		maxGoroutines: 5, // 同時ルックアップ数を制限
	}
}

// Resolve は1つのイベントの実効位置を解決し、派生レコードを返す
// ルックアップはイベントごとに最大1回。失敗してもエラーにせず未解決のまま進める
func (r *LocationResolver) Resolve(ctx context.Context, e *model.Event) *model.ResolvedEvent {
	resolved := &model.ResolvedEvent{
		Event: e,
		Key:   GroupingKey(e),
	}

	if custom := strings.TrimSpace(e.CustomAddress); custom != "" {
		resolved.Location.Address = custom
		if e.HasOwnCoordinates() {
			resolved.Location.Coord = &model.LatLng{Lat: *e.Lat, Lng: *e.Lng}
		}
		return resolved
	}

	if e.LocationID != "" {
		place, err := r.placesRepo.GetByID(ctx, e.LocationID)
		if err != nil {
			// リトライしない。未解決のまま処理を続行する
			log.Printf("⚠️ ランドマークの参照に失敗 (event=%s, locationId=%s): %v", e.ID, e.LocationID, err)
			return resolved
		}
		resolved.Location.Address = place.Address
		coord, err := place.ToLatLng()
		if err != nil {
			log.Printf("⚠️ ランドマーク座標の解析に失敗 (event=%s, locationId=%s): %v", e.ID, e.LocationID, err)
			return resolved
		}
		resolved.Location.Coord = coord
		return resolved
	}

	if e.HasOwnCoordinates() {
		resolved.Location.Coord = &model.LatLng{Lat: *e.Lat, Lng: *e.Lng}
	}
	return resolved
}

// ResolveAll は複数イベントの位置解決を並行実行する
// 各ルックアップは読み取り専用で順序非依存のため並行化できるが、
// 結果はインデックスで突き合わせて決定的に返す。
// コンテキストがキャンセルされた場合は部分結果をマージせずパス全体を破棄する
func (r *LocationResolver) ResolveAll(ctx context.Context, events []*model.Event) ([]*model.ResolvedEvent, error) {
	results := make([]*model.ResolvedEvent, len(events))

	// セマフォを使用して同時実行数を制限
	semaphore := make(chan struct{}, r.maxGoroutines)
	var wg sync.WaitGroup

	for i, e := range events {
		wg.Add(1)
		go func(index int, event *model.Event) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[index] = r.Resolve(ctx, event)
		}(i, e)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("位置解決パスが中断されました: %w", err)
	}
	return results, nil
}

// GroupingKey はイベントのグルーピングキーを決定する
// 優先順: customAddress → locationId → 座標文字列 → イベント固有のフォールバック。
// 明示的な住所テキストが共有ランドマーク参照より優先され、位置情報が
// まったく無いイベント同士が誤って1つのマーカーに併合されることはない
func GroupingKey(e *model.Event) string {
	if custom := strings.TrimSpace(e.CustomAddress); custom != "" {
		return custom
	}
	if e.LocationID != "" {
		return e.LocationID
	}
	if e.HasOwnCoordinates() {
		return strconv.FormatFloat(*e.Lat, 'f', -1, 64) + "-" + strconv.FormatFloat(*e.Lng, 'f', -1, 64)
	}
	if e.ID != "" {
		return "event-" + e.ID
	}
	return "event-" + uuid.New().String()
}
