package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/repository"
	"MachiNavi-App/internal/domain/service"
)

// MarkersResponse はマップ描画用のマーカーペイロード
type MarkersResponse struct {
	Features *geojson.FeatureCollection `json:"features"`
	Region   *model.Region              `json:"region,omitempty"`
}

// MapMarkersUseCase はマップ画面向けのマーカー集約を提供する
type MapMarkersUseCase interface {
	// GetMarkers は指定ウィンドウでアクティブなイベントのマーカー群を返す
	// todayはis_today判定の基準日で、常に呼び出し側が与える
	GetMarkers(ctx context.Context, windowKind string, date, today time.Time) (*MarkersResponse, error)

	// GetLandmarks はカテゴリで絞り込んだランドマークのマーカー群を返す
	GetLandmarks(ctx context.Context, category string) (*MarkersResponse, error)
}

// mapMarkersUseCaseImpl はMapMarkersUseCaseの実装
type mapMarkersUseCaseImpl struct {
	snapshot   *EventSnapshotProvider
	placesRepo repository.PlacesRepository
	aggregator *service.EventAggregator
	recurrence *service.RecurrenceResolver
}

// NewMapMarkersUseCase は新しいMapMarkersUseCaseインスタンスを作成
func NewMapMarkersUseCase(
	snapshot *EventSnapshotProvider,
	placesRepo repository.PlacesRepository,
	aggregator *service.EventAggregator,
	recurrence *service.RecurrenceResolver,
) MapMarkersUseCase {
	return &mapMarkersUseCaseImpl{
		snapshot:   snapshot,
		placesRepo: placesRepo,
		aggregator: aggregator,
		recurrence: recurrence,
	}
}

// GetMarkers はイベントマーカーのFeatureCollectionと表示領域を返す
func (u *mapMarkersUseCaseImpl) GetMarkers(ctx context.Context, windowKind string, date, today time.Time) (*MarkersResponse, error) {
	win, err := windowOf(windowKind, date)
	if err != nil {
		return nil, err
	}

	events, err := u.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := u.aggregator.BuildMarkers(ctx, events, win)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, g := range groups {
		coord := g.Representative.Location.Coord
		if coord == nil {
			// 住所のみ解決できたグループは地図に置けない
			continue
		}

		feature := geojson.NewFeature(orb.Point{coord.Lng, coord.Lat})
		feature.ID = g.Key
		feature.Properties = geojson.Properties{
			"key":         g.Key,
			"title":       g.Representative.Event.Title,
			"event_count": len(g.Members),
			"icon_key":    helper.IconEvent,
			"is_today":    u.anyOccursOn(g, today),
		}
		fc.Append(feature)
	}

	return &MarkersResponse{
		Features: fc,
		Region:   helper.RegionForGroups(groups),
	}, nil
}

// anyOccursOn はグループ内のいずれかのイベントが基準日に開催されるかチェック
func (u *mapMarkersUseCaseImpl) anyOccursOn(g *model.EventGroup, day time.Time) bool {
	for _, member := range g.Members {
		if u.recurrence.OccursOn(member.Event, day) {
			return true
		}
	}
	return false
}

// GetLandmarks はランドマークマーカーのFeatureCollectionと表示領域を返す
func (u *mapMarkersUseCaseImpl) GetLandmarks(ctx context.Context, category string) (*MarkersResponse, error) {
	places, err := u.placesRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ランドマーク一覧の取得に失敗: %w", err)
	}

	var matched []*model.Place
	fc := geojson.NewFeatureCollection()
	for _, p := range places {
		if !helper.MatchesCategory(p, category) {
			continue
		}
		coord, err := p.ToLatLng()
		if err != nil {
			// 座標が壊れたレコードはスキップして続行
			continue
		}
		matched = append(matched, p)

		feature := geojson.NewFeature(orb.Point{coord.Lng, coord.Lat})
		feature.ID = p.ID
		feature.Properties = geojson.Properties{
			"name":                p.Name,
			"address":             p.Address,
			"icon_key":            helper.IconKeyFor(p, category),
			"accessible_restroom": p.AccessibleRestroom,
		}
		fc.Append(feature)
	}

	return &MarkersResponse{
		Features: fc,
		Region:   helper.RegionForPlaces(matched),
	}, nil
}

// windowOf は種別文字列からウィンドウを作る
func windowOf(kind string, date time.Time) (model.Window, error) {
	switch kind {
	case "day":
		return helper.DayWindowOf(date), nil
	case "week":
		return helper.WeekWindowOf(date), nil
	case "month":
		return helper.MonthWindowOf(date), nil
	}
	return model.Window{}, fmt.Errorf("不明なウィンドウ種別: %s", kind)
}
