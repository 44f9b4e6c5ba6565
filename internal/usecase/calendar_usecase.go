package usecase

import (
	"context"
	"time"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/service"
)

// addressUnavailable は住所が解決できなかった場合の表示文字列
const addressUnavailable = "Address not available"

// CalendarUseCase はカレンダー画面向けのイベント照会を提供する
type CalendarUseCase interface {
	// GetEventsOnDay は指定日のイベントを開始時刻順・住所解決済みで返す
	GetEventsOnDay(ctx context.Context, day time.Time) ([]*model.CalendarEvent, error)

	// GetMarkedDates は指定日を含む月の開催日一覧を返す
	GetMarkedDates(ctx context.Context, monthOf time.Time) ([]string, error)

	// ExportICS はイベントセットをiCalendarフィードとして書き出す
	ExportICS(ctx context.Context, calendarName string) (string, error)
}

// calendarUseCaseImpl はCalendarUseCaseの実装
type calendarUseCaseImpl struct {
	snapshot   *EventSnapshotProvider
	location   *service.LocationResolver
	aggregator *service.EventAggregator
	exporter   *service.ICSExporter
}

// NewCalendarUseCase は新しいCalendarUseCaseインスタンスを作成
func NewCalendarUseCase(
	snapshot *EventSnapshotProvider,
	location *service.LocationResolver,
	aggregator *service.EventAggregator,
	exporter *service.ICSExporter,
) CalendarUseCase {
	return &calendarUseCaseImpl{
		snapshot:   snapshot,
		location:   location,
		aggregator: aggregator,
		exporter:   exporter,
	}
}

// GetEventsOnDay は指定日のイベント一覧を返す
// 位置が未解決のイベントも日付のみの一覧には残す
func (u *calendarUseCaseImpl) GetEventsOnDay(ctx context.Context, day time.Time) ([]*model.CalendarEvent, error) {
	events, err := u.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}

	dayEvents := u.aggregator.EventsOnDay(events, day)
	resolved, err := u.location.ResolveAll(ctx, dayEvents)
	if err != nil {
		return nil, err
	}

	result := make([]*model.CalendarEvent, 0, len(resolved))
	for _, re := range resolved {
		address := re.Location.Address
		if address == "" {
			address = addressUnavailable
		}
		result = append(result, &model.CalendarEvent{
			Event:   re.Event,
			Address: address,
		})
	}
	return result, nil
}

// GetMarkedDates はカレンダーのドット表示用に月内の開催日を返す
func (u *calendarUseCaseImpl) GetMarkedDates(ctx context.Context, monthOf time.Time) ([]string, error) {
	events, err := u.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return u.aggregator.MarkedDates(events, helper.MonthWindowOf(monthOf)), nil
}

// ExportICS はイベント全件をiCalendar形式にシリアライズする
func (u *calendarUseCaseImpl) ExportICS(ctx context.Context, calendarName string) (string, error) {
	events, err := u.snapshot.Load(ctx)
	if err != nil {
		return "", err
	}
	return u.exporter.Export(events, calendarName), nil
}
