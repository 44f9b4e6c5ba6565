package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
)

// EventAggregator は位置解決と繰り返し判定を組み合わせて、
// ウィンドウごとのマーカーセットとカレンダー表示用のイベント列を作る
type EventAggregator struct {
	recurrence *RecurrenceResolver
	location   *LocationResolver
}

// NewEventAggregator は新しいEventAggregatorインスタンスを作成
func NewEventAggregator(recurrence *RecurrenceResolver, location *LocationResolver) *EventAggregator {
	return &EventAggregator{
		recurrence: recurrence,
		location:   location,
	}
}

// BuildMarkers はウィンドウ内でアクティブなイベントを実効位置でグルーピングする
//  1. 全イベントの位置を解決し、完全に未解決のものは除外
//  2. ウィンドウ内でアクティブなイベントのみ残す
//  3. グルーピングキーで分割。グループ内の順序は入力順、
//     グループ自体の順序はキーの初出順（再ソートしない）
//
// 1レコードの不備は他レコードの処理を妨げない。
// パスが完走しなかった場合は部分結果を返さずエラーで破棄する
func (a *EventAggregator) BuildMarkers(ctx context.Context, events []*model.Event, win model.Window) ([]*model.EventGroup, error) {
	resolved, err := a.location.ResolveAll(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("マーカー集約に失敗: %w", err)
	}

	groupsByKey := make(map[string]*model.EventGroup)
	var groups []*model.EventGroup

	for _, re := range resolved {
		if !re.Location.IsResolved() {
			// 位置が全く解決できないイベントは地図出力から除外（日付のみの一覧には残る）
			continue
		}
		if !a.recurrence.IsActiveInWindow(re.Event, win.Start, win.End) {
			continue
		}

		group, ok := groupsByKey[re.Key]
		if !ok {
			group = &model.EventGroup{Key: re.Key, Representative: re}
			groupsByKey[re.Key] = group
			groups = append(groups, group)
		}
		group.Members = append(group.Members, re)
	}

	return groups, nil
}

// EventsOnDay は指定日に開催されるイベントを開始時刻の昇順で返す
// 時刻は"HH:MM"の辞書順比較で、時刻未設定のイベントが先頭に来る。
// 位置が未解決のイベントもここでは除外しない
func (a *EventAggregator) EventsOnDay(events []*model.Event, day time.Time) []*model.Event {
	var matched []*model.Event
	for _, e := range events {
		if a.recurrence.OccursOn(e, day) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartTime < matched[j].StartTime
	})
	return matched
}

// MarkedDates はウィンドウ内で1件以上の開催がある日付("YYYY-MM-DD")を
// 昇順で返す。カレンダーのドット表示用
func (a *EventAggregator) MarkedDates(events []*model.Event, win model.Window) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		for _, occ := range a.recurrence.OccurrencesInWindow(e, win) {
			seen[helper.FormatDate(occ)] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
