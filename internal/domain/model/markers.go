package model

import "time"

// Window は照会対象の時間範囲（日・週・月）
// 参照時刻は常に呼び出し側が与える。コア内部で現在時刻は読まない
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolvedLocation はイベントの実効位置（上書き→参照→未解決の順で決定）
type ResolvedLocation struct {
	Address string  `json:"address"`
	Coord   *LatLng `json:"coord,omitempty"`
}

// IsResolved は住所か座標のいずれかが解決済みかチェック
func (l *ResolvedLocation) IsResolved() bool {
	return l.Address != "" || l.Coord != nil
}

// ResolvedEvent は入力イベントに実効位置とグルーピングキーを付与した派生レコード
// 入力スナップショットは変更せず、常に新しい派生値として作る
type ResolvedEvent struct {
	Event    *Event           `json:"event"`
	Location ResolvedLocation `json:"location"`
	Key      string           `json:"key"`
}

// EventGroup は同一位置のイベントを束ねた1つのマップマーカー
// 集約パスごとに作り直されるエフェメラルな値で、永続化しない
type EventGroup struct {
	Key            string           `json:"key"`
	Representative *ResolvedEvent   `json:"representative"`
	Members        []*ResolvedEvent `json:"members"`
}

// CalendarEvent はカレンダー表示用のイベント（解決済み住所付き）
type CalendarEvent struct {
	Event   *Event `json:"event"`
	Address string `json:"address"`
}

// Region はマーカー群を収めるマップ表示領域
type Region struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}
