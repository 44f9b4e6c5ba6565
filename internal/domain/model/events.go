package model

// FrequencyConstants はイベントの繰り返し頻度の定数
const (
	FrequencyOnce   = "once"
	FrequencyWeekly = "weekly"
)

// Recurrence はイベントの繰り返しルール
// Frequencyが"weekly"の場合、DaysOfWeekに開催曜日（"mon"〜"sun"）が入る
type Recurrence struct {
	Frequency  string   `json:"frequency,omitempty" firestore:"frequency,omitempty"`
	DaysOfWeek []string `json:"daysOfWeek,omitempty" firestore:"daysOfWeek,omitempty"`
	StartDate  string   `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty" firestore:"endDate,omitempty"`
}

// Event はデータストアから取得したイベントレコード（イミュータブルな入力）
// 日付は"YYYY-MM-DD"、時刻は表示専用の"HH:MM"文字列
type Event struct {
	ID            string      `json:"id" firestore:"-"`
	Title         string      `json:"title" firestore:"title"`
	Description   string      `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	StartDate     string      `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	EndDate       string      `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	StartTime     string      `json:"eventStartTime,omitempty" firestore:"eventStartTime,omitempty"`
	EndTime       string      `json:"eventEndTime,omitempty" firestore:"eventEndTime,omitempty"`
	OpenToPublic  bool        `json:"openToPublic" firestore:"openToPublic"`
	Recurrence    *Recurrence `json:"recurrence,omitempty" firestore:"recurrence,omitempty"`
	LocationID    string      `json:"locationId,omitempty" firestore:"locationId,omitempty"`
	CustomAddress string      `json:"customAddress,omitempty" firestore:"customAddress,omitempty"`
	Lat           *float64    `json:"lat,omitempty" firestore:"lat,omitempty"`
	Lng           *float64    `json:"lng,omitempty" firestore:"lng,omitempty"`
}

// HasRecurrence は繰り返しルールが存在するかチェック
func (e *Event) HasRecurrence() bool {
	return e.Recurrence != nil && e.Recurrence.Frequency != ""
}

// Frequency は繰り返し頻度を返す（ルールなしは"once"扱い）
func (e *Event) Frequency() string {
	if !e.HasRecurrence() {
		return FrequencyOnce
	}
	return e.Recurrence.Frequency
}

// EffectiveStartDate は実効開始日を返す
// 繰り返しルールの開始日を優先し、未設定ならイベント自身の開始日にフォールバック
func (e *Event) EffectiveStartDate() string {
	if e.Recurrence != nil && e.Recurrence.StartDate != "" {
		return e.Recurrence.StartDate
	}
	return e.StartDate
}

// EffectiveEndDate は実効終了日を返す（未設定の場合は空文字列）
func (e *Event) EffectiveEndDate() string {
	if e.Recurrence != nil && e.Recurrence.EndDate != "" {
		return e.Recurrence.EndDate
	}
	return e.EndDate
}

// HasOwnCoordinates は緯度経度の上書き値を両方持つかチェック
func (e *Event) HasOwnCoordinates() bool {
	return e.Lat != nil && e.Lng != nil
}
