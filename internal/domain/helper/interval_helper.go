package helper

import (
	"fmt"
	"time"

	"MachiNavi-App/internal/domain/model"
)

// InvalidDateError は必須フィールドの日付文字列が解析できない場合のエラー
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("日付文字列を解釈できません: %q", e.Value)
}

const dateLayout = "2006-01-02"

// ParseDate は"YYYY-MM-DD"形式の日付文字列を解析する
// ISO 8601のタイムスタンプが来た場合は日付部分のみを使う
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: s}
	}
	return t, nil
}

// FormatDate は日付を"YYYY-MM-DD"形式の文字列に変換する
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Truncate は時刻を暦日のみに正規化する
// 日付は常にUTC深夜の瞬間として扱い、照会側のタイムゾーンに
// 依存せずParseDateの返す日付と同じ座標系で比較できるようにする
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate は2つの時刻が同じ暦日かチェック（時刻は無視）
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Overlaps は2つの閉区間が交差するかチェック
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Contains は点が閉区間に含まれるかチェック
func Contains(point, start, end time.Time) bool {
	return !point.Before(start) && !point.After(end)
}

// DayBounds は指定日の開始時刻と終了時刻を返す
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := Truncate(date)
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

// WeekBounds は指定日を含むISO週の範囲を返す（月曜00:00〜日曜23:59:59）
// ロケールに関わらず週の開始は月曜
func WeekBounds(date time.Time) (time.Time, time.Time) {
	day := Truncate(date)
	offset := int(day.Weekday()-time.Monday+7) % 7
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6).Add(24*time.Hour - time.Second)
	return monday, sunday
}

// MonthBounds は指定日を含む月の初日と最終瞬間を返す
func MonthBounds(date time.Time) (time.Time, time.Time) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, 0).Add(-time.Second)
	return first, last
}

// DayWindowOf は指定日1日分のウィンドウを作る
func DayWindowOf(date time.Time) model.Window {
	start, end := DayBounds(date)
	return model.Window{Start: start, End: end}
}

// WeekWindowOf は指定日を含む週のウィンドウを作る
func WeekWindowOf(date time.Time) model.Window {
	start, end := WeekBounds(date)
	return model.Window{Start: start, End: end}
}

// MonthWindowOf は指定日を含む月のウィンドウを作る
func MonthWindowOf(date time.Time) model.Window {
	start, end := MonthBounds(date)
	return model.Window{Start: start, End: end}
}
