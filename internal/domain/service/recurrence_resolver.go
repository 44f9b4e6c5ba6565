package service

import (
	"log"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
)

// weekdayMap はストア上の曜日文字列からtime.Weekdayへのマッピング
var weekdayMap = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// rruleWeekdayMap は曜日文字列からRRULEのBYDAY値へのマッピング
var rruleWeekdayMap = map[string]rrule.Weekday{
	"sun": rrule.SU,
	"mon": rrule.MO,
	"tue": rrule.TU,
	"wed": rrule.WE,
	"thu": rrule.TH,
	"fri": rrule.FR,
	"sat": rrule.SA,
}

// RecurrenceResolver は1つのイベントと1つの時間的照会に対して
// イベントが「アクティブ」かどうかを判定する
type RecurrenceResolver struct{}

// NewRecurrenceResolver は新しいRecurrenceResolverインスタンスを作成
func NewRecurrenceResolver() *RecurrenceResolver {
	return &RecurrenceResolver{}
}

// effectiveRange はイベントの実効日付範囲を解決する
// 開始日が解析できないイベントは全ての照会から除外される（ok=false）
// 終了日が未設定・不正の場合はhasEnd=falseで返し、各照会のルールに従って補完する
func (r *RecurrenceResolver) effectiveRange(e *model.Event) (start, end time.Time, hasEnd, ok bool) {
	start, err := helper.ParseDate(e.EffectiveStartDate())
	if err != nil {
		return time.Time{}, time.Time{}, false, false
	}

	if raw := e.EffectiveEndDate(); raw != "" {
		if parsed, err := helper.ParseDate(raw); err == nil {
			return start, parsed, true, true
		}
	}
	return start, time.Time{}, false, true
}

// IsActiveInWindow はイベントが指定ウィンドウ内でアクティブかどうかを判定する
//   - "once"（ルールなし・未知の頻度を含む）: 実効範囲とウィンドウの交差で判定。
//     終了日未設定は開始日のみの単発イベント扱い
//   - "weekly": 終了日未設定はウィンドウ終端まで続く扱い。
//     曜日セットが空のルールは不正とみなし常に非アクティブ
func (r *RecurrenceResolver) IsActiveInWindow(e *model.Event, windowStart, windowEnd time.Time) bool {
	start, end, hasEnd, ok := r.effectiveRange(e)
	if !ok {
		return false
	}

	if e.Frequency() == model.FrequencyWeekly {
		if len(e.Recurrence.DaysOfWeek) == 0 {
			return false
		}
		if !hasEnd {
			end = windowEnd
		}
		return helper.Overlaps(start, end, windowStart, windowEnd)
	}

	if !hasEnd {
		end = start
	}
	return helper.Overlaps(start, end, windowStart, windowEnd)
}

// OccursOn はイベントが指定の暦日に開催されるかどうかを判定する
// dayはそのロケーションでの暦日として解釈され、時刻とタイムゾーンは
// 判定に影響しない
func (r *RecurrenceResolver) OccursOn(e *model.Event, day time.Time) bool {
	start, end, hasEnd, ok := r.effectiveRange(e)
	if !ok {
		return false
	}
	day = helper.Truncate(day)

	if e.Frequency() == model.FrequencyWeekly {
		if !r.weekdayMatches(e.Recurrence.DaysOfWeek, day.Weekday()) {
			return false
		}
		if !hasEnd {
			end = day
		}
		return helper.Contains(day, start, end)
	}

	if !hasEnd {
		return helper.SameDate(day, start)
	}
	return helper.Contains(day, start, end)
}

// weekdayMatches は曜日が曜日セットに含まれるかチェック
// 空のセットはルール不正として常にfalse
func (r *RecurrenceResolver) weekdayMatches(daysOfWeek []string, weekday time.Weekday) bool {
	for _, d := range daysOfWeek {
		if wd, ok := weekdayMap[normalizeWeekday(d)]; ok && wd == weekday {
			return true
		}
	}
	return false
}

func normalizeWeekday(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToLower(s)
}

// OccurrencesInWindow はウィンドウ内の具体的な開催日を展開する
// weeklyはRRULEの展開に委譲し、onceは範囲内の各日を開催日とする
func (r *RecurrenceResolver) OccurrencesInWindow(e *model.Event, win model.Window) []time.Time {
	start, end, hasEnd, ok := r.effectiveRange(e)
	if !ok {
		return nil
	}
	winStart := helper.Truncate(win.Start)
	winEnd := helper.Truncate(win.End)

	if e.Frequency() == model.FrequencyWeekly {
		if len(e.Recurrence.DaysOfWeek) == 0 {
			return nil
		}
		if !hasEnd {
			end = winEnd
		}

		var byweekday []rrule.Weekday
		for _, d := range e.Recurrence.DaysOfWeek {
			if wd, found := rruleWeekdayMap[normalizeWeekday(d)]; found {
				byweekday = append(byweekday, wd)
			}
		}
		if len(byweekday) == 0 {
			return nil
		}

		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   start,
			Until:     end,
			Byweekday: byweekday,
		})
		if err != nil {
			log.Printf("⚠️ 繰り返しルールの展開に失敗 (id=%s): %v", e.ID, err)
			return nil
		}
		return rule.Between(winStart, winEnd, true)
	}

	if !hasEnd {
		end = start
	}
	if start.Before(winStart) {
		start = winStart
	}
	if end.After(winEnd) {
		end = winEnd
	}

	var occurrences []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		occurrences = append(occurrences, cur)
	}
	return occurrences
}
