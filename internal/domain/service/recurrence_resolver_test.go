package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// onceEvent は単発イベントを作るテストヘルパー
func onceEvent(id, startDate, endDate string) *model.Event {
	return &model.Event{
		ID:        id,
		Title:     "テストイベント " + id,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

// weeklyEvent はweekly繰り返しイベントを作るテストヘルパー
func weeklyEvent(id string, daysOfWeek []string, startDate, endDate string) *model.Event {
	return &model.Event{
		ID:    id,
		Title: "テストイベント " + id,
		Recurrence: &model.Recurrence{
			Frequency:  model.FrequencyWeekly,
			DaysOfWeek: daysOfWeek,
			StartDate:  startDate,
			EndDate:    endDate,
		},
	}
}

func TestRecurrenceResolver_IsActiveInWindow(t *testing.T) {
	resolver := service.NewRecurrenceResolver()
	june := helper.MonthWindowOf(date(2024, time.June, 15))

	t.Run("単発イベントはウィンドウとの交差でアクティブ", func(t *testing.T) {
		eventA := onceEvent("A", "2024-06-01", "2024-06-03")
		assert.True(t, resolver.IsActiveInWindow(eventA, june.Start, june.End))
	})

	t.Run("範囲外の単発イベントは非アクティブ", func(t *testing.T) {
		event := onceEvent("may", "2024-05-10", "2024-05-12")
		assert.False(t, resolver.IsActiveInWindow(event, june.Start, june.End))
	})

	t.Run("終了日未設定は開始日のみの単発イベント扱い", func(t *testing.T) {
		event := onceEvent("point", "2024-06-30", "")
		assert.True(t, resolver.IsActiveInWindow(event, june.Start, june.End))

		july := helper.MonthWindowOf(date(2024, time.July, 1))
		assert.False(t, resolver.IsActiveInWindow(event, july.Start, july.End))
	})

	t.Run("weeklyは終了日未設定ならウィンドウ終端まで続く", func(t *testing.T) {
		event := weeklyEvent("openend", []string{"mon"}, "2024-01-15", "")
		assert.True(t, resolver.IsActiveInWindow(event, june.Start, june.End))
	})

	t.Run("曜日セットが空のweeklyは常に非アクティブ", func(t *testing.T) {
		event := weeklyEvent("empty", nil, "2024-06-01", "2024-06-30")
		assert.False(t, resolver.IsActiveInWindow(event, june.Start, june.End))
	})

	t.Run("未知の頻度はonceとして扱う", func(t *testing.T) {
		event := &model.Event{
			ID: "monthly",
			Recurrence: &model.Recurrence{
				Frequency: "monthly",
				StartDate: "2024-06-10",
			},
		}
		assert.True(t, resolver.IsActiveInWindow(event, june.Start, june.End))
	})

	t.Run("開始日のないイベントは決してアクティブにならない", func(t *testing.T) {
		event := &model.Event{ID: "nostart", Title: "開始日なし"}
		assert.False(t, resolver.IsActiveInWindow(event, june.Start, june.End))
	})

	t.Run("繰り返しルールの日付がイベント自身の日付より優先される", func(t *testing.T) {
		event := &model.Event{
			ID:        "override",
			StartDate: "2023-01-01",
			EndDate:   "2023-01-31",
			Recurrence: &model.Recurrence{
				Frequency:  model.FrequencyWeekly,
				DaysOfWeek: []string{"wed"},
				StartDate:  "2024-06-01",
				EndDate:    "2024-06-30",
			},
		}
		assert.True(t, resolver.IsActiveInWindow(event, june.Start, june.End))

		jan := helper.MonthWindowOf(date(2023, time.January, 15))
		assert.False(t, resolver.IsActiveInWindow(event, jan.Start, jan.End))
	})
}

func TestRecurrenceResolver_OccursOn(t *testing.T) {
	resolver := service.NewRecurrenceResolver()

	t.Run("単発イベントは範囲内の日に開催", func(t *testing.T) {
		eventA := onceEvent("A", "2024-06-01", "2024-06-03")
		assert.True(t, resolver.OccursOn(eventA, date(2024, time.June, 2)))
		assert.False(t, resolver.OccursOn(eventA, date(2024, time.June, 5)))
	})

	t.Run("終了日未設定は開始日当日のみ開催", func(t *testing.T) {
		event := onceEvent("point", "2024-06-10", "")
		assert.True(t, resolver.OccursOn(event, date(2024, time.June, 10)))
		assert.False(t, resolver.OccursOn(event, date(2024, time.June, 11)))
		assert.False(t, resolver.OccursOn(event, date(2024, time.June, 9)))
	})

	t.Run("時刻は無視して暦日で比較する", func(t *testing.T) {
		event := onceEvent("point", "2024-06-10", "")
		assert.True(t, resolver.OccursOn(event, time.Date(2024, time.June, 10, 18, 45, 0, 0, time.UTC)))
	})

	t.Run("UTC以外のタイムゾーンでも暦日で判定する", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		pst := time.FixedZone("PST", -8*60*60)

		// 範囲初日の午前をJSTで渡してもtrue（瞬間比較だとUTC深夜より前になる）
		eventA := onceEvent("A", "2024-06-01", "2024-06-03")
		assert.True(t, resolver.OccursOn(eventA, time.Date(2024, time.June, 1, 10, 0, 0, 0, jst)))
		assert.False(t, resolver.OccursOn(eventA, time.Date(2024, time.June, 4, 10, 0, 0, 0, jst)))

		// 2024-06-01は土曜。weeklyの曜日判定もそのゾーンでの暦日に従う
		satEvent := weeklyEvent("sat", []string{"sat"}, "2024-06-01", "2024-06-30")
		assert.True(t, resolver.OccursOn(satEvent, time.Date(2024, time.June, 1, 10, 0, 0, 0, jst)))
		assert.True(t, resolver.OccursOn(satEvent, time.Date(2024, time.June, 1, 22, 0, 0, 0, pst)))
		assert.False(t, resolver.OccursOn(satEvent, time.Date(2024, time.June, 2, 10, 0, 0, 0, jst)))
	})

	t.Run("weeklyは曜日と日付範囲の両方で判定", func(t *testing.T) {
		// 2024-06-05は水曜、2024-06-06は木曜
		eventB := weeklyEvent("B", []string{"mon", "wed"}, "2024-06-01", "2024-06-30")
		assert.True(t, resolver.OccursOn(eventB, date(2024, time.June, 5)))
		assert.False(t, resolver.OccursOn(eventB, date(2024, time.June, 6)))
		assert.True(t, resolver.OccursOn(eventB, date(2024, time.June, 3)))
	})

	t.Run("weeklyは曜日が合っても範囲外なら開催しない", func(t *testing.T) {
		eventB := weeklyEvent("B", []string{"mon", "wed"}, "2024-06-01", "2024-06-30")
		// 2024-07-01は月曜だが範囲外
		assert.False(t, resolver.OccursOn(eventB, date(2024, time.July, 1)))
	})

	t.Run("weeklyの曜日不一致は範囲に関係なくfalse", func(t *testing.T) {
		eventB := weeklyEvent("B", []string{"mon", "wed"}, "2024-06-01", "2024-06-30")
		for day := 1; day <= 30; day++ {
			d := date(2024, time.June, day)
			if d.Weekday() != time.Monday && d.Weekday() != time.Wednesday {
				assert.False(t, resolver.OccursOn(eventB, d), "6月%d日", day)
			}
		}
	})

	t.Run("曜日セットが空のweeklyは開催しない", func(t *testing.T) {
		event := weeklyEvent("empty", []string{}, "2024-06-01", "2024-06-30")
		assert.False(t, resolver.OccursOn(event, date(2024, time.June, 5)))
	})

	t.Run("大文字や完全な曜日名も受け付ける", func(t *testing.T) {
		event := weeklyEvent("caps", []string{"Wednesday"}, "2024-06-01", "2024-06-30")
		assert.True(t, resolver.OccursOn(event, date(2024, time.June, 5)))
	})
}

func TestRecurrenceResolver_WindowAndDayAgree(t *testing.T) {
	resolver := service.NewRecurrenceResolver()

	// 終了日が定義されたonceイベントでは、1日ウィンドウの判定とOccursOnが一致する
	eventA := onceEvent("A", "2024-06-01", "2024-06-03")
	for day := 1; day <= 10; day++ {
		d := date(2024, time.June, day)
		win := helper.DayWindowOf(d)
		assert.Equal(t,
			resolver.OccursOn(eventA, d),
			resolver.IsActiveInWindow(eventA, win.Start, win.End),
			"6月%d日で判定が食い違う", day)
	}

	// 基準日をJSTで渡しても一致は保たれる
	jst := time.FixedZone("JST", 9*60*60)
	for day := 1; day <= 10; day++ {
		d := time.Date(2024, time.June, day, 9, 30, 0, 0, jst)
		win := helper.DayWindowOf(d)
		assert.True(t, resolver.OccursOn(eventA, d) == resolver.IsActiveInWindow(eventA, win.Start, win.End),
			"6月%d日(JST)で判定が食い違う", day)
		assert.Equal(t, day >= 1 && day <= 3, resolver.OccursOn(eventA, d), "6月%d日(JST)", day)
	}
}

func TestRecurrenceResolver_OccurrencesInWindow(t *testing.T) {
	resolver := service.NewRecurrenceResolver()
	june := helper.MonthWindowOf(date(2024, time.June, 15))

	t.Run("単発イベントは範囲内の各日", func(t *testing.T) {
		eventA := onceEvent("A", "2024-06-01", "2024-06-03")
		occurrences := resolver.OccurrencesInWindow(eventA, june)
		assert.Len(t, occurrences, 3)
		assert.Equal(t, date(2024, time.June, 1), occurrences[0])
		assert.Equal(t, date(2024, time.June, 3), occurrences[2])
	})

	t.Run("weeklyは該当曜日のみ展開される", func(t *testing.T) {
		eventB := weeklyEvent("B", []string{"mon", "wed"}, "2024-06-01", "2024-06-30")
		occurrences := resolver.OccurrencesInWindow(eventB, june)
		// 2024年6月の月曜: 3,10,17,24 / 水曜: 5,12,19,26
		assert.Len(t, occurrences, 8)
		for _, occ := range occurrences {
			assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, occ.Weekday())
		}
		assert.Equal(t, date(2024, time.June, 3), occurrences[0])
	})

	t.Run("ウィンドウ外にはみ出た範囲は切り詰める", func(t *testing.T) {
		event := onceEvent("long", "2024-05-30", "2024-06-02")
		occurrences := resolver.OccurrencesInWindow(event, june)
		assert.Len(t, occurrences, 2)
		assert.Equal(t, date(2024, time.June, 1), occurrences[0])
	})

	t.Run("開始日のないイベントは展開されない", func(t *testing.T) {
		event := &model.Event{ID: "nostart"}
		assert.Empty(t, resolver.OccurrencesInWindow(event, june))
	})
}
