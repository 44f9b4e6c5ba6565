package service

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/domain/model"
)

// rruleByDayMap は曜日文字列からRRULEのBYDAYコードへのマッピング
var rruleByDayMap = map[string]string{
	"sun": "SU",
	"mon": "MO",
	"tue": "TU",
	"wed": "WE",
	"thu": "TH",
	"fri": "FR",
	"sat": "SA",
}

// ICSExporter はイベントセットをiCalendarフィードとして書き出す
// 日付は終日イベントとして、weeklyルールはRRULEとして表現する
type ICSExporter struct {
	prodID string
}

// NewICSExporter は新しいICSExporterインスタンスを作成
func NewICSExporter() *ICSExporter {
	return &ICSExporter{prodID: "-//MachiNavi-App//Event Calendar//JA"}
}

// Export はイベントセットをiCalendar形式の文字列にシリアライズする
// 開始日が解析できないイベントと不正なweeklyルールはスキップする
func (x *ICSExporter) Export(events []*model.Event, calendarName string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(x.prodID)
	cal.SetXWRCalName(calendarName)

	for _, e := range events {
		start, err := helper.ParseDate(e.EffectiveStartDate())
		if err != nil {
			continue
		}
		if e.Frequency() == model.FrequencyWeekly && len(e.Recurrence.DaysOfWeek) == 0 {
			continue
		}

		end := start
		hasEnd := false
		if raw := e.EffectiveEndDate(); raw != "" {
			if parsed, perr := helper.ParseDate(raw); perr == nil {
				end = parsed
				hasEnd = true
			}
		}

		ev := cal.AddEvent(e.ID)
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if addr := strings.TrimSpace(e.CustomAddress); addr != "" {
			ev.SetLocation(addr)
		}

		if e.Frequency() == model.FrequencyWeekly {
			// 繰り返しイベントは開始日1日分 + RRULEで表現する
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
			if rule := x.weeklyRule(e.Recurrence, hasEnd, end); rule != "" {
				ev.SetProperty(ics.ComponentPropertyRrule, rule)
			}
			continue
		}

		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1)) // DTENDは排他的
	}

	return cal.Serialize()
}

// weeklyRule はweekly繰り返しルールをRRULE文字列に変換する
// 有効な曜日が1つもない場合は空文字列を返す
func (x *ICSExporter) weeklyRule(rec *model.Recurrence, hasEnd bool, end time.Time) string {
	var days []string
	for _, d := range rec.DaysOfWeek {
		if code, ok := rruleByDayMap[normalizeWeekday(d)]; ok {
			days = append(days, code)
		}
	}
	if len(days) == 0 {
		return ""
	}

	rule := fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", strings.Join(days, ","))
	if hasEnd {
		rule += ";UNTIL=" + end.UTC().Format("20060102T150405Z")
	}
	return rule
}
