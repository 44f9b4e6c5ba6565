package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MachiNavi-App/internal/domain/model"
	"MachiNavi-App/internal/domain/service"
)

func TestICSExporter_Export(t *testing.T) {
	exporter := service.NewICSExporter()

	t.Run("単発イベントは終日イベントとして書き出される", func(t *testing.T) {
		events := []*model.Event{
			{ID: "e1", Title: "Morning Market", StartDate: "2024-06-01", EndDate: "2024-06-03"},
		}
		feed := exporter.Export(events, "MachiNavi Events")

		assert.Contains(t, feed, "BEGIN:VCALENDAR")
		assert.Contains(t, feed, "X-WR-CALNAME:MachiNavi Events")
		assert.Contains(t, feed, "SUMMARY:Morning Market")
		assert.Contains(t, feed, "20240601")
	})

	t.Run("weeklyイベントはRRULEとして書き出される", func(t *testing.T) {
		events := []*model.Event{
			{
				ID:    "e2",
				Title: "Flea Market",
				Recurrence: &model.Recurrence{
					Frequency:  model.FrequencyWeekly,
					DaysOfWeek: []string{"mon", "wed"},
					StartDate:  "2024-06-01",
					EndDate:    "2024-06-30",
				},
			},
		}
		feed := exporter.Export(events, "MachiNavi Events")

		assert.Contains(t, feed, "FREQ=WEEKLY")
		assert.Contains(t, feed, "BYDAY=MO,WE")
		assert.Contains(t, feed, "UNTIL=20240630T000000Z")
	})

	t.Run("開始日のないイベントと不正なweeklyはスキップ", func(t *testing.T) {
		events := []*model.Event{
			{ID: "nostart", Title: "No Start"},
			{
				ID:    "emptydays",
				Title: "Empty Days",
				Recurrence: &model.Recurrence{
					Frequency: model.FrequencyWeekly,
					StartDate: "2024-06-01",
				},
			},
		}
		feed := exporter.Export(events, "MachiNavi Events")

		assert.NotContains(t, feed, "No Start")
		assert.NotContains(t, feed, "Empty Days")
	})

	t.Run("customAddressはLOCATIONに反映される", func(t *testing.T) {
		events := []*model.Event{
			{ID: "e3", Title: "Concert", StartDate: "2024-06-10", CustomAddress: "City Hall"},
		}
		feed := exporter.Export(events, "MachiNavi Events")
		assert.Contains(t, feed, "LOCATION:City Hall")
	})
}
