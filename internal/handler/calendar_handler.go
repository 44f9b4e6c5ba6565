package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/usecase"
)

// CalendarHandler はカレンダー画面向けAPIのハンドラー
type CalendarHandler struct {
	calendarUseCase usecase.CalendarUseCase
}

// NewCalendarHandler は新しいCalendarHandlerインスタンスを作成
func NewCalendarHandler(calendarUseCase usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{calendarUseCase: calendarUseCase}
}

// GetCalendarEvents は指定日のイベント一覧を返すエンドポイント
// GET /api/calendar/events?date=YYYY-MM-DD（省略時は当日）
func (h *CalendarHandler) GetCalendarEvents(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := helper.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "dateの形式が正しくありません",
				"details": err.Error(),
			})
			return
		}
		day = parsed
	}

	events, err := h.calendarUseCase.GetEventsOnDay(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "イベント一覧の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   helper.FormatDate(day),
		"events": events,
	})
}

// GetMarkedDates は指定月の開催日一覧を返すエンドポイント
// GET /api/calendar/marked?date=YYYY-MM-DD（その日を含む月が対象）
func (h *CalendarHandler) GetMarkedDates(c *gin.Context) {
	monthOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := helper.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "dateの形式が正しくありません",
				"details": err.Error(),
			})
			return
		}
		monthOf = parsed
	}

	dates, err := h.calendarUseCase.GetMarkedDates(c.Request.Context(), monthOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "開催日一覧の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_dates": dates})
}

// GetICSFeed はiCalendarフィードを返すエンドポイント
// GET /api/calendar/feed.ics
func (h *CalendarHandler) GetICSFeed(c *gin.Context) {
	feed, err := h.calendarUseCase.ExportICS(c.Request.Context(), "MachiNavi Events")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "カレンダーフィードの生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
