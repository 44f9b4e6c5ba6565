package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MachiNavi-App/internal/domain/helper"
	"MachiNavi-App/internal/usecase"
)

// MarkersHandler はマップ画面向けAPIのハンドラー
type MarkersHandler struct {
	markersUseCase usecase.MapMarkersUseCase
}

// NewMarkersHandler は新しいMarkersHandlerインスタンスを作成
func NewMarkersHandler(markersUseCase usecase.MapMarkersUseCase) *MarkersHandler {
	return &MarkersHandler{markersUseCase: markersUseCase}
}

// GetMapMarkers はウィンドウ内のイベントマーカー群を返すエンドポイント
// GET /api/map/markers?window=day|week|month&date=YYYY-MM-DD
func (h *MarkersHandler) GetMapMarkers(c *gin.Context) {
	windowKind := c.DefaultQuery("window", "month")
	if windowKind != "day" && windowKind != "week" && windowKind != "month" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "windowは'day'、'week'、'month'のいずれかを指定してください",
		})
		return
	}

	// 基準時刻はサーバー時刻。コアには常に明示的なパラメータとして渡す
	now := time.Now()

	date := now
	if raw := c.Query("date"); raw != "" {
		parsed, err := helper.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "dateの形式が正しくありません",
				"details": err.Error(),
			})
			return
		}
		date = parsed
	}

	response, err := h.markersUseCase.GetMarkers(c.Request.Context(), windowKind, date, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "マーカーの集約に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLandmarks はカテゴリで絞り込んだランドマーク群を返すエンドポイント
// GET /api/map/landmarks?category=All|Restroom|...
func (h *MarkersHandler) GetLandmarks(c *gin.Context) {
	category := c.DefaultQuery("category", "All")

	response, err := h.markersUseCase.GetLandmarks(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "ランドマークの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
