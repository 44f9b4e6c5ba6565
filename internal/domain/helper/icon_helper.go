package helper

import (
	"strings"

	"MachiNavi-App/internal/domain/model"
)

// IconKeyConstants はマップマーカーのアイコンキー
const (
	IconEvent      = "event"
	IconRestroom   = "restroom"
	IconMuseum     = "museum"
	IconHistorical = "historical"
	IconGovernment = "government"
	IconPark       = "park"
	IconFood       = "food"
	IconSchool     = "school"
	IconPin        = "pin"
)

// IconKeyFor はランドマークの名前・カテゴリからアイコンキーを決定する
func IconKeyFor(place *model.Place, selectedCategory string) string {
	name := strings.ToLower(place.Name)
	category := strings.ToLower(place.Category)

	if selectedCategory == "Restroom" && place.AccessibleRestroom {
		return IconRestroom
	}

	switch {
	case strings.Contains(name, "museum") || category == "museum":
		return IconMuseum
	case strings.Contains(name, "historical") || category == "historical":
		return IconHistorical
	case strings.Contains(name, "government") || category == "government":
		return IconGovernment
	case strings.Contains(name, "park") || category == "park":
		return IconPark
	case strings.Contains(name, "food") || category == "food":
		return IconFood
	case strings.Contains(name, "school") || category == "school":
		return IconSchool
	}
	return IconPin
}

// MatchesCategory はランドマークが選択カテゴリに該当するかチェック
func MatchesCategory(place *model.Place, selectedCategory string) bool {
	switch selectedCategory {
	case "", "All":
		return true
	case "Restroom":
		return place.AccessibleRestroom
	}
	return place.Category == selectedCategory || place.CategoryOption == selectedCategory
}
