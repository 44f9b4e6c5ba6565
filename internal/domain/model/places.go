package model

import (
	"fmt"
	"strconv"
)

// LatLng 緯度経度を表す基本的な型
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place はランドマーク（markersコレクション）のレコード
// このコアからは読み取り専用。緯度経度はストア上では文字列で保存されている
type Place struct {
	ID                 string `json:"id" firestore:"-"`
	Name               string `json:"name" firestore:"name"`
	Latitude           string `json:"latitude" firestore:"latitude"`
	Longitude          string `json:"longitude" firestore:"longitude"`
	Address            string `json:"address,omitempty" firestore:"address,omitempty"`
	Category           string `json:"category,omitempty" firestore:"category,omitempty"`
	CategoryOption     string `json:"categoryOption,omitempty" firestore:"categoryOption,omitempty"`
	AccessibleRestroom bool   `json:"accessibleRestroom" firestore:"accessibleRestroom"`
}

// ToLatLng は文字列の緯度経度を浮動小数点として解析する
func (p *Place) ToLatLng() (*LatLng, error) {
	lat, err := strconv.ParseFloat(p.Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("緯度の解析に失敗 (id=%s): %w", p.ID, err)
	}
	lng, err := strconv.ParseFloat(p.Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("経度の解析に失敗 (id=%s): %w", p.ID, err)
	}
	return &LatLng{Lat: lat, Lng: lng}, nil
}
