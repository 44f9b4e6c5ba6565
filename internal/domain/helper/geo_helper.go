package helper

import (
	"github.com/paulmach/orb"

	"MachiNavi-App/internal/domain/model"
)

// regionPadding はマーカー群の外側に持たせる余白（約111m）
const regionPadding = 0.001

// RegionForGroups はマーカーグループ全体を収めるマップ表示領域を計算する
// 座標が解決済みのグループが1つもない場合はnilを返す
func RegionForGroups(groups []*model.EventGroup) *model.Region {
	var points []orb.Point
	for _, g := range groups {
		coord := g.Representative.Location.Coord
		if coord == nil {
			continue
		}
		points = append(points, orb.Point{coord.Lng, coord.Lat})
	}
	return regionForPoints(points)
}

// RegionForPlaces はランドマーク群を収めるマップ表示領域を計算する
func RegionForPlaces(places []*model.Place) *model.Region {
	var points []orb.Point
	for _, p := range places {
		coord, err := p.ToLatLng()
		if err != nil {
			continue
		}
		points = append(points, orb.Point{coord.Lng, coord.Lat})
	}
	return regionForPoints(points)
}

func regionForPoints(points []orb.Point) *model.Region {
	if len(points) == 0 {
		return nil
	}

	bound := orb.Bound{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bound = bound.Extend(p)
	}
	bound = bound.Pad(regionPadding)

	return &model.Region{
		MinLat: bound.Min.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLng: bound.Max.Lon(),
	}
}
