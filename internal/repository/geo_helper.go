package repository

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"TerritoryAtlas-App/internal/domain/model"
)

// RingsToGeoPolygon 正規化済みリングをGeoJSON Polygon形式に変換
// GeoJSONの規約に合わせて各リングは始点と同じ座標で閉じる
func RingsToGeoPolygon(rings []orb.Ring) *model.GeoPolygon {
	if len(rings) == 0 {
		return nil
	}

	coordinates := make([][][]float64, 0, len(rings))
	for _, ring := range rings {
		coords := make([][]float64, 0, len(ring)+1)
		for _, p := range ring {
			coords = append(coords, []float64{p.Lon(), p.Lat()})
		}
		// 閉じていないリングは始点を複製して閉じる
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			coords = append(coords, []float64{ring[0].Lon(), ring[0].Lat()})
		}
		coordinates = append(coordinates, coords)
	}

	return &model.GeoPolygon{
		Type:        "Polygon",
		Coordinates: coordinates,
	}
}

// GeoPolygonToRings GeoJSON Polygonをorb.Ringのスライスに変換
// 保存時に閉じた終端座標は除去して元のリング表現に戻す
func GeoPolygonToRings(polygon *model.GeoPolygon) []orb.Ring {
	if polygon == nil || len(polygon.Coordinates) == 0 {
		return nil
	}

	rings := make([]orb.Ring, 0, len(polygon.Coordinates))
	for _, coords := range polygon.Coordinates {
		ring := make(orb.Ring, 0, len(coords))
		for _, c := range coords {
			if len(c) < 2 {
				continue
			}
			ring = append(ring, orb.Point{c[0], c[1]})
		}
		// 終端が始点の複製であれば取り除く
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}

	return rings
}

// RingsToCoordinates orb.Ringのスライスをレスポンス用の座標配列に変換
func RingsToCoordinates(rings []orb.Ring) [][]model.Coordinate {
	result := make([][]model.Coordinate, 0, len(rings))
	for _, ring := range rings {
		coords := make([]model.Coordinate, 0, len(ring))
		for _, p := range ring {
			coords = append(coords, model.Coordinate{
				Latitude:  p.Lat(),
				Longitude: p.Lon(),
			})
		}
		result = append(result, coords)
	}
	return result
}

// CreateBoundingBoxPolygon リング全体を囲む境界ボックスを作成
func CreateBoundingBoxPolygon(rings []orb.Ring) *model.GeoPolygon {
	if len(rings) == 0 || len(rings[0]) == 0 {
		return nil
	}

	// orb.Bound を全頂点で拡張して境界ボックスを求める
	bound := orb.Bound{Min: rings[0][0], Max: rings[0][0]}
	for _, ring := range rings {
		for _, p := range ring {
			bound = bound.Extend(p)
		}
	}

	// 少し余裕を持たせる（約100m程度）
	padding := 0.001 // 約111m
	bound = bound.Pad(padding)

	minLng := bound.Min.Lon()
	minLat := bound.Min.Lat()
	maxLng := bound.Max.Lon()
	maxLat := bound.Max.Lat()

	coordinates := [][][]float64{
		{
			{minLng, minLat}, // 左下
			{maxLng, minLat}, // 右下
			{maxLng, maxLat}, // 右上
			{minLng, maxLat}, // 左上
			{minLng, minLat}, // 閉じる
		},
	}

	return &model.GeoPolygon{
		Type:        "Polygon",
		Coordinates: coordinates,
	}
}

// BoundingBoxToWKT 境界ボックスをPostGISクエリ用のWKT文字列に変換
func BoundingBoxToWKT(minLng, minLat, maxLng, maxLat float64) string {
	bound := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}
	return wkt.MarshalString(bound.ToPolygon())
}
