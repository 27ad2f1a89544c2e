package service

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/paulmach/orb"

	"TerritoryAtlas-App/internal/domain/model"
)

// NormalizeBoundaries は未検証のテリトリーレコードから有効な座標リングを抽出する
//
// 優先順位:
//  1. 入力がnilの場合は空を返す（エラーにはしない）
//  2. boundaries が配列の場合はマルチリングとして処理する。フィルタリング後に
//     有効なリングが1つも残らなくても boundary_coordinates へはフォールバックしない
//  3. boundaries が配列でない場合のみ boundary_coordinates を単一リングとして処理する
//
// 不正な座標は個別に除外し、3点未満になったリングは丸ごと破棄する。
// どんな入力形状でもエラーやpanicは発生させず、リング数の減少として吸収する。
func NormalizeBoundaries(raw *model.RawTerritory) []orb.Ring {
	if raw == nil {
		return nil
	}

	// マルチリング形式が構造的に存在する場合はこちらが常に優先される
	if multi, ok := raw.Boundaries.([]any); ok {
		rings := make([]orb.Ring, 0, len(multi))
		for _, candidate := range multi {
			// 座標フィルタリング前に長さ3以上の配列であることを確認
			coords, ok := candidate.([]any)
			if !ok || len(coords) < 3 {
				continue
			}
			ring := filterRingCoordinates(coords)
			if len(ring) >= 3 {
				rings = append(rings, ring)
			}
		}
		return rings
	}

	// 単一リング形式（フラットな座標配列）
	if flat, ok := raw.BoundaryCoordinates.([]any); ok {
		ring := filterRingCoordinates(flat)
		if len(ring) >= 3 {
			return []orb.Ring{ring}
		}
	}

	return nil
}

// filterRingCoordinates 座標配列から有限数値に変換できる座標のみを抽出する
// 経度・緯度のどちらかが欠落・非数値・NaN・Infinityの座標は個別に除外される
func filterRingCoordinates(coords []any) orb.Ring {
	ring := make(orb.Ring, 0, len(coords))
	for _, c := range coords {
		fields, ok := c.(map[string]any)
		if !ok {
			continue
		}
		lat, latOK := coerceFinite(fields["latitude"])
		lng, lngOK := coerceFinite(fields["longitude"])
		if !latOK || !lngOK {
			continue
		}
		// orbの規約に合わせて [経度, 緯度] の順で格納
		ring = append(ring, orb.Point{lng, lat})
	}
	return ring
}

// coerceFinite 任意の値を有限のfloat64に変換する
// 変換できない値（非数値・NaN・Infinity・nil）はfalseを返す
func coerceFinite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
