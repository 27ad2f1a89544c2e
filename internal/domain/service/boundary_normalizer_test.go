package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"TerritoryAtlas-App/internal/domain/model"
)

// coord テスト用の座標マップを作成
func coord(lat, lng any) map[string]any {
	return map[string]any{"latitude": lat, "longitude": lng}
}

func TestNormalizeBoundaries_入力なし(t *testing.T) {
	t.Run("nilの場合は空を返す", func(t *testing.T) {
		rings := NormalizeBoundaries(nil)
		assert.Empty(t, rings)
	})

	t.Run("空のレコードの場合は空を返す", func(t *testing.T) {
		rings := NormalizeBoundaries(&model.RawTerritory{})
		assert.Empty(t, rings)
	})
}

func TestNormalizeBoundaries_マルチリング(t *testing.T) {
	t.Run("有効なリングを全て抽出する", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: []any{
				[]any{coord(35.0, 135.0), coord(35.1, 135.0), coord(35.1, 135.1)},
				[]any{coord(36.0, 136.0), coord(36.1, 136.0), coord(36.1, 136.1), coord(36.0, 136.1)},
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Len(t, rings, 2)
		assert.Len(t, rings[0], 3)
		assert.Len(t, rings[1], 4)
		// orbの規約で [経度, 緯度] の順
		assert.Equal(t, 135.0, rings[0][0].Lon())
		assert.Equal(t, 35.0, rings[0][0].Lat())
	})

	t.Run("不正な座標は個別に除外し有効な座標は残す", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: []any{
				[]any{
					coord(35.0, 135.0),
					coord(math.NaN(), 135.0),     // NaN → 除外
					coord(math.Inf(1), 135.0),    // Infinity → 除外
					coord("abc", 135.0),          // 非数値 → 除外
					map[string]any{"latitude": 35.1}, // 経度欠落 → 除外
					coord(35.1, 135.0),
					coord(35.1, 135.1),
				},
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Len(t, rings, 1)
		assert.Len(t, rings[0], 3)
	})

	t.Run("フィルタリング後3点未満のリングは丸ごと破棄する", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: []any{
				[]any{coord(35.0, 135.0), coord(math.NaN(), 135.0), coord(35.1, 135.1)},
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Empty(t, rings)
	})

	t.Run("フィルタリング前に3要素未満の候補はスキップする", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: []any{
				[]any{coord(35.0, 135.0), coord(35.1, 135.0)},
				"not an array",
				[]any{coord(36.0, 136.0), coord(36.1, 136.0), coord(36.1, 136.1)},
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Len(t, rings, 1)
	})

	t.Run("マルチリングが空でも単一リングへフォールバックしない", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: []any{
				[]any{coord(math.NaN(), 135.0), coord(35.1, math.NaN()), coord("x", "y")},
			},
			BoundaryCoordinates: []any{
				coord(35.0, 135.0), coord(35.1, 135.0), coord(35.1, 135.1),
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Empty(t, rings)
	})
}

func TestNormalizeBoundaries_単一リング(t *testing.T) {
	t.Run("ちょうど3点の有効な座標で1リングを返す", func(t *testing.T) {
		raw := &model.RawTerritory{
			BoundaryCoordinates: []any{
				coord(35.0, 135.0), coord(35.1, 135.0), coord(35.1, 135.1),
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Len(t, rings, 1)
		assert.Len(t, rings[0], 3)
	})

	t.Run("マルチリングが配列でない場合のみ単一リングを使用する", func(t *testing.T) {
		raw := &model.RawTerritory{
			Boundaries: "broken data",
			BoundaryCoordinates: []any{
				coord(35.0, 135.0), coord(35.1, 135.0), coord(35.1, 135.1),
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Len(t, rings, 1)
	})

	t.Run("有効な座標が3点未満の場合は空を返す", func(t *testing.T) {
		raw := &model.RawTerritory{
			BoundaryCoordinates: []any{
				coord(35.0, 135.0), coord(35.1, 135.0), "garbage",
			},
		}

		rings := NormalizeBoundaries(raw)
		assert.Empty(t, rings)
	})
}

func TestNormalizeBoundaries_JSON経由(t *testing.T) {
	t.Run("JSONデコード済みのペイロードを処理できる", func(t *testing.T) {
		payload := `{
			"name": "テスト区域",
			"boundaries": [
				[
					{"latitude": 35.0, "longitude": 135.0},
					{"latitude": "35.1", "longitude": 135.0},
					{"latitude": 35.1, "longitude": 135.1},
					{"latitude": null, "longitude": 135.2}
				]
			]
		}`

		var raw model.RawTerritory
		err := json.Unmarshal([]byte(payload), &raw)
		assert.NoError(t, err)

		rings := NormalizeBoundaries(&raw)
		assert.Len(t, rings, 1)
		// 数値文字列は有限数値に変換され、nullは除外される
		assert.Len(t, rings[0], 3)
	})
}

func TestCoerceFinite(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float64", 35.5, 35.5, true},
		{"整数", 35, 35.0, true},
		{"数値文字列", "35.5", 35.5, true},
		{"json.Number", json.Number("35.5"), 35.5, true},
		{"NaN", math.NaN(), 0, false},
		{"Infinity", math.Inf(1), 0, false},
		{"負のInfinity", math.Inf(-1), 0, false},
		{"Infinity文字列", "Inf", 0, false},
		{"非数値文字列", "abc", 0, false},
		{"nil", nil, 0, false},
		{"マップ", map[string]any{}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerceFinite(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
