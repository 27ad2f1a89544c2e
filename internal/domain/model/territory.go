package model

import "time"

// Coordinate 緯度経度のペアを表す基本的な型（正規化済みリングで使用）
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawTerritory 外部から受け取る未検証のテリトリーレコード
// フィールドの有無・型は一切保証されない（boundaries / boundary_coordinates は
// 配列でない値やnullが入ることがある）
type RawTerritory struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	Boundaries          any    `json:"boundaries"`           // マルチリング形式（リングの配列）
	BoundaryCoordinates any    `json:"boundary_coordinates"` // 単一リング形式（座標の配列）
}

// Territory 検証済みのテリトリーレコード（DB保存用）
type Territory struct {
	ID              string      `json:"id" db:"id"`                             // ユニークなテリトリーID
	Name            string      `json:"name" db:"name"`                         // テリトリー名
	Category        string      `json:"category" db:"category"`                 // カテゴリ
	Boundary        *GeoPolygon `json:"boundary" db:"boundary"`                 // 境界（GeoJSON Polygon形式）
	PerimeterMeters *float64    `json:"perimeter_meters" db:"perimeter_meters"` // 外周距離（不明の場合null）
	AreaSquareM     *float64    `json:"area_square_meters" db:"area_square_meters"` // 面積（不明の場合null）
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`             // 登録日時
}

// GeoPolygon PostGIS GEOMETRY型に対応するGeoJSON Polygon構造体
// Coordinates は [リング][頂点][経度, 緯度] の入れ子配列
type GeoPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// TerritorySummary 境界ボックス検索で返すテリトリーの概要
type TerritorySummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	CategoryName     string `json:"category_name"`
	PerimeterDisplay string `json:"perimeter_display"` // 表示用の外周距離（例: "1.2 km"）
	AreaDisplay      string `json:"area_display"`      // 表示用の面積（例: "5,000 m²"）
	RingCount        int    `json:"ring_count"`
}

// TerritoryDetail テリトリー詳細レスポンス
type TerritoryDetail struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	CategoryName     string      `json:"category_name"`
	Boundary         *GeoPolygon `json:"boundary"`
	PerimeterDisplay string      `json:"perimeter_display"`
	AreaDisplay      string      `json:"area_display"`
	CreatedAt        string      `json:"created_at"`
}

// CreateTerritoryRequest テリトリー登録リクエスト
// 境界フィールドは未検証のまま受け取り、正規化処理に委ねる
type CreateTerritoryRequest struct {
	Name                string `json:"name" validate:"required"`
	Category            string `json:"category"`
	Boundaries          any    `json:"boundaries"`
	BoundaryCoordinates any    `json:"boundary_coordinates"`
}

// CreateTerritoryResponse テリトリー登録レスポンス
type CreateTerritoryResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	TerritoryID string `json:"territory_id"`
	RingCount   int    `json:"ring_count"` // 正規化後に残ったリング数（0の場合は境界なしで登録）
}

// GetTerritoriesResponse 境界ボックス検索レスポンス
type GetTerritoriesResponse struct {
	Territories []TerritorySummary `json:"territories"`
}
