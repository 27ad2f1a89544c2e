package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"

	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/repository"
	"TerritoryAtlas-App/internal/infrastructure/database"
)

type SupabaseTerritoriesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseTerritoriesRepository(client *database.SupabaseClient) repository.TerritoriesRepository {
	return &SupabaseTerritoriesRepository{
		client: client,
	}
}

// TerritoryDB Supabaseに保存するテリトリーの形式
type TerritoryDB struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Boundary        *model.GeoPolygon `json:"boundary"`
	BoundingBox     *model.GeoPolygon `json:"bounding_box"`
	PerimeterMeters *float64          `json:"perimeter_meters"`
	AreaSquareM     *float64          `json:"area_square_meters"`
}

// territoryToDB model.Territory を DB 保存用に変換
// 境界ボックスはbbox検索用に保存時へ前計算しておく
func territoryToDB(territory *model.Territory) *TerritoryDB {
	db := &TerritoryDB{
		ID:              territory.ID,
		Name:            territory.Name,
		Category:        territory.Category,
		Boundary:        territory.Boundary,
		PerimeterMeters: territory.PerimeterMeters,
		AreaSquareM:     territory.AreaSquareM,
	}

	if rings := GeoPolygonToRings(territory.Boundary); len(rings) > 0 {
		db.BoundingBox = CreateBoundingBoxPolygon(rings)
	}

	return db
}

func (r *SupabaseTerritoriesRepository) Create(ctx context.Context, territory *model.Territory) error {
	territoryDB := territoryToDB(territory)

	data, err := json.Marshal(territoryDB)
	if err != nil {
		return fmt.Errorf("テリトリーデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("territories").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("テリトリーデータの作成失敗: %w", err)
	}

	return nil
}

func (r *SupabaseTerritoriesRepository) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	var territories []model.Territory
	data, count, err := r.client.GetClient().From("territories").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("テリトリーデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &territories); err != nil {
		return nil, fmt.Errorf("テリトリーデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(territories) == 0 {
		return nil, fmt.Errorf("テリトリーID %s が見つかりません", id)
	}

	return &territories[0], nil
}

func (r *SupabaseTerritoriesRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Territory, error) {
	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	// 座標値の範囲チェック（経度: -180〜180, 緯度: -90〜90）
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return nil, fmt.Errorf("座標値が有効範囲外です")
	}

	// PostgREST経由ではPostGIS関数を直接呼べないため全件取得してから絞り込む
	// データ量が増えた場合はRPC（ストアドプロシージャ）への移行を検討
	data, count, err := r.client.GetClient().From("territories").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("テリトリーデータの取得失敗: %w", err)
	}
	_ = count

	var all []model.Territory
	if err := json.Unmarshal([]byte(data), &all); err != nil {
		return nil, fmt.Errorf("テリトリーデータのJSONアンマーシャル失敗: %w", err)
	}

	var filtered []model.Territory
	for _, t := range all {
		if territoryIntersectsBBox(&t, minLng, minLat, maxLng, maxLat) {
			filtered = append(filtered, t)
		}
	}

	return filtered, nil
}

// territoryIntersectsBBox テリトリーの境界ボックスが指定範囲と交差するか判定
func territoryIntersectsBBox(t *model.Territory, minLng, minLat, maxLng, maxLat float64) bool {
	rings := GeoPolygonToRings(t.Boundary)
	if len(rings) == 0 {
		return false
	}

	// orb.Bound を全頂点で拡張してテリトリー側の境界ボックスを求める
	bound := orb.Bound{Min: rings[0][0], Max: rings[0][0]}
	for _, ring := range rings {
		for _, p := range ring {
			bound = bound.Extend(p)
		}
	}

	query := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}

	return bound.Intersects(query)
}
