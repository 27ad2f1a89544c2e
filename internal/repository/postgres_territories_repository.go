package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/repository"
	"TerritoryAtlas-App/internal/infrastructure/database"
)

type PostgresTerritoriesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresTerritoriesRepository(client *database.PostgreSQLClient) repository.TerritoriesRepository {
	return &PostgresTerritoriesRepository{
		client: client,
	}
}

// TerritoryResult PostgreSQLクエリの結果を受け取るための構造体
type TerritoryResult struct {
	ID              string
	Name            string
	Category        string
	Boundary        sql.NullString
	PerimeterMeters sql.NullFloat64
	AreaSquareM     sql.NullFloat64
	CreatedAt       sql.NullTime
}

// ToTerritory TerritoryResultをmodel.Territoryに変換
func (tr *TerritoryResult) ToTerritory() (*model.Territory, error) {
	territory := &model.Territory{
		ID:       tr.ID,
		Name:     tr.Name,
		Category: tr.Category,
	}

	if tr.Boundary.Valid && tr.Boundary.String != "" {
		var boundary model.GeoPolygon
		if err := json.Unmarshal([]byte(tr.Boundary.String), &boundary); err != nil {
			return nil, fmt.Errorf("boundary JSONBパースエラー: %w", err)
		}
		territory.Boundary = &boundary
	}

	if tr.PerimeterMeters.Valid {
		v := tr.PerimeterMeters.Float64
		territory.PerimeterMeters = &v
	}
	if tr.AreaSquareM.Valid {
		v := tr.AreaSquareM.Float64
		territory.AreaSquareM = &v
	}
	if tr.CreatedAt.Valid {
		territory.CreatedAt = tr.CreatedAt.Time
	}

	return territory, nil
}

func (r *PostgresTerritoriesRepository) Create(ctx context.Context, territory *model.Territory) error {
	var boundaryJSON any
	if territory.Boundary != nil {
		data, err := json.Marshal(territory.Boundary)
		if err != nil {
			return fmt.Errorf("境界データのJSONマーシャル失敗: %w", err)
		}
		boundaryJSON = string(data)
	}

	query := `INSERT INTO territories (id, name, category, boundary, perimeter_meters, area_square_meters)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.client.DB.ExecContext(ctx, query,
		territory.ID, territory.Name, territory.Category,
		boundaryJSON, territory.PerimeterMeters, territory.AreaSquareM)
	if err != nil {
		return fmt.Errorf("テリトリーデータの作成失敗: %w", err)
	}

	return nil
}

func (r *PostgresTerritoriesRepository) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	query := `SELECT id, name, category, boundary, perimeter_meters, area_square_meters, created_at
	          FROM territories WHERE id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result TerritoryResult
	err := row.Scan(&result.ID, &result.Name, &result.Category, &result.Boundary,
		&result.PerimeterMeters, &result.AreaSquareM, &result.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("テリトリーID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("テリトリーデータの取得失敗: %w", err)
	}

	return result.ToTerritory()
}

func (r *PostgresTerritoriesRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Territory, error) {
	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	// 座標値の範囲チェック（経度: -180〜180, 緯度: -90〜90）
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return nil, fmt.Errorf("座標値が有効範囲外です")
	}

	// PostGISの交差判定で境界ボックス内のテリトリーを抽出
	bboxWKT := BoundingBoxToWKT(minLng, minLat, maxLng, maxLat)
	query := `SELECT id, name, category, boundary, perimeter_meters, area_square_meters, created_at
	          FROM territories
	          WHERE boundary IS NOT NULL
	            AND ST_Intersects(ST_GeomFromGeoJSON(boundary::text), ST_GeomFromText($1, 4326))`

	rows, err := r.client.DB.QueryContext(ctx, query, bboxWKT)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス内のテリトリーデータ取得失敗: %w", err)
	}
	defer rows.Close()

	var territories []model.Territory
	for rows.Next() {
		var result TerritoryResult
		if err := rows.Scan(&result.ID, &result.Name, &result.Category, &result.Boundary,
			&result.PerimeterMeters, &result.AreaSquareM, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("テリトリーデータのスキャン失敗: %w", err)
		}

		territory, err := result.ToTerritory()
		if err != nil {
			return nil, err
		}
		territories = append(territories, *territory)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("テリトリーデータの読み取りエラー: %w", err)
	}

	return territories, nil
}
