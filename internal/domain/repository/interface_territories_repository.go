package repository

import (
	"context"

	"TerritoryAtlas-App/internal/domain/model"
)

// TerritoriesRepository テリトリーデータへのアクセスを抽象化するインターフェース
type TerritoriesRepository interface {
	// Create テリトリーを新規保存
	Create(ctx context.Context, territory *model.Territory) error

	// GetByID 指定されたIDのテリトリーを取得
	GetByID(ctx context.Context, id string) (*model.Territory, error)

	// GetByBoundingBox 境界ボックスと交差するテリトリーの一覧を取得
	GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Territory, error)
}
