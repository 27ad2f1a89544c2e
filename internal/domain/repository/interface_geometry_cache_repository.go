package repository

import (
	"context"

	"TerritoryAtlas-App/internal/domain/model"
)

// TerritoryGeometryCacheRepository 計算済みジオメトリドキュメントのキャッシュを抽象化するインターフェース
type TerritoryGeometryCacheRepository interface {
	// SaveGeometry ジオメトリドキュメントをTTL付きで保存
	SaveGeometry(ctx context.Context, geometry *model.TerritoryGeometry, ttlHours int) error

	// GetGeometry 指定されたテリトリーIDのジオメトリドキュメントを取得
	// 未保存・期限切れの場合はエラーを返す
	GetGeometry(ctx context.Context, territoryID string) (*model.TerritoryGeometry, error)
}
