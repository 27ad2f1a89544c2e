package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"TerritoryAtlas-App/internal/domain/helper"
	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/repository"
	"TerritoryAtlas-App/internal/domain/service"
	"TerritoryAtlas-App/internal/infrastructure/cache"
	repoImpl "TerritoryAtlas-App/internal/repository"
)

// geometryCacheTTLHours Firestoreジオメトリドキュメントの有効期間
const geometryCacheTTLHours = 24

// redisGeometryTTL Redisレスポンスキャッシュの有効期間
const redisGeometryTTL = 10 * time.Minute

// TerritoryGeometryUseCase テリトリーのジオメトリ取得ユースケース
type TerritoryGeometryUseCase interface {
	// GetTerritoryGeometry は指定されたテリトリーの正規化済みジオメトリと表示用文字列を返す
	GetTerritoryGeometry(ctx context.Context, territoryID string) (*model.TerritoryGeometry, error)
}

// territoryGeometryUseCaseImpl はTerritoryGeometryUseCaseの実装
// Redis → Firestore → 再計算 の順にフォールバックする
type territoryGeometryUseCaseImpl struct {
	territoriesRepo repository.TerritoriesRepository
	geometryCache   repository.TerritoryGeometryCacheRepository
	redisClient     *cache.RedisClient
}

// NewTerritoryGeometryUseCase 新しいTerritoryGeometryUseCaseインスタンスを作成
// geometryCache・redisClient はnil許容（キャッシュなしで動作する）
func NewTerritoryGeometryUseCase(
	territoriesRepo repository.TerritoriesRepository,
	geometryCache repository.TerritoryGeometryCacheRepository,
	redisClient *cache.RedisClient,
) TerritoryGeometryUseCase {
	return &territoryGeometryUseCaseImpl{
		territoriesRepo: territoriesRepo,
		geometryCache:   geometryCache,
		redisClient:     redisClient,
	}
}

// GetTerritoryGeometry は指定されたテリトリーのジオメトリドキュメントを取得する
func (u *territoryGeometryUseCaseImpl) GetTerritoryGeometry(ctx context.Context, territoryID string) (*model.TerritoryGeometry, error) {
	redisKey := "territory:geometry:" + territoryID

	// Step 1: Redisレスポンスキャッシュを確認
	if u.redisClient != nil {
		data, found, err := u.redisClient.Get(ctx, redisKey)
		if err != nil {
			log.Printf("⚠️ Redisキャッシュの取得失敗（計算にフォールバック）: %v", err)
		} else if found {
			var geometry model.TerritoryGeometry
			if err := json.Unmarshal(data, &geometry); err == nil {
				return &geometry, nil
			}
			log.Printf("⚠️ Redisキャッシュのデコード失敗（計算にフォールバック）")
		}
	}

	// Step 2: Firestoreのジオメトリドキュメントを確認
	if u.geometryCache != nil {
		if geometry, err := u.geometryCache.GetGeometry(ctx, territoryID); err == nil {
			u.storeInRedis(ctx, redisKey, geometry)
			return geometry, nil
		}
	}

	// Step 3: 保存済みテリトリーからジオメトリを再構築
	territory, err := u.territoriesRepo.GetByID(ctx, territoryID)
	if err != nil {
		return nil, fmt.Errorf("テリトリーの取得失敗: %w", err)
	}

	geometry := u.buildGeometry(territory)

	// キャッシュに書き戻す（失敗してもレスポンスには影響させない）
	if u.geometryCache != nil {
		if err := u.geometryCache.SaveGeometry(ctx, geometry, geometryCacheTTLHours); err != nil {
			log.Printf("⚠️ ジオメトリドキュメントの保存失敗: %v", err)
		}
	}
	u.storeInRedis(ctx, redisKey, geometry)

	return geometry, nil
}

// buildGeometry 保存済みテリトリーからジオメトリドキュメントを構築する
func (u *territoryGeometryUseCaseImpl) buildGeometry(territory *model.Territory) *model.TerritoryGeometry {
	rings := repoImpl.GeoPolygonToRings(territory.Boundary)

	// 保存時に計測値が欠けている場合はリングから再計算する
	perimeter := territory.PerimeterMeters
	area := territory.AreaSquareM
	if perimeter == nil || area == nil {
		metrics := service.CalcTerritoryMetrics(rings)
		if perimeter == nil {
			perimeter = metrics.PerimeterMeters
		}
		if area == nil {
			area = metrics.AreaSquareM
		}
	}

	return &model.TerritoryGeometry{
		TerritoryID:      territory.ID,
		Rings:            repoImpl.RingsToCoordinates(rings),
		RingCount:        len(rings),
		PerimeterDisplay: helper.FormatDistanceMeters(perimeter),
		AreaDisplay:      helper.FormatAreaSquareMeters(area),
	}
}

// storeInRedis ジオメトリドキュメントをRedisに保存する（ベストエフォート）
func (u *territoryGeometryUseCaseImpl) storeInRedis(ctx context.Context, key string, geometry *model.TerritoryGeometry) {
	if u.redisClient == nil {
		return
	}
	data, err := json.Marshal(geometry)
	if err != nil {
		return
	}
	if err := u.redisClient.Set(ctx, key, data, redisGeometryTTL); err != nil {
		log.Printf("⚠️ Redisキャッシュの保存失敗: %v", err)
	}
}
