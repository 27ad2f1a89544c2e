package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TerritoryAtlas-App/internal/domain/helper"
	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/repository"
	"TerritoryAtlas-App/internal/domain/service"
	repoImpl "TerritoryAtlas-App/internal/repository"
)

// TerritoriesService テリトリーに関するビジネスロジックを提供するサービス
type TerritoriesService interface {
	// CreateTerritory 未検証のテリトリーレコードを正規化して新規登録
	CreateTerritory(ctx context.Context, req *model.CreateTerritoryRequest) (*model.CreateTerritoryResponse, error)

	// GetTerritoriesByBoundingBox 境界ボックス内のテリトリー一覧を取得
	GetTerritoriesByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.TerritorySummary, error)

	// GetTerritoryDetail テリトリーの詳細を取得
	GetTerritoryDetail(ctx context.Context, id string) (*model.TerritoryDetail, error)
}

// territoriesServiceImpl TerritoriesServiceの実装
type territoriesServiceImpl struct {
	territoriesRepo repository.TerritoriesRepository
}

// NewTerritoriesService TerritoriesServiceの新しいインスタンスを作成
func NewTerritoriesService(territoriesRepo repository.TerritoriesRepository) TerritoriesService {
	return &territoriesServiceImpl{
		territoriesRepo: territoriesRepo,
	}
}

// CreateTerritory 未検証のテリトリーレコードを正規化して登録する
// 境界データが不正でもリクエストは拒否せず、有効なリングが残らなかった場合は
// 境界なしのテリトリーとして保存する
func (s *territoriesServiceImpl) CreateTerritory(ctx context.Context, req *model.CreateTerritoryRequest) (*model.CreateTerritoryResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("テリトリー名は必須です")
	}

	category := req.Category
	if category == "" {
		category = model.CategoryOther
	}

	// 未検証の境界データを正規化（どんな形状でもエラーにはならない）
	raw := &model.RawTerritory{
		Name:                req.Name,
		Category:            category,
		Boundaries:          req.Boundaries,
		BoundaryCoordinates: req.BoundaryCoordinates,
	}
	rings := service.NormalizeBoundaries(raw)

	if len(rings) == 0 {
		log.Printf("⚠️ テリトリー「%s」から有効な境界を抽出できませんでした（境界なしで登録）", req.Name)
	}

	// 正規化済みリングから計測値を導出
	metrics := service.CalcTerritoryMetrics(rings)

	// UUIDを生成
	territoryID := uuid.New().String()

	territory := &model.Territory{
		ID:              territoryID,
		Name:            req.Name,
		Category:        category,
		Boundary:        repoImpl.RingsToGeoPolygon(rings),
		PerimeterMeters: metrics.PerimeterMeters,
		AreaSquareM:     metrics.AreaSquareM,
		CreatedAt:       time.Now(),
	}

	// データベースに保存
	if err := s.territoriesRepo.Create(ctx, territory); err != nil {
		return nil, fmt.Errorf("テリトリーの保存失敗: %w", err)
	}

	return &model.CreateTerritoryResponse{
		Status:      "success",
		Message:     fmt.Sprintf("テリトリー「%s」を登録しました", req.Name),
		TerritoryID: territoryID,
		RingCount:   len(rings),
	}, nil
}

// GetTerritoriesByBoundingBox 境界ボックス内のテリトリー一覧を取得する
func (s *territoriesServiceImpl) GetTerritoriesByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.TerritorySummary, error) {
	territories, err := s.territoriesRepo.GetByBoundingBox(ctx, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("テリトリー一覧の取得失敗: %w", err)
	}

	summaries := make([]model.TerritorySummary, 0, len(territories))
	for _, t := range territories {
		summaries = append(summaries, model.TerritorySummary{
			ID:               t.ID,
			Name:             t.Name,
			Category:         t.Category,
			CategoryName:     model.GetCategoryJapaneseName(t.Category),
			PerimeterDisplay: helper.FormatDistanceMeters(t.PerimeterMeters),
			AreaDisplay:      helper.FormatAreaSquareMeters(t.AreaSquareM),
			RingCount:        len(repoImpl.GeoPolygonToRings(t.Boundary)),
		})
	}

	return summaries, nil
}

// GetTerritoryDetail テリトリーの詳細を取得する
func (s *territoriesServiceImpl) GetTerritoryDetail(ctx context.Context, id string) (*model.TerritoryDetail, error) {
	territory, err := s.territoriesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("テリトリー詳細の取得失敗: %w", err)
	}

	return &model.TerritoryDetail{
		ID:               territory.ID,
		Name:             territory.Name,
		Category:         territory.Category,
		CategoryName:     model.GetCategoryJapaneseName(territory.Category),
		Boundary:         territory.Boundary,
		PerimeterDisplay: helper.FormatDistanceMeters(territory.PerimeterMeters),
		AreaDisplay:      helper.FormatAreaSquareMeters(territory.AreaSquareM),
		CreatedAt:        territory.CreatedAt.Format(time.RFC3339),
	}, nil
}
