package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"TerritoryAtlas-App/internal/domain/model"
	repoImpl "TerritoryAtlas-App/internal/repository"
)

// fakeTerritoriesRepo テスト用のインメモリリポジトリ
type fakeTerritoriesRepo struct {
	territories map[string]*model.Territory
	getCalls    int
}

func (r *fakeTerritoriesRepo) Create(ctx context.Context, t *model.Territory) error {
	r.territories[t.ID] = t
	return nil
}

func (r *fakeTerritoriesRepo) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	r.getCalls++
	t, ok := r.territories[id]
	if !ok {
		return nil, fmt.Errorf("テリトリーID %s が見つかりません", id)
	}
	return t, nil
}

func (r *fakeTerritoriesRepo) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.Territory, error) {
	return nil, nil
}

// fakeGeometryCache テスト用のインメモリジオメトリキャッシュ
type fakeGeometryCache struct {
	docs      map[string]*model.TerritoryGeometry
	saveCalls int
}

func (c *fakeGeometryCache) SaveGeometry(ctx context.Context, g *model.TerritoryGeometry, ttlHours int) error {
	c.saveCalls++
	c.docs[g.TerritoryID] = g
	return nil
}

func (c *fakeGeometryCache) GetGeometry(ctx context.Context, territoryID string) (*model.TerritoryGeometry, error) {
	g, ok := c.docs[territoryID]
	if !ok {
		return nil, fmt.Errorf("ジオメトリドキュメントが見つかりません: %s", territoryID)
	}
	return g, nil
}

func storedTerritory(id string) *model.Territory {
	rings := []orb.Ring{{
		{135.0, 35.0},
		{135.01, 35.0},
		{135.01, 35.01},
		{135.0, 35.01},
	}}
	perimeter := 4448.0
	area := 1_234_000.0
	return &model.Territory{
		ID:              id,
		Name:            "テスト区域",
		Category:        model.CategoryConservation,
		Boundary:        repoImpl.RingsToGeoPolygon(rings),
		PerimeterMeters: &perimeter,
		AreaSquareM:     &area,
		CreatedAt:       time.Now(),
	}
}

func TestGetTerritoryGeometry(t *testing.T) {
	ctx := context.Background()

	t.Run("保存済みテリトリーからジオメトリを構築する", func(t *testing.T) {
		repo := &fakeTerritoriesRepo{territories: map[string]*model.Territory{
			"t-1": storedTerritory("t-1"),
		}}
		uc := NewTerritoryGeometryUseCase(repo, nil, nil)

		geometry, err := uc.GetTerritoryGeometry(ctx, "t-1")
		assert.NoError(t, err)
		assert.Equal(t, "t-1", geometry.TerritoryID)
		assert.Equal(t, 1, geometry.RingCount)
		assert.Len(t, geometry.Rings, 1)
		assert.Len(t, geometry.Rings[0], 4)
		assert.Equal(t, "4.4 km", geometry.PerimeterDisplay)
		assert.Equal(t, "1.23 km²", geometry.AreaDisplay)
	})

	t.Run("境界のないテリトリーはプレースホルダー表示になる", func(t *testing.T) {
		repo := &fakeTerritoriesRepo{territories: map[string]*model.Territory{
			"t-2": {ID: "t-2", Name: "境界なし", Category: model.CategoryOther},
		}}
		uc := NewTerritoryGeometryUseCase(repo, nil, nil)

		geometry, err := uc.GetTerritoryGeometry(ctx, "t-2")
		assert.NoError(t, err)
		assert.Equal(t, 0, geometry.RingCount)
		assert.Empty(t, geometry.Rings)
		assert.Equal(t, "—", geometry.PerimeterDisplay)
		assert.Equal(t, "—", geometry.AreaDisplay)
	})

	t.Run("2回目の取得はFirestoreキャッシュから返す", func(t *testing.T) {
		repo := &fakeTerritoriesRepo{territories: map[string]*model.Territory{
			"t-3": storedTerritory("t-3"),
		}}
		geoCache := &fakeGeometryCache{docs: make(map[string]*model.TerritoryGeometry)}
		uc := NewTerritoryGeometryUseCase(repo, geoCache, nil)

		first, err := uc.GetTerritoryGeometry(ctx, "t-3")
		assert.NoError(t, err)
		assert.Equal(t, 1, geoCache.saveCalls)
		assert.Equal(t, 1, repo.getCalls)

		second, err := uc.GetTerritoryGeometry(ctx, "t-3")
		assert.NoError(t, err)
		assert.Equal(t, 1, repo.getCalls) // リポジトリへは再アクセスしない
		assert.Equal(t, first.AreaDisplay, second.AreaDisplay)
	})

	t.Run("存在しないテリトリーはエラー", func(t *testing.T) {
		repo := &fakeTerritoriesRepo{territories: map[string]*model.Territory{}}
		uc := NewTerritoryGeometryUseCase(repo, nil, nil)

		_, err := uc.GetTerritoryGeometry(ctx, "unknown")
		assert.Error(t, err)
	})

	t.Run("保存時の計測値が欠けている場合は再計算する", func(t *testing.T) {
		territory := storedTerritory("t-4")
		territory.PerimeterMeters = nil
		territory.AreaSquareM = nil
		repo := &fakeTerritoriesRepo{territories: map[string]*model.Territory{
			"t-4": territory,
		}}
		uc := NewTerritoryGeometryUseCase(repo, nil, nil)

		geometry, err := uc.GetTerritoryGeometry(ctx, "t-4")
		assert.NoError(t, err)
		assert.NotEqual(t, "—", geometry.PerimeterDisplay)
		assert.NotEqual(t, "—", geometry.AreaDisplay)
	})
}
