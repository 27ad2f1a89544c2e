package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"TerritoryAtlas-App/internal/domain/model"
	"TerritoryAtlas-App/internal/domain/service"
)

// fakeTerritoriesService ハンドラーテスト用のサービス実装
// 正規化だけは本物のロジックを通してHTTP境界の挙動を確認する
type fakeTerritoriesService struct {
	created []*model.CreateTerritoryRequest
}

func (s *fakeTerritoriesService) CreateTerritory(ctx context.Context, req *model.CreateTerritoryRequest) (*model.CreateTerritoryResponse, error) {
	s.created = append(s.created, req)
	rings := service.NormalizeBoundaries(&model.RawTerritory{
		Name:                req.Name,
		Boundaries:          req.Boundaries,
		BoundaryCoordinates: req.BoundaryCoordinates,
	})
	return &model.CreateTerritoryResponse{
		Status:      "success",
		TerritoryID: "test-territory-1",
		RingCount:   len(rings),
	}, nil
}

func (s *fakeTerritoriesService) GetTerritoriesByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.TerritorySummary, error) {
	return []model.TerritorySummary{}, nil
}

func (s *fakeTerritoriesService) GetTerritoryDetail(ctx context.Context, id string) (*model.TerritoryDetail, error) {
	if id == "missing" {
		return nil, fmt.Errorf("テリトリーID %s が見つかりません", id)
	}
	return &model.TerritoryDetail{ID: id, Name: "テスト区域"}, nil
}

func setupTestRouter() (*gin.Engine, *fakeTerritoriesService) {
	gin.SetMode(gin.TestMode)
	svc := &fakeTerritoriesService{}
	h := NewTerritoriesHandler(svc)

	r := gin.New()
	r.POST("/territories", h.CreateTerritory)
	r.GET("/territories", h.GetTerritoriesByBoundingBox)
	r.GET("/territories/:id", h.GetTerritoryDetail)
	return r, svc
}

func TestCreateTerritoryHandler(t *testing.T) {
	t.Run("正常なペイロードで201を返す", func(t *testing.T) {
		router, _ := setupTestRouter()
		body := `{
			"name": "鴨川保護区",
			"category": "conservation",
			"boundary_coordinates": [
				{"latitude": 35.0, "longitude": 135.0},
				{"latitude": 35.1, "longitude": 135.0},
				{"latitude": 35.1, "longitude": 135.1}
			]
		}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp model.CreateTerritoryResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.RingCount)
	})

	t.Run("境界が壊れていても400にはならない", func(t *testing.T) {
		router, _ := setupTestRouter()
		body := `{
			"name": "壊れた区域",
			"boundaries": "this is not an array",
			"boundary_coordinates": {"oops": true}
		}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp model.CreateTerritoryResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.RingCount)
	})

	t.Run("JSONとして不正なボディは400を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader("{broken"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("名前がない場合は400を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader(`{"category": "urban"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTerritoriesByBoundingBoxHandler(t *testing.T) {
	t.Run("bboxパラメータがない場合は400を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/territories", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bboxの要素数が不正な場合は400を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/territories?bbox=135.0,35.0,135.1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("正常なbboxで200を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/territories?bbox=135.0,35.0,135.1,35.1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetTerritoryDetailHandler(t *testing.T) {
	t.Run("存在しないIDは404を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/territories/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("存在するIDは200を返す", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/territories/t-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
