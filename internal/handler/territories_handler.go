package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"TerritoryAtlas-App/internal/application"
	"TerritoryAtlas-App/internal/domain/model"
)

// TerritoriesHandler テリトリーに関するHTTPハンドラー
type TerritoriesHandler struct {
	territoriesService application.TerritoriesService
}

// NewTerritoriesHandler TerritoriesHandlerの新しいインスタンスを作成
func NewTerritoriesHandler(territoriesService application.TerritoriesService) *TerritoriesHandler {
	return &TerritoriesHandler{
		territoriesService: territoriesService,
	}
}

// CreateTerritory POST /territories - テリトリーの登録
// 境界フィールドは未検証のまま受け取り、正規化で吸収する（不正な境界で400は返さない）
func (h *TerritoriesHandler) CreateTerritory(c *gin.Context) {
	var req model.CreateTerritoryRequest

	// リクエストボディの解析（Ginが自動でContent-Type確認）
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "name is required",
		})
		return
	}

	// サービス層で処理
	response, err := h.territoriesService.CreateTerritory(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create territory: " + err.Error(),
		})
		return
	}

	// 成功レスポンス
	c.JSON(http.StatusCreated, response)
}

// GetTerritoriesByBoundingBox GET /territories - 境界ボックス内のテリトリー一覧を取得
func (h *TerritoriesHandler) GetTerritoriesByBoundingBox(c *gin.Context) {
	// クエリパラメータの解析
	bbox := c.Query("bbox")
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "bbox parameter is required (format: min_lng,min_lat,max_lng,max_lat)",
		})
		return
	}

	// bbox の解析
	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat",
		})
		return
	}

	values := make([]float64, 4)
	names := []string{"min_lng", "min_lat", "max_lng", "max_lat"}
	for i, coord := range coords {
		v, err := strconv.ParseFloat(coord, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid " + names[i] + " value",
			})
			return
		}
		values[i] = v
	}

	summaries, err := h.territoriesService.GetTerritoriesByBoundingBox(
		c.Request.Context(), values[0], values[1], values[2], values[3])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get territories: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.GetTerritoriesResponse{Territories: summaries})
}

// GetTerritoryDetail GET /territories/:id - テリトリーの詳細を取得
func (h *TerritoriesHandler) GetTerritoryDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "id parameter is required",
		})
		return
	}

	detail, err := h.territoriesService.GetTerritoryDetail(c.Request.Context(), id)
	if err != nil {
		// 見つからない場合は404を返す
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Territory not found: " + id,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get territory: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}
