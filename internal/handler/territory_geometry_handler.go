package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"TerritoryAtlas-App/internal/usecase"
)

// TerritoryGeometryHandler テリトリージオメトリAPIのハンドラー
type TerritoryGeometryHandler struct {
	geometryUseCase usecase.TerritoryGeometryUseCase
}

// NewTerritoryGeometryHandler 新しいTerritoryGeometryHandlerインスタンスを作成
func NewTerritoryGeometryHandler(geometryUseCase usecase.TerritoryGeometryUseCase) *TerritoryGeometryHandler {
	return &TerritoryGeometryHandler{
		geometryUseCase: geometryUseCase,
	}
}

// GetTerritoryGeometry GET /territories/:id/geometry - 正規化済みジオメトリを取得
// リングが空でも200を返す（「境界を導出できなかった」は有効な結果）
func (h *TerritoryGeometryHandler) GetTerritoryGeometry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "id parameter is required",
		})
		return
	}

	geometry, err := h.geometryUseCase.GetTerritoryGeometry(c.Request.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Territory not found: " + id,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get territory geometry: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, geometry)
}
