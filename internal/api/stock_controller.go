package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/services"
	"tiendafacil/server/internal/stock"
)

type StockController struct {
	service *services.StockService
}

func NewStockController(service *services.StockService) *StockController {
	return &StockController{service: service}
}

type applyStockRequest struct {
	Items []struct {
		ID        string  `json:"id" binding:"required"`
		StockPrev float64 `json:"stock_prev"`
		Qty       string  `json:"qty"`
	} `json:"items" binding:"required"`
	EntryTimestamp int64 `json:"entry_timestamp" binding:"required"`
}

// ApplyStock concilia un lote de renglones de pedido
// POST /api/v1/stock/apply
func (sc *StockController) ApplyStock(c *gin.Context) {
	var req applyStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "el lote está vacío"})
		return
	}

	lines := make([]stock.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, stock.Line{
			ItemID:     item.ID,
			StockPrev:  item.StockPrev,
			StockInRaw: item.Qty,
		})
	}

	res, err := sc.service.ApplyBatch(c.Request.Context(), TenantID(c), c.GetString("user_id"), lines, req.EntryTimestamp)
	if err != nil {
		// Error de validación: ningún renglón se aplicó
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if res.Error != "" {
		// Falla parcial: lo aplicado queda aplicado
		status = http.StatusMultiStatus
	}
	c.JSON(status, res)
}

// GetAdjustments devuelve la auditoría de conciliaciones
// GET /api/v1/stock/adjustments?limit=50
func (sc *StockController) GetAdjustments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	ajustes, err := sc.service.ListAdjustments(c.Request.Context(), TenantID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"adjustments": ajustes,
		"count":       len(ajustes),
	})
}
