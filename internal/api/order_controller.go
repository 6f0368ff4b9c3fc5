package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// CreateOrder crea un pedido a proveedor con sus renglones
// POST /api/v1/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var pedido models.Order
	if err := c.ShouldBindJSON(&pedido); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	pedido.TenantID = TenantID(c)

	if err := oc.service.CreateOrder(&pedido); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

// GetOrders lista los pedidos del comercio
// GET /api/v1/orders?branch_id=xxx&status=pendiente
func (oc *OrderController) GetOrders(c *gin.Context) {
	pedidos, err := oc.service.ListOrders(TenantID(c), c.Query("branch_id"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": pedidos,
		"count":  len(pedidos),
	})
}

// GetOrder devuelve un pedido con sus renglones
// GET /api/v1/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	pedido, err := oc.service.GetOrderByID(TenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// UpdateOrderStatus cambia el estado del pedido
// PATCH /api/v1/orders/:id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos", "details": err.Error()})
		return
	}
	if err := oc.service.UpdateOrderStatus(TenantID(c), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddOrderItem agrega un renglón a un pedido
// POST /api/v1/orders/:id/items
func (oc *OrderController) AddOrderItem(c *gin.Context) {
	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos", "details": err.Error()})
		return
	}
	if err := oc.service.AddItem(TenantID(c), c.Param("id"), &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteOrder elimina un pedido
// DELETE /api/v1/orders/:id
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	if err := oc.service.DeleteOrder(TenantID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
