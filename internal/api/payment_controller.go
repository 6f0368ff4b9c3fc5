package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

// CreatePayment registra un pago o deuda a proveedor
// POST /api/v1/payments
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var pago models.ProviderPayment
	if err := c.ShouldBindJSON(&pago); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	pago.TenantID = TenantID(c)

	if err := pc.service.CreatePayment(&pago); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// GetPayments lista los pagos del comercio
// GET /api/v1/payments?branch_id=xxx&pending=true
func (pc *PaymentController) GetPayments(c *gin.Context) {
	soloPendientes := c.Query("pending") == "true"

	pagos, err := pc.service.ListPayments(TenantID(c), c.Query("branch_id"), soloPendientes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments": pagos,
		"count":    len(pagos),
	})
}

// GetTotalDebt devuelve la deuda abierta
// GET /api/v1/payments/debt?branch_id=xxx
func (pc *PaymentController) GetTotalDebt(c *gin.Context) {
	total, err := pc.service.TotalDebt(TenantID(c), c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_debt": total})
}

// MarkPaid marca un pago como saldado
// PATCH /api/v1/payments/:id/paid
func (pc *PaymentController) MarkPaid(c *gin.Context) {
	if err := pc.service.MarkPaid(TenantID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeletePayment elimina un pago
// DELETE /api/v1/payments/:id
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	if err := pc.service.DeletePayment(TenantID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
