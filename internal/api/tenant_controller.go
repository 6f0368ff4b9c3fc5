package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
)

type TenantController struct {
	service *services.TenantService
}

func NewTenantController(service *services.TenantService) *TenantController {
	return &TenantController{service: service}
}

// CreateTenant crea un comercio; el usuario de la sesión queda como owner
// POST /api/v1/tenants
func (tc *TenantController) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	if tenant.Name == "" || tenant.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y slug son obligatorios"})
		return
	}

	if err := tc.service.CreateTenant(&tenant, c.GetString("user_id")); err != nil {
		if errors.Is(err, services.ErrSlugEnUso) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// GetCurrentTenant devuelve el comercio de la sesión
// GET /api/v1/tenants/current
func (tc *TenantController) GetCurrentTenant(c *gin.Context) {
	tenant, err := tc.service.GetTenantByID(TenantID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// GetMyTenants lista los comercios del usuario
// GET /api/v1/tenants/mine
func (tc *TenantController) GetMyTenants(c *gin.Context) {
	membresias, err := tc.service.ListTenantsForUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"memberships": membresias,
		"count":       len(membresias),
	})
}

// GetMembers lista los miembros del comercio
// GET /api/v1/members
func (tc *TenantController) GetMembers(c *gin.Context) {
	miembros, err := tc.service.ListMembers(TenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"members": miembros,
		"count":   len(miembros),
	})
}

// AddMember agrega un miembro al comercio
// POST /api/v1/members
func (tc *TenantController) AddMember(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos", "details": err.Error()})
		return
	}

	miembro, err := tc.service.AddMember(TenantID(c), req.UserID, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, miembro)
}

// UpdateMemberRole cambia el rol de un miembro
// PATCH /api/v1/members/:userId/role
func (tc *TenantController) UpdateMemberRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos", "details": err.Error()})
		return
	}
	if err := tc.service.UpdateMemberRole(TenantID(c), c.Param("userId"), req.Role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RemoveMember saca un miembro del comercio
// DELETE /api/v1/members/:userId
func (tc *TenantController) RemoveMember(c *gin.Context) {
	if err := tc.service.RemoveMember(TenantID(c), c.Param("userId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
