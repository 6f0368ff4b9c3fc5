package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/services"
)

type BranchController struct {
	service *services.BranchService
}

func NewBranchController(service *services.BranchService) *BranchController {
	return &BranchController{service: service}
}

// GetBranches lista las sucursales del comercio
// GET /api/v1/branches
func (bc *BranchController) GetBranches(c *gin.Context) {
	sucursales, err := bc.service.ListBranches(TenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"branches": sucursales,
		"count":    len(sucursales),
	})
}

// GetBranch devuelve una sucursal por ID
// GET /api/v1/branches/:id
func (bc *BranchController) GetBranch(c *gin.Context) {
	sucursal, err := bc.service.GetBranchByID(TenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sucursal)
}

// CreateBranch crea una sucursal
// POST /api/v1/branches
func (bc *BranchController) CreateBranch(c *gin.Context) {
	var sucursal models.Branch
	if err := c.ShouldBindJSON(&sucursal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	sucursal.TenantID = TenantID(c)

	if err := bc.service.CreateBranch(&sucursal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sucursal)
}

// UpdateBranch actualiza una sucursal
// PUT /api/v1/branches/:id
func (bc *BranchController) UpdateBranch(c *gin.Context) {
	var cambios models.Branch
	if err := c.ShouldBindJSON(&cambios); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos", "details": err.Error()})
		return
	}
	if err := bc.service.UpdateBranch(TenantID(c), c.Param("id"), &cambios); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteBranch da de baja una sucursal
// DELETE /api/v1/branches/:id
func (bc *BranchController) DeleteBranch(c *gin.Context) {
	if err := bc.service.DeleteBranch(TenantID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
