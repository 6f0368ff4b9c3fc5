package services

import (
	"fmt"

	"gorm.io/gorm"

	"tiendafacil/server/internal/models"
)

// BranchService administra las sucursales de un comercio
type BranchService struct {
	db *gorm.DB
}

func NewBranchService(db *gorm.DB) *BranchService {
	return &BranchService{db: db}
}

// ListBranches devuelve las sucursales activas del comercio
func (s *BranchService) ListBranches(tenantID string) ([]models.Branch, error) {
	var sucursales []models.Branch
	err := s.db.Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name ASC").
		Find(&sucursales).Error
	if err != nil {
		return nil, fmt.Errorf("error consultando sucursales: %w", err)
	}
	return sucursales, nil
}

// GetBranchByID devuelve una sucursal por ID dentro del comercio
func (s *BranchService) GetBranchByID(tenantID, id string) (*models.Branch, error) {
	var sucursal models.Branch
	if err := s.db.First(&sucursal, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, fmt.Errorf("sucursal %s no encontrada: %w", id, err)
	}
	return &sucursal, nil
}

// CreateBranch crea una sucursal
func (s *BranchService) CreateBranch(branch *models.Branch) error {
	if branch.TenantID == "" {
		return fmt.Errorf("tenant_id es obligatorio para crear una sucursal")
	}
	if branch.Name == "" {
		return fmt.Errorf("el nombre de la sucursal es obligatorio")
	}
	if err := s.db.Create(branch).Error; err != nil {
		return fmt.Errorf("error creando la sucursal: %w", err)
	}
	return nil
}

// UpdateBranch actualiza una sucursal existente
func (s *BranchService) UpdateBranch(tenantID, id string, cambios *models.Branch) error {
	var sucursal models.Branch
	if err := s.db.First(&sucursal, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("sucursal %s no encontrada: %w", id, err)
	}
	if err := s.db.Model(&sucursal).Updates(cambios).Error; err != nil {
		return fmt.Errorf("error actualizando la sucursal: %w", err)
	}
	return nil
}

// DeleteBranch da de baja una sucursal (baja lógica)
func (s *BranchService) DeleteBranch(tenantID, id string) error {
	if err := s.db.Delete(&models.Branch{}, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return fmt.Errorf("error eliminando la sucursal: %w", err)
	}
	return nil
}
