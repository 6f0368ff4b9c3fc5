package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"tiendafacil/server/internal/models"
)

// ErrSlugEnUso se devuelve cuando el slug del comercio ya existe
var ErrSlugEnUso = errors.New("el slug ya está en uso")

// TenantService administra comercios y sus membresías
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// CreateTenant crea un comercio y registra al creador como owner
func (s *TenantService) CreateTenant(tenant *models.Tenant, ownerUserID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		miembro := models.Membership{
			TenantID: tenant.ID,
			UserID:   ownerUserID,
			Role:     models.RolOwner,
		}
		return tx.Create(&miembro).Error
	})
	if err != nil {
		if esViolacionUnica(err) {
			return ErrSlugEnUso
		}
		return fmt.Errorf("error creando el comercio: %w", err)
	}
	return nil
}

// esViolacionUnica detecta el código 23505 de PostgreSQL (clave duplicada).
// Según el driver el error llega tipado como pq.Error o solo en el mensaje.
func esViolacionUnica(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}

// GetTenantByID devuelve un comercio por ID
func (s *TenantService) GetTenantByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("comercio %s no encontrado: %w", id, err)
	}
	return &tenant, nil
}

// GetTenantBySlug devuelve un comercio por slug
func (s *TenantService) GetTenantBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "slug = ?", slug).Error; err != nil {
		return nil, fmt.Errorf("comercio %q no encontrado: %w", slug, err)
	}
	return &tenant, nil
}

// ListTenantsForUser devuelve los comercios donde el usuario es miembro
func (s *TenantService) ListTenantsForUser(userID string) ([]models.Membership, error) {
	var membresias []models.Membership
	err := s.db.Preload("Tenant").
		Where("user_id = ?", userID).
		Find(&membresias).Error
	if err != nil {
		return nil, fmt.Errorf("error consultando membresías: %w", err)
	}
	return membresias, nil
}

// AddMember agrega un usuario al comercio con el rol indicado
func (s *TenantService) AddMember(tenantID, userID, role string) (*models.Membership, error) {
	if !models.RolValido(role) {
		return nil, fmt.Errorf("rol inválido: %q", role)
	}
	miembro := models.Membership{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	}
	if err := s.db.Create(&miembro).Error; err != nil {
		if esViolacionUnica(err) {
			return nil, fmt.Errorf("el usuario ya es miembro del comercio")
		}
		return nil, fmt.Errorf("error agregando miembro: %w", err)
	}
	return &miembro, nil
}

// UpdateMemberRole cambia el rol de un miembro. El último owner no puede
// degradarse: siempre tiene que quedar al menos uno.
func (s *TenantService) UpdateMemberRole(tenantID, userID, role string) error {
	if !models.RolValido(role) {
		return fmt.Errorf("rol inválido: %q", role)
	}

	var miembro models.Membership
	if err := s.db.First(&miembro, "tenant_id = ? AND user_id = ?", tenantID, userID).Error; err != nil {
		return fmt.Errorf("membresía no encontrada: %w", err)
	}

	if miembro.Role == models.RolOwner && role != models.RolOwner {
		var owners int64
		s.db.Model(&models.Membership{}).
			Where("tenant_id = ? AND role = ?", tenantID, models.RolOwner).
			Count(&owners)
		if owners <= 1 {
			return fmt.Errorf("no se puede degradar al último owner del comercio")
		}
	}

	if err := s.db.Model(&miembro).Update("role", role).Error; err != nil {
		return fmt.Errorf("error actualizando el rol: %w", err)
	}
	return nil
}

// RemoveMember elimina la membresía (baja lógica)
func (s *TenantService) RemoveMember(tenantID, userID string) error {
	var miembro models.Membership
	if err := s.db.First(&miembro, "tenant_id = ? AND user_id = ?", tenantID, userID).Error; err != nil {
		return fmt.Errorf("membresía no encontrada: %w", err)
	}
	if miembro.Role == models.RolOwner {
		var owners int64
		s.db.Model(&models.Membership{}).
			Where("tenant_id = ? AND role = ?", tenantID, models.RolOwner).
			Count(&owners)
		if owners <= 1 {
			return fmt.Errorf("no se puede eliminar al último owner del comercio")
		}
	}
	if err := s.db.Delete(&miembro).Error; err != nil {
		return fmt.Errorf("error eliminando miembro: %w", err)
	}
	return nil
}

// ListMembers devuelve las membresías de un comercio
func (s *TenantService) ListMembers(tenantID string) ([]models.Membership, error) {
	var miembros []models.Membership
	if err := s.db.Where("tenant_id = ?", tenantID).Find(&miembros).Error; err != nil {
		return nil, fmt.Errorf("error consultando miembros: %w", err)
	}
	return miembros, nil
}
