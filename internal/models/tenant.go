package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles de membresía dentro de un comercio
const (
	RolOwner = "owner"
	RolAdmin = "admin"
	RolStaff = "staff"
)

// Tenant representa un comercio (cada comercio tiene su propio catálogo,
// sucursales y membresías)
type Tenant struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName indica el nombre de la tabla
func (Tenant) TableName() string {
	return "tenants"
}

// BeforeCreate genera el UUID
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// Membership vincula un usuario a un comercio con un rol (owner/admin/staff)
type Membership struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:idx_miembro_tenant_usuario"`
	UserID    string         `json:"user_id" gorm:"type:varchar(255);not null;uniqueIndex:idx_miembro_tenant_usuario"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'staff'"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;references:ID"`
}

// TableName indica el nombre de la tabla
func (Membership) TableName() string {
	return "memberships"
}

// BeforeCreate genera el UUID
func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// RolValido indica si el rol es uno de los conocidos
func RolValido(rol string) bool {
	return rol == RolOwner || rol == RolAdmin || rol == RolStaff
}
