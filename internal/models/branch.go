package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch representa una sucursal/punto de venta de un comercio
type Branch struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Address   string         `json:"address" gorm:"type:text"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;references:ID"`
}

// TableName indica el nombre de la tabla
func (Branch) TableName() string {
	return "branches"
}

// BeforeCreate genera el UUID
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
