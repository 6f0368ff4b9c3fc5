package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProviderPayment registra un pago (o deuda) a proveedor por sucursal
type ProviderPayment struct {
	ID        string          `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string          `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BranchID  string          `json:"branch_id" gorm:"type:uuid;not null;index"`
	Provider  string          `json:"provider" gorm:"type:varchar(255);not null"`
	Concept   string          `json:"concept" gorm:"type:text"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	DueDate   *time.Time      `json:"due_date"`
	Paid      bool            `json:"paid" gorm:"default:false;index"`
	PaidAt    *time.Time      `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName indica el nombre de la tabla
func (ProviderPayment) TableName() string {
	return "provider_payments"
}

// BeforeCreate genera el UUID
func (pp *ProviderPayment) BeforeCreate(tx *gorm.DB) error {
	if pp.ID == "" {
		pp.ID = uuid.New().String()
	}
	return nil
}
