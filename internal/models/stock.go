package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesEvent es un evento de venta provisto por el feed externo de ventas.
// Date se guarda como epoch en milisegundos para ventanear sin conversiones.
type SalesEvent struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index:idx_venta_tenant_clave"`
	Product   string    `json:"product" gorm:"type:varchar(255);not null"`
	NameKey   string    `json:"name_key" gorm:"type:varchar(255);not null;index:idx_venta_tenant_clave"`
	Qty       float64   `json:"qty" gorm:"type:decimal(12,2);not null"`
	Date      int64     `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName indica el nombre de la tabla
func (SalesEvent) TableName() string {
	return "sales_events"
}

// BeforeCreate genera el UUID
func (se *SalesEvent) BeforeCreate(tx *gorm.DB) error {
	if se.ID == "" {
		se.ID = uuid.New().String()
	}
	return nil
}

// StockAdjustment es el registro de auditoría de una conciliación de stock.
// Se escribe una sola vez y nunca se modifica.
type StockAdjustment struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID     string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrderItemID  string    `json:"order_item_id" gorm:"type:uuid;not null;index"`
	StockPrev    float64   `json:"stock_prev" gorm:"type:decimal(12,2)"`
	StockIn      float64   `json:"stock_in" gorm:"type:decimal(12,2)"`
	SalesSince   float64   `json:"sales_since" gorm:"type:decimal(12,2)"`
	StockApplied float64   `json:"stock_applied" gorm:"type:decimal(12,2)"`
	AppliedAt    time.Time `json:"applied_at" gorm:"index"`
	PerformedBy  string    `json:"performed_by" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName indica el nombre de la tabla
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// BeforeCreate genera el UUID
func (sa *StockAdjustment) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == "" {
		sa.ID = uuid.New().String()
	}
	return nil
}
