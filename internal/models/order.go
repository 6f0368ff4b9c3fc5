package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados de un pedido a proveedor
const (
	PedidoPendiente = "pendiente"
	PedidoRecibido  = "recibido"
	PedidoCerrado   = "cerrado"
)

// Order representa un pedido a proveedor; sus renglones son la línea base de
// stock que consume la conciliación
type Order struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BranchID  string         `json:"branch_id" gorm:"type:uuid;not null;index"`
	Provider  string         `json:"provider" gorm:"type:varchar(255)"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'pendiente';index"`
	OrderedAt time.Time      `json:"ordered_at"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName indica el nombre de la tabla
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate genera el UUID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem es un renglón de pedido. StockPrev guarda la última cantidad
// conciliada (línea base); StockApplied el resultado de la última conciliación
type OrderItem struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID      string     `json:"order_id" gorm:"type:uuid;not null;index"`
	TenantID     string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	NameKey      string     `json:"name_key" gorm:"type:varchar(255);not null;index"`
	Qty          float64    `json:"qty" gorm:"type:decimal(12,2);default:0"`
	StockPrev    float64    `json:"stock_prev" gorm:"type:decimal(12,2);default:0"`
	StockApplied float64    `json:"stock_applied" gorm:"type:decimal(12,2);default:0"`
	LastEntryAt  *time.Time `json:"last_entry_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName indica el nombre de la tabla
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate genera el UUID
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return nil
}
