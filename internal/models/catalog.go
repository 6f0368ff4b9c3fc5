package models

import (
	"time"

	"gorm.io/gorm"
)

// Modos de origen de un snapshot de catálogo
const (
	OrigenAPI    = "api"
	OrigenPublic = "public"
	OrigenUpload = "local-upload"
)

// PriceRecord es la unidad canónica del catálogo de precios. IdentityKey se
// deriva de barcode/code/name y no se persiste en el JSON de salida.
type PriceRecord struct {
	ID             string  `json:"id"`
	IdentityKey    string  `json:"-"`
	Name           string  `json:"name"`
	Code           string  `json:"code,omitempty"`
	Barcode        string  `json:"barcode,omitempty"`
	Price          float64 `json:"price"`
	UpdatedAt      int64   `json:"updatedAt"`
	UpdatedAtLabel string  `json:"updatedAtLabel"`
}

// CatalogSnapshot es el blob JSON por comercio que consumen la búsqueda y la
// impresión de etiquetas. RowCount refleja las filas aceptadas en la
// ingesta, no la cantidad deduplicada.
type CatalogSnapshot struct {
	Items      []PriceRecord `json:"items"`
	RowCount   int           `json:"rowCount"`
	ImportedAt int64         `json:"importedAt"`
	SourceMode string        `json:"sourceMode"`
}

// CatalogBlob es la fila de respaldo del snapshot en el almacén de objetos
// (un blob por clave, reemplazo atómico por upsert)
type CatalogBlob struct {
	Key       string    `json:"key" gorm:"type:varchar(255);primaryKey"`
	Data      []byte    `json:"-" gorm:"type:bytea;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName indica el nombre de la tabla
func (CatalogBlob) TableName() string {
	return "catalog_blobs"
}

// AutoMigrate crea las tablas en la base
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Tenant{},
		&Membership{},
		&Branch{},
		&Order{},
		&OrderItem{},
		&SalesEvent{},
		&StockAdjustment{},
		&ProviderPayment{},
		&CatalogBlob{},
	)
}
