package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/stock"
)

// StockService aplica conciliaciones de stock sobre los renglones de pedido
// y deja el rastro de auditoría.
type StockService struct {
	db    *gorm.DB
	sales stock.SalesLookup
}

// NewStockService crea el servicio. Si sales es nil se usa la consulta
// directa sobre la tabla de eventos de venta.
func NewStockService(db *gorm.DB, sales stock.SalesLookup) *StockService {
	s := &StockService{db: db, sales: sales}
	if s.sales == nil {
		s.sales = &dbSalesLookup{db: db}
	}
	return s
}

// dbSalesLookup implementa stock.SalesLookup sobre la tabla de ventas:
// carga las filas de la ventana y suma con la función pura.
type dbSalesLookup struct {
	db *gorm.DB
}

func (l *dbSalesLookup) SalesSince(ctx context.Context, tenantID, nameKey string, from, to int64) (float64, error) {
	var eventos []models.SalesEvent
	err := l.db.WithContext(ctx).
		Where("tenant_id = ? AND name_key = ? AND date >= ? AND date <= ?", tenantID, nameKey, from, to).
		Find(&eventos).Error
	if err != nil {
		return 0, fmt.Errorf("error consultando ventas de %q: %w", nameKey, err)
	}
	return stock.SumSales(eventos, nameKey, from, to), nil
}

// BatchResult es el resumen de un lote de conciliación. Si Error no es vacío
// el lote se cortó ahí: lo aplicado queda aplicado, lo restante no se intentó.
type BatchResult struct {
	Applied int             `json:"applied"`
	Items   []stock.Applied `json:"items"`
	Error   string          `json:"error,omitempty"`
}

// ApplyBatch concilia un lote de renglones contra la ventana de ventas que
// arranca en entryTimestamp (epoch-ms). Primero valida todas las cantidades;
// un valor imposible de parsear bloquea el lote entero. Después aplica ítem
// por ítem en orden: si uno falla, los anteriores quedan aplicados y los
// siguientes no se intentan.
func (s *StockService) ApplyBatch(ctx context.Context, tenantID, performedBy string, lines []stock.Line, entryTimestamp int64) (*BatchResult, error) {
	parsed, err := stock.ParseLines(lines)
	if err != nil {
		return nil, err
	}

	ahora := time.Now().UTC()
	hastaMs := ahora.UnixMilli()
	res := &BatchResult{Items: make([]stock.Applied, 0, len(parsed))}

	for _, line := range parsed {
		var item models.OrderItem
		if err := s.db.WithContext(ctx).First(&item, "id = ? AND tenant_id = ?", line.ItemID, tenantID).Error; err != nil {
			res.Error = fmt.Sprintf("renglón %s no encontrado", line.ItemID)
			return res, nil
		}

		ventas, err := s.sales.SalesSince(ctx, tenantID, item.NameKey, entryTimestamp, hastaMs)
		if err != nil {
			res.Error = fmt.Sprintf("renglón %s: %v", line.ItemID, err)
			return res, nil
		}

		aplicado := stock.Apply(line.StockPrev, line.StockIn, ventas)

		err = s.db.WithContext(ctx).Model(&models.OrderItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"stock_prev":    aplicado,
				"stock_applied": aplicado,
				"last_entry_at": ahora,
			}).Error
		if err != nil {
			res.Error = fmt.Sprintf("renglón %s: error guardando stock: %v", line.ItemID, err)
			return res, nil
		}

		// Auditoría: mejor esfuerzo, el stock ya quedó aplicado
		auditada := true
		ajuste := models.StockAdjustment{
			TenantID:     tenantID,
			OrderItemID:  item.ID,
			StockPrev:    line.StockPrev,
			StockIn:      line.StockIn,
			SalesSince:   ventas,
			StockApplied: aplicado,
			AppliedAt:    ahora,
			PerformedBy:  performedBy,
		}
		if err := s.db.WithContext(ctx).Create(&ajuste).Error; err != nil {
			auditada = false
			log.Printf("⚠️ No se pudo escribir la auditoría del renglón %s: %v", item.ID, err)
		}

		res.Items = append(res.Items, stock.Applied{
			ItemID:       item.ID,
			StockPrev:    line.StockPrev,
			StockIn:      line.StockIn,
			SalesSince:   ventas,
			StockApplied: aplicado,
			AuditWritten: auditada,
		})
		res.Applied++
	}

	log.Printf("✅ Conciliación de stock de %s: %d renglones aplicados", tenantID, res.Applied)
	return res, nil
}

// ListAdjustments devuelve la auditoría de conciliaciones del comercio,
// más reciente primero
func (s *StockService) ListAdjustments(ctx context.Context, tenantID string, limit int) ([]models.StockAdjustment, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var ajustes []models.StockAdjustment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("applied_at DESC").
		Limit(limit).
		Find(&ajustes).Error
	if err != nil {
		return nil, fmt.Errorf("error consultando la auditoría: %w", err)
	}
	return ajustes, nil
}

// RecordSalesEvent guarda un evento de venta (lo usa el consumidor de Kafka)
func (s *StockService) RecordSalesEvent(ctx context.Context, ev *models.SalesEvent) error {
	if ev.NameKey == "" {
		ev.NameKey = stock.NameKey(ev.Product)
	}
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("error guardando el evento de venta: %w", err)
	}
	return nil
}
