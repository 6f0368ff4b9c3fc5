package stock

import (
	"context"
	"fmt"
	"math"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/normalize"
)

// Apply calcula el stock resultante de una conciliación: el stock previo más
// lo ingresado, menos las ventas de la ventana, redondeado a dos decimales y
// nunca negativo.
func Apply(stockPrev, stockIn, salesSince float64) float64 {
	aplicado := math.Round((stockPrev+stockIn-salesSince)*100) / 100
	if aplicado < 0 {
		return 0
	}
	return aplicado
}

// Line es una línea de conciliación tal como llega del operador: la cantidad
// ingresada viene como texto sin parsear.
type Line struct {
	ItemID     string
	StockPrev  float64
	StockInRaw string
}

// ParsedLine es una línea validada lista para aplicar
type ParsedLine struct {
	ItemID    string
	StockPrev float64
	StockIn   float64
}

// ParseLines valida todas las líneas antes de aplicar nada: un solo valor
// imposible de parsear bloquea el lote completo.
func ParseLines(lines []Line) ([]ParsedLine, error) {
	parsed := make([]ParsedLine, 0, len(lines))
	for i, line := range lines {
		qty, err := normalize.Quantity(line.StockInRaw)
		if err != nil {
			return nil, fmt.Errorf("línea %d (item %s): cantidad inválida %q", i+1, line.ItemID, line.StockInRaw)
		}
		parsed = append(parsed, ParsedLine{
			ItemID:    line.ItemID,
			StockPrev: line.StockPrev,
			StockIn:   qty,
		})
	}
	return parsed, nil
}

// SalesLookup abstrae al proveedor de historial de ventas. La implementación
// real consulta la tabla de eventos; los tests inyectan una versión en memoria.
type SalesLookup interface {
	// SalesSince suma las cantidades vendidas del producto (clave de nombre
	// normalizada) con fecha dentro de [from, to], en epoch-ms
	SalesSince(ctx context.Context, tenantID, nameKey string, from, to int64) (float64, error)
}

// SumSales suma en memoria las ventas de un producto dentro de la ventana.
// Es la parte pura de SalesLookup, compartida por la implementación de base
// de datos una vez cargadas las filas.
func SumSales(events []models.SalesEvent, nameKey string, from, to int64) float64 {
	total := 0.0
	for _, ev := range events {
		if ev.NameKey != nameKey {
			continue
		}
		if ev.Date < from || ev.Date > to {
			continue
		}
		total += ev.Qty
	}
	return total
}

// NameKey normaliza el nombre de un producto para el cruce con ventas
func NameKey(name string) string {
	return normalize.Text(name)
}

// Applied es el resultado por ítem de una conciliación. AuditWritten
// distingue si el registro de auditoría llegó a persistirse: el stock ya
// quedó aplicado aunque la auditoría falle.
type Applied struct {
	ItemID       string  `json:"id"`
	StockPrev    float64 `json:"stock_prev"`
	StockIn      float64 `json:"stock_in"`
	SalesSince   float64 `json:"sales_since"`
	StockApplied float64 `json:"stock_applied"`
	AuditWritten bool    `json:"audit_written"`
}
