package stock

import (
	"testing"

	"tiendafacil/server/internal/models"
)

func TestApply(t *testing.T) {
	casos := []struct {
		nombre                     string
		prev, ingreso, ventas, res float64
	}{
		{"suma simple", 10, 5, 3, 12},
		{"nunca negativo", 5, 0, 10, 0},
		{"redondeo a dos decimales", 0, 3.14159, 0, 3.14},
		{"sin movimientos", 7.5, 0, 0, 7.5},
		{"ventas exactas dejan cero", 4, 6, 10, 0},
	}
	for _, c := range casos {
		if res := Apply(c.prev, c.ingreso, c.ventas); res != c.res {
			t.Errorf("%s: Apply(%v, %v, %v) = %v, se esperaba %v",
				c.nombre, c.prev, c.ingreso, c.ventas, res, c.res)
		}
	}
}

func TestParseLines(t *testing.T) {
	lines := []Line{
		{ItemID: "a", StockPrev: 3, StockInRaw: "2,5"},
		{ItemID: "b", StockPrev: 0, StockInRaw: ""},
		{ItemID: "c", StockPrev: 1, StockInRaw: "-4"},
	}
	parsed, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines devolvió error: %v", err)
	}
	if parsed[0].StockIn != 2.5 {
		t.Errorf("la coma decimal debe aceptarse: %v", parsed[0].StockIn)
	}
	if parsed[1].StockIn != 0 {
		t.Errorf("cantidad vacía debe ser cero: %v", parsed[1].StockIn)
	}
	if parsed[2].StockIn != 0 {
		t.Errorf("cantidad negativa debe quedar en cero: %v", parsed[2].StockIn)
	}
}

func TestParseLinesBloqueaElLote(t *testing.T) {
	lines := []Line{
		{ItemID: "a", StockPrev: 3, StockInRaw: "2"},
		{ItemID: "b", StockPrev: 0, StockInRaw: "dos"},
	}
	if _, err := ParseLines(lines); err == nil {
		t.Fatal("una cantidad no numérica debe bloquear el lote completo")
	}
}

func TestSumSales(t *testing.T) {
	eventos := []models.SalesEvent{
		{NameKey: "leche entera", Qty: 2, Date: 1000},
		{NameKey: "leche entera", Qty: 3, Date: 2000},
		{NameKey: "leche entera", Qty: 5, Date: 5000}, // fuera de la ventana
		{NameKey: "pan lactal", Qty: 7, Date: 1500},   // otro producto
	}

	if total := SumSales(eventos, "leche entera", 1000, 2000); total != 5 {
		t.Errorf("SumSales = %v, se esperaba 5 (ventana inclusiva)", total)
	}
	if total := SumSales(eventos, "galletitas", 0, 9000); total != 0 {
		t.Errorf("un producto sin ventas debe sumar cero, se obtuvo %v", total)
	}
}

func TestNameKey(t *testing.T) {
	if clave := NameKey("  Azúcar   RUBIA "); clave != "azucar rubia" {
		t.Errorf("NameKey = %q, se esperaba \"azucar rubia\"", clave)
	}
}
