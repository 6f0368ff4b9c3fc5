package catalog

import (
	"testing"

	"tiendafacil/server/internal/models"
)

func TestIdentityKey(t *testing.T) {
	casos := []struct {
		nombre string
		rec    models.PriceRecord
		clave  string
	}{
		{
			"barcode largo",
			models.PriceRecord{Barcode: "7790000000001", Code: "A1", Name: "Azúcar"},
			"b:7790000000001",
		},
		{
			"barcode alfanumérico corto",
			models.PriceRecord{Barcode: "ABC-123", Name: "Filtro"},
			"b:ABC-123",
		},
		{
			"barcode numérico corto no identifica",
			models.PriceRecord{Barcode: "1234567", Code: "A1", Name: "Azúcar"},
			"c:a1",
		},
		{
			"sin barcode cae al código",
			models.PriceRecord{Code: "SKU-99", Name: "Harina"},
			"c:sku-99",
		},
		{
			"solo nombre, normalizado",
			models.PriceRecord{Name: "  Leche   ENTERA  "},
			"n:leche entera",
		},
		{
			"acentos no distinguen productos",
			models.PriceRecord{Name: "Azúcar Rubia"},
			"n:azucar rubia",
		},
	}

	for _, c := range casos {
		if clave := IdentityKey(c.rec); clave != c.clave {
			t.Errorf("%s: IdentityKey = %q, se esperaba %q", c.nombre, clave, c.clave)
		}
	}
}

func TestReduceGanaElMasReciente(t *testing.T) {
	registros := []models.PriceRecord{
		{Name: "Leche Entera", Price: 350, UpdatedAt: 1700000000000},
		{Name: "Leche Entera", Price: 380, UpdatedAt: 1710000000000},
		{Name: "Leche Entera", Price: 300, UpdatedAt: 1690000000000},
		{Name: "Pan Lactal", Price: 900, UpdatedAt: 1705000000000},
	}

	resultado := Reduce(registros)
	if len(resultado) != 2 {
		t.Fatalf("se esperaban 2 productos, hay %d", len(resultado))
	}
	// Ordenado por fecha descendente: leche (1710...) antes que pan (1705...)
	if resultado[0].Price != 380 {
		t.Errorf("debería ganar el precio más reciente (380), ganó %v", resultado[0].Price)
	}
	if resultado[1].Name != "Pan Lactal" {
		t.Errorf("el orden de salida debe ser por fecha descendente, segundo = %q", resultado[1].Name)
	}
}

func TestReduceEmpateDeFecha(t *testing.T) {
	ts := int64(1710000000000)

	// Mismo timestamp: gana el registro con más identificadores
	registros := []models.PriceRecord{
		{Name: "Yerba 1kg", Price: 3500, UpdatedAt: ts},
		{Name: "Yerba 1kg", Code: "Y001", Price: 3600, UpdatedAt: ts},
	}
	resultado := Reduce(registros)
	if len(resultado) != 1 || resultado[0].Price != 3600 {
		t.Errorf("con más identificadores debería ganar 3600, resultado: %+v", resultado)
	}

	// Empate total: se conserva el precio más bajo
	registros = []models.PriceRecord{
		{Name: "Leche Entera", Price: 350, UpdatedAt: ts},
		{Name: "Leche Entera", Price: 340, UpdatedAt: ts},
	}
	resultado = Reduce(registros)
	if len(resultado) != 1 || resultado[0].Price != 340 {
		t.Errorf("en empate total debería quedar 340, resultado: %+v", resultado)
	}
}

func TestReduceFechaCeroSiemprePierde(t *testing.T) {
	// Un registro sin fecha válida nunca le gana a uno fechado, aunque tenga
	// mejor precio o más identificadores
	registros := []models.PriceRecord{
		{Name: "Café Molido", Barcode: "77912345678", Code: "C1", Price: 100, UpdatedAt: 0},
		{Name: "Café Molido", Price: 900, UpdatedAt: 1},
	}
	// Misma clave forzada: el del barcode generaría b:..., igualamos por nombre
	registros[0].IdentityKey = "n:cafe molido"
	registros[1].IdentityKey = "n:cafe molido"

	resultado := Reduce(registros)
	if len(resultado) != 1 || resultado[0].Price != 900 {
		t.Errorf("el registro con fecha cero debe perder siempre, resultado: %+v", resultado)
	}
}

func TestReduceIdempotente(t *testing.T) {
	registros := []models.PriceRecord{
		{Name: "Arroz", Price: 1200, UpdatedAt: 1700000000000},
		{Name: "Arroz", Price: 1300, UpdatedAt: 1710000000000},
		{Name: "Fideos", Price: 800, UpdatedAt: 1705000000000},
	}

	una := Reduce(registros)
	dos := Reduce(una)
	if len(una) != len(dos) {
		t.Fatalf("la reducción no es idempotente: %d vs %d", len(una), len(dos))
	}
	for i := range una {
		if una[i].Name != dos[i].Name || una[i].Price != dos[i].Price {
			t.Errorf("posición %d cambió al reducir dos veces: %+v vs %+v", i, una[i], dos[i])
		}
	}
}

func TestReduceClavesDistintasNoColisionan(t *testing.T) {
	// Un barcode y un código con el mismo texto son productos distintos
	registros := []models.PriceRecord{
		{Barcode: "77900001", Name: "Producto A", Price: 100, UpdatedAt: 1},
		{Code: "77900001", Name: "Producto B", Price: 200, UpdatedAt: 2},
	}
	resultado := Reduce(registros)
	if len(resultado) != 2 {
		t.Errorf("los espacios de nombres b:/c: no deben colisionar, hay %d registros", len(resultado))
	}
}
