package catalog

import (
	"sort"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/normalize"
)

// IdentityKey calcula la clave de identidad de un registro de precio.
// Prioridad: código de barras (si es alfanumérico o tiene al menos 8
// dígitos), luego código interno, luego nombre normalizado. Los prefijos
// evitan colisiones entre espacios de nombres distintos.
func IdentityKey(rec models.PriceRecord) string {
	if rec.Barcode != "" {
		if normalize.HasLetter(rec.Barcode) || normalize.DigitCount(rec.Barcode) >= 8 {
			return "b:" + rec.Barcode
		}
	}
	if codigo := normalize.Text(rec.Code); codigo != "" {
		return "c:" + codigo
	}
	if nombre := normalize.Text(rec.Name); nombre != "" {
		return "n:" + nombre
	}
	return rec.Name
}

// Reduce deduplica una lista de registros por clave de identidad quedándose
// con el más reciente de cada producto. El resultado sale ordenado por fecha
// de actualización descendente. La operación es idempotente: reducir dos
// veces da el mismo resultado.
func Reduce(records []models.PriceRecord) []models.PriceRecord {
	ganadores := make(map[string]models.PriceRecord, len(records))
	orden := make([]string, 0, len(records))

	for _, rec := range records {
		clave := rec.IdentityKey
		if clave == "" {
			clave = IdentityKey(rec)
			rec.IdentityKey = clave
		}
		actual, existe := ganadores[clave]
		if !existe {
			ganadores[clave] = rec
			orden = append(orden, clave)
			continue
		}
		if gana(rec, actual) {
			ganadores[clave] = rec
		}
	}

	resultado := make([]models.PriceRecord, 0, len(ganadores))
	for _, clave := range orden {
		resultado = append(resultado, ganadores[clave])
	}

	sort.SliceStable(resultado, func(i, j int) bool {
		return resultado[i].UpdatedAt > resultado[j].UpdatedAt
	})
	return resultado
}

// gana decide si el registro b reemplaza al registro a para la misma clave
func gana(b, a models.PriceRecord) bool {
	if b.UpdatedAt != a.UpdatedAt {
		return b.UpdatedAt > a.UpdatedAt
	}
	// Mismo timestamp: gana el registro con más identificadores
	if rb, ra := riqueza(b), riqueza(a); rb != ra {
		return rb > ra
	}
	// Empate total: nos quedamos con el precio más bajo (conservador)
	return b.Price < a.Price
}

func riqueza(rec models.PriceRecord) int {
	n := 0
	if rec.Barcode != "" {
		n++
	}
	if rec.Code != "" {
		n++
	}
	return n
}
