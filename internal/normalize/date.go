package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// Fechas anteriores a 2005-01-01 UTC se consideran artefactos de planilla
	// (ej: "01/01/00") y se normalizan a 0
	minFechaValidaMs = int64(1104537600000)

	// Época de los números de serie de planilla: 1899-12-30 UTC
	epocaSerialMs = int64(-2209161600000)

	msPorDia = 86400000.0
)

// Formatos de fecha probados en orden. Las planillas de proveedores mezclan
// variantes locales dd/MM con y sin hora; al final se prueba el orden
// MM/dd como último recurso para exportaciones con configuración regional
// ambigua.
var formatosFecha = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 03:04:05 PM",
	"02/01/2006 03:04 PM",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/06 15:04",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// Variantes del meridiano en español ("a. m.", "p.m.", etc.)
var reemplazoMeridiano = strings.NewReplacer(
	"a. m.", "AM", "a.m.", "AM", "a. m", "AM", "a m", "AM",
	"p. m.", "PM", "p.m.", "PM", "p. m", "PM", "p m", "PM",
)

// UpdatedAt convierte el valor de una celda de fecha a epoch en milisegundos.
// Acepta epoch en ms (>1e11), epoch en segundos (1e9..1e11), números de serie
// de planilla (20000..80000) y las variantes de texto dd/MM con o sin hora.
// Devuelve 0 si el valor no se puede interpretar o cae antes del corte de
// validez.
func UpdatedAt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Valores numéricos: epoch o número de serie
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return desdeNumero(f)
	}

	texto := reemplazoMeridiano.Replace(strings.TrimSpace(s))
	for _, formato := range formatosFecha {
		t, err := time.Parse(formato, texto)
		if err != nil {
			continue
		}
		ms := t.UnixMilli()
		if ms < minFechaValidaMs {
			return 0
		}
		return ms
	}
	return 0
}

func desdeNumero(f float64) int64 {
	var ms int64
	switch {
	case f > 1e11:
		ms = int64(math.Round(f))
	case f >= 1e9:
		ms = int64(math.Round(f * 1000))
	case f >= 20000 && f <= 80000:
		ms = epocaSerialMs + int64(math.Round(f*msPorDia))
	default:
		return 0
	}
	if ms < minFechaValidaMs {
		return 0
	}
	return ms
}

// FechaLabel arma la etiqueta legible de un timestamp en milisegundos
func FechaLabel(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("02/01/2006 15:04")
}
