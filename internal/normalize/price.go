package normalize

import (
	"strconv"
	"strings"
)

// Price convierte el texto de una celda de precio a float64.
// Acepta símbolos de moneda, espacios y separadores de miles en cualquier
// combinación de punto y coma:
//   - si aparecen ambos separadores, el que aparece ÚLTIMO es el decimal y el
//     otro se descarta como separador de miles
//   - si aparece uno solo, es decimal únicamente cuando aparece una sola vez
//     y le siguen exactamente 2 o 3 dígitos; si no, es separador de miles
//
// Cualquier entrada imposible de interpretar devuelve 0. El signo negativo se
// conserva solo si está al comienzo de la cadena.
func Price(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negativo := strings.HasPrefix(s, "-")

	// Nos quedamos solo con dígitos y separadores
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	limpio := b.String()
	if limpio == "" {
		return 0
	}

	puntoIdx := strings.LastIndex(limpio, ".")
	comaIdx := strings.LastIndex(limpio, ",")

	switch {
	case puntoIdx >= 0 && comaIdx >= 0:
		// El separador que aparece último gana como decimal
		if comaIdx > puntoIdx {
			limpio = strings.ReplaceAll(limpio, ".", "")
			limpio = strings.ReplaceAll(limpio, ",", ".")
		} else {
			limpio = strings.ReplaceAll(limpio, ",", "")
		}
	case puntoIdx >= 0:
		if !esDecimalUnico(limpio, puntoIdx, ".") {
			limpio = strings.ReplaceAll(limpio, ".", "")
		}
	case comaIdx >= 0:
		if esDecimalUnico(limpio, comaIdx, ",") {
			limpio = strings.Replace(limpio, ",", ".", 1)
		} else {
			limpio = strings.ReplaceAll(limpio, ",", "")
		}
	}

	valor, err := strconv.ParseFloat(limpio, 64)
	if err != nil {
		return 0
	}
	if negativo {
		valor = -valor
	}
	return valor
}

// esDecimalUnico decide si un separador único actúa como decimal: debe
// aparecer una sola vez y tener exactamente 2 o 3 dígitos a continuación
func esDecimalUnico(s string, idx int, sep string) bool {
	if strings.Count(s, sep) != 1 {
		return false
	}
	resto := len(s) - idx - 1
	return resto == 2 || resto == 3
}

// Quantity interpreta una cantidad ingresada por el operador. La coma se
// acepta como separador decimal. Una entrada vacía vale 0; una entrada
// imposible de interpretar devuelve error (bloquea el lote completo). Los
// valores negativos se recortan a 0.
func Quantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	valor, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if valor < 0 {
		return 0, nil
	}
	return valor, nil
}
