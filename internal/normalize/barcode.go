package normalize

import "strings"

// Barcode normaliza un código de barras. Los códigos puramente numéricos se
// reducen a sus dígitos (sin separadores de agrupación); si el código contiene
// letras se conserva tal cual, normalizando espacios y mayúsculas. Un
// resultado vacío significa "sin código".
func Barcode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if HasLetter(s) {
		return strings.ToUpper(strings.Join(strings.Fields(s), " "))
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
