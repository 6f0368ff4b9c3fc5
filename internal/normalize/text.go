package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Espacios especiales que aparecen en exportaciones de planillas
// (no-break space, narrow no-break space, figure space)
var reemplazoEspacios = strings.NewReplacer(
	" ", " ",
	" ", " ",
	" ", " ",
)

// Text normaliza un texto para comparación insensible a mayúsculas y acentos:
// quita espacios duros, descompone Unicode y elimina diacríticos, pasa a
// minúsculas y colapsa los espacios
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = reemplazoEspacios.Replace(s)

	// NFD + eliminación de marcas diacríticas (Mn) + recomposición
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if limpio, _, err := transform.String(t, s); err == nil {
		s = limpio
	}

	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// HasLetter indica si la cadena contiene al menos una letra
func HasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// DigitCount cuenta los dígitos decimales de la cadena
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
