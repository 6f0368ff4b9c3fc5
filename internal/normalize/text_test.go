package normalize

import "testing"

func TestText(t *testing.T) {
	casos := []struct {
		entrada string
		salida  string
	}{
		{"", ""},
		{"  Leche   Entera  ", "leche entera"},
		{"CAFÉ Torrado", "cafe torrado"},
		{"Azúcar Rubia", "azucar rubia"},
		{"Ñoquis", "noquis"},
		{"PRECIO ANTERIOR", "precio anterior"},
		{"Descripción", "descripcion"},
	}
	for _, c := range casos {
		if got := Text(c.entrada); got != c.salida {
			t.Errorf("Text(%q) = %q, esperado %q", c.entrada, got, c.salida)
		}
	}
}

func TestHasLetter(t *testing.T) {
	if HasLetter("123456") {
		t.Error("HasLetter no debe detectar letras en una cadena numérica")
	}
	if !HasLetter("ABC-123") {
		t.Error("HasLetter debe detectar letras")
	}
}

func TestDigitCount(t *testing.T) {
	if got := DigitCount("123 456 789"); got != 9 {
		t.Errorf("DigitCount = %d, esperado 9", got)
	}
}
