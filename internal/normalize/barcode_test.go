package normalize

import "testing"

func TestBarcode(t *testing.T) {
	casos := []struct {
		entrada string
		salida  string
	}{
		{"", ""},
		{"123 456 789", "123456789"},
		{"7.790.040.123456", "7790040123456"},
		{"ABC-123", "ABC-123"},
		{"abc  123", "ABC 123"},
		{"---", ""},
	}
	for _, c := range casos {
		if got := Barcode(c.entrada); got != c.salida {
			t.Errorf("Barcode(%q) = %q, esperado %q", c.entrada, got, c.salida)
		}
	}
}
