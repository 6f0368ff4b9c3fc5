package normalize

import "testing"

func TestPrice(t *testing.T) {
	casos := []struct {
		entrada string
		salida  float64
	}{
		{"", 0},
		{"350", 350},
		{"$ 350", 350},
		{"1.234,56", 1234.56}, // la coma aparece última: decimal
		{"1,234.56", 1234.56}, // el punto aparece último: decimal
		{"1.234", 1.234},      // separador único con 3 dígitos detrás: decimal
		{"350,00", 350},       // separador único con 2 dígitos detrás: decimal
		{"1.234.567", 1234567}, // separador repetido: miles
		{"1,234,567", 1234567},
		{"1.5", 15},            // un solo dígito detrás: se trata como miles
		{"-120,50", -120.5},    // signo al inicio se conserva
		{"€ 99.90", 99.9},
		{"sin precio", 0},
		{"12.345,00", 12345},
	}
	for _, c := range casos {
		if got := Price(c.entrada); got != c.salida {
			t.Errorf("Price(%q) = %v, esperado %v", c.entrada, got, c.salida)
		}
	}
}

func TestQuantity(t *testing.T) {
	if v, err := Quantity("12,5"); err != nil || v != 12.5 {
		t.Fatalf("Quantity(12,5) = %v, %v", v, err)
	}
	if v, err := Quantity(""); err != nil || v != 0 {
		t.Fatalf("Quantity vacía = %v, %v", v, err)
	}
	if v, err := Quantity("-3"); err != nil || v != 0 {
		t.Fatalf("Quantity negativa debe recortarse a 0, fue %v, %v", v, err)
	}
	if _, err := Quantity("doce"); err == nil {
		t.Fatal("Quantity con texto debe devolver error")
	}
}
