package normalize

import (
	"testing"
	"time"
)

func TestUpdatedAtFormatos(t *testing.T) {
	casos := []struct {
		entrada string
		salida  int64
	}{
		{"", 0},
		{"15/03/2024 14:30", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC).UnixMilli()},
		{"15/03/2024 14:30:45", time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC).UnixMilli()},
		{"15/03/2024 02:30 p. m.", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC).UnixMilli()},
		{"15-03-2024 14:30", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC).UnixMilli()},
		{"15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"01/01/00 00:00", 0}, // artefacto de planilla, anterior al corte
		{"31/12/2004", 0},     // anterior al corte de validez
		{"no es fecha", 0},
	}
	for _, c := range casos {
		if got := UpdatedAt(c.entrada); got != c.salida {
			t.Errorf("UpdatedAt(%q) = %d, esperado %d", c.entrada, got, c.salida)
		}
	}
}

func TestUpdatedAtNumeros(t *testing.T) {
	// Epoch en milisegundos
	ms := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := UpdatedAt("1710460800000"); got != ms {
		t.Errorf("epoch ms = %d, esperado %d", got, ms)
	}
	// Epoch en segundos se escala a milisegundos
	if got := UpdatedAt("1710460800"); got != ms {
		t.Errorf("epoch s = %d, esperado %d", got, ms)
	}
	// Número de serie de planilla: 45366 = 2024-03-15
	if got := UpdatedAt("45366"); got != ms {
		t.Errorf("serial = %d, esperado %d", got, ms)
	}
	// Fuera del rango de serie y de epoch
	if got := UpdatedAt("1234"); got != 0 {
		t.Errorf("número fuera de rango = %d, esperado 0", got)
	}
}

func TestFechaLabel(t *testing.T) {
	ms := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC).UnixMilli()
	if got := FechaLabel(ms); got != "15/03/2024 14:30" {
		t.Errorf("FechaLabel = %q", got)
	}
	if got := FechaLabel(0); got != "" {
		t.Errorf("FechaLabel(0) = %q, esperado vacío", got)
	}
}
