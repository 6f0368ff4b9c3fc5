package catalog

import "testing"

func TestClassifyHeader(t *testing.T) {
	casos := []struct {
		header string
		campo  Field
		ok     bool
	}{
		{"Descripción", FieldName, true},
		{"NOMBRE DEL PRODUCTO", FieldName, true},
		{"Código", FieldCode, true},
		{"Cod.", FieldCode, false}, // "cod." no es el token "cod"
		{"Cod", FieldCode, true},
		{"SKU", FieldCode, true},
		{"Código de Barras", FieldBarcode, true},
		{"COD BARRAS", FieldBarcode, true},
		{"EAN13", FieldBarcode, true},
		{"Precio", FieldPrice, true},
		{"Precio Unitario", FieldPrice, true},
		{"Precio Anterior", FieldPrice, true}, // contiene el token "precio"
		{"PVP", FieldPrice, true},
		{"Desde", FieldDate, true},
		{"Vigente Desde", FieldDate, true},
		{"Vigencia Desde", "", false}, // vigencia excluye la columna de fecha
		{"Hasta", "", false},
		{"Fecha de Vencimiento", "", false},
		{"Observaciones", "", false},
		{"", "", false},
	}

	for _, c := range casos {
		campo, ok := classifyHeader(c.header)
		if ok != c.ok {
			t.Errorf("classifyHeader(%q): ok = %v, se esperaba %v", c.header, ok, c.ok)
			continue
		}
		if ok && campo != c.campo {
			t.Errorf("classifyHeader(%q) = %q, se esperaba %q", c.header, campo, c.campo)
		}
	}
}

func TestHeaderMatchesTokens(t *testing.T) {
	// Alias de una palabra: coincidencia exacta de token
	if headerMatches("precios", "precio") {
		t.Error("\"precios\" no debería coincidir con el alias \"precio\"")
	}
	if !headerMatches("precio de lista", "precio") {
		t.Error("\"precio de lista\" debería coincidir con el alias \"precio\"")
	}
	// Alias de varias palabras: subcadena de la frase normalizada
	if !headerMatches("Nro. Código de Barras EAN", "codigo de barras") {
		t.Error("la frase con acentos debería coincidir con \"codigo de barras\"")
	}
}

func TestInspectSheetFilaDeEncabezado(t *testing.T) {
	rows := [][]string{
		{"Lista de precios - Distribuidora Sur"},
		{""},
		{"Código", "Descripción", "Precio", "Desde"},
		{"A001", "Yerba 1kg", "3.500,00", "01/03/2024"},
	}
	sel := inspectSheet("Hoja1", rows)
	if !sel.Viable {
		t.Fatal("la hoja debería ser viable (tiene precio y fecha)")
	}
	if sel.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d, se esperaba 2", sel.HeaderRow)
	}
	if sel.Columns[FieldPrice] != 2 || sel.Columns[FieldDate] != 3 {
		t.Errorf("columnas detectadas incorrectas: %v", sel.Columns)
	}
}

func TestInspectSheetPrimeraColumnaGana(t *testing.T) {
	rows := [][]string{
		{"Precio", "Precio Publico", "Desde", "Descripción"},
	}
	sel := inspectSheet("Hoja1", rows)
	if sel.Columns[FieldPrice] != 0 {
		t.Errorf("con columnas duplicadas debe ganar la primera, se obtuvo %d", sel.Columns[FieldPrice])
	}
}

func TestSelectBestSheet(t *testing.T) {
	sheets := map[string][][]string{
		"Resumen": {
			{"Total productos", "1200"},
		},
		"Precios": {
			{"Precio", "Desde"},
			{"100", "01/03/2024"},
		},
		"Completa": {
			{"Código", "Descripción", "Barras", "Precio", "Desde"},
			{"A1", "Azúcar", "7790000000001", "900", "01/03/2024"},
		},
	}
	orden := []string{"Resumen", "Precios", "Completa"}

	sel, inspecciones := SelectBestSheet(orden, sheets)
	if sel.Sheet != "Completa" {
		t.Errorf("se eligió la hoja %q, se esperaba \"Completa\" (más identificadores)", sel.Sheet)
	}
	if len(inspecciones) != 3 {
		t.Errorf("se esperaban 3 inspecciones, hay %d", len(inspecciones))
	}
}

func TestSelectBestSheetEmpateGanaLaPrimera(t *testing.T) {
	hoja := [][]string{
		{"Descripción", "Precio", "Desde"},
	}
	sheets := map[string][][]string{"B": hoja, "A": hoja}
	sel, _ := SelectBestSheet([]string{"B", "A"}, sheets)
	if sel.Sheet != "B" {
		t.Errorf("a igual puntaje gana la primera hoja del archivo, se obtuvo %q", sel.Sheet)
	}
}

func TestSelectBestSheetSinViables(t *testing.T) {
	sheets := map[string][][]string{
		"Hoja1": {{"Producto", "Stock"}},
	}
	sel, _ := SelectBestSheet([]string{"Hoja1"}, sheets)
	if sel.Viable {
		t.Error("sin columna de precio y fecha la selección no puede ser viable")
	}
}
