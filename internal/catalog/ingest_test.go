package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestIngestCSV(t *testing.T) {
	csv := "Código;Descripción;Precio;Desde\n" +
		"A001;Yerba 1kg;3.500,00;01/03/2024\n" +
		"A002;Azúcar Rubia;1.200,50;15/03/2024 14:30\n" +
		"\n" +
		";;;01/03/2024\n" + // sin identificador
		"A003;Fideos;800;sin fecha\n" // fecha inválida

	res, err := IngestFile([]byte(csv), "lista.csv")
	if err != nil {
		t.Fatalf("IngestFile devolvió error: %v", err)
	}
	if res.RowCount != 2 {
		t.Errorf("RowCount = %d, se esperaban 2 filas aceptadas", res.RowCount)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, se esperaban 2 filas descartadas", res.Skipped)
	}
	if len(res.Records) != 2 {
		t.Fatalf("se esperaban 2 registros, hay %d", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Code != "A001" || rec.Name != "Yerba 1kg" {
		t.Errorf("registro incorrecto: %+v", rec)
	}
	if rec.Price != 3500 {
		t.Errorf("precio = %v, se esperaba 3500", rec.Price)
	}
	if rec.UpdatedAt == 0 {
		t.Error("la fecha aceptada no puede quedar en cero")
	}
	if rec.IdentityKey != "c:a001" {
		t.Errorf("IdentityKey = %q, se esperaba \"c:a001\"", rec.IdentityKey)
	}
	if rec.ID == "" {
		t.Error("cada registro debe salir con ID asignado")
	}
}

func TestIngestCSVWindows1252(t *testing.T) {
	// "Descripción" y "Azúcar" en Windows-1252 (ó = 0xF3, ú = 0xFA)
	csv := []byte("C\xf3digo,Descripci\xf3n,Precio,Desde\nA1,Az\xfacar,900,01/03/2024\n")

	res, err := IngestFile(csv, "lista.csv")
	if err != nil {
		t.Fatalf("el CSV en Windows-1252 debería parsearse: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Name != "Azúcar" {
		t.Errorf("la transcodificación falló: %+v", res.Records)
	}
}

func TestIngestCSVSinEncabezados(t *testing.T) {
	csv := "Producto,Stock\nYerba,12\n"

	_, err := IngestFile([]byte(csv), "stock.csv")
	var noHeaders *NoHeadersError
	if !errors.As(err, &noHeaders) {
		t.Fatalf("se esperaba NoHeadersError, se obtuvo %v", err)
	}
	if _, ok := noHeaders.Hint["csv"]; !ok {
		t.Error("el error debe incluir el diagnóstico por hoja")
	}
}

func TestIngestFormatoNoSoportado(t *testing.T) {
	if _, err := IngestFile([]byte("{}"), "lista.json"); err == nil {
		t.Error("un formato desconocido debe rechazarse")
	}
}

func TestIngestXLSXMultiHoja(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// Hoja de resumen sin encabezados útiles
	f.SetSheetName("Sheet1", "Resumen")
	f.SetCellValue("Resumen", "A1", "Total de productos")
	f.SetCellValue("Resumen", "B1", 2)

	// Hoja real de precios
	idx, err := f.NewSheet("Precios")
	if err != nil {
		t.Fatal(err)
	}
	f.SetActiveSheet(idx)
	encabezados := []string{"Código", "Descripción", "Código de Barras", "Precio", "Desde"}
	for j, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(j+1, 1)
		f.SetCellValue("Precios", celda, h)
	}
	filas := [][]interface{}{
		{"A001", "Yerba 1kg", "7790000000001", "3500", "01/03/2024"},
		{"A002", "Azúcar", "7790000000002", "1200", "02/03/2024"},
	}
	for i, fila := range filas {
		for j, v := range fila {
			celda, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue("Precios", celda, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	res, err := IngestFile(buf.Bytes(), "lista.xlsx")
	if err != nil {
		t.Fatalf("IngestFile devolvió error: %v", err)
	}
	if res.Sheet != "Precios" {
		t.Errorf("se ingirió la hoja %q, se esperaba \"Precios\"", res.Sheet)
	}
	if len(res.Records) != 2 {
		t.Fatalf("se esperaban 2 registros, hay %d", len(res.Records))
	}
	if res.Records[0].IdentityKey != "b:7790000000001" {
		t.Errorf("con barcode largo la clave debe ser b:, se obtuvo %q", res.Records[0].IdentityKey)
	}
}

func TestIngestXLSXSinHojasViables(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Producto")
	f.SetCellValue("Sheet1", "B1", "Cantidad")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	_, err = IngestFile(buf.Bytes(), "inventario.xlsx")
	var noHeaders *NoHeadersError
	if !errors.As(err, &noHeaders) {
		t.Fatalf("se esperaba NoHeadersError, se obtuvo %v", err)
	}
}

func TestIngestCSVDelimitadores(t *testing.T) {
	for _, delim := range []string{",", ";", "\t", "|"} {
		csv := fmt.Sprintf("Descripción%sPrecio%sDesde\nYerba%s3500%s01/03/2024\n",
			delim, delim, delim, delim)
		res, err := IngestFile([]byte(csv), "lista.csv")
		if err != nil {
			t.Errorf("delimitador %q: %v", delim, err)
			continue
		}
		if len(res.Records) != 1 || res.Records[0].Name != "Yerba" {
			t.Errorf("delimitador %q: registros %+v", delim, res.Records)
		}
	}
}
