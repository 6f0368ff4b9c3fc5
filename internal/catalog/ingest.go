package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/normalize"
)

// NoHeadersError se devuelve cuando ninguna hoja tiene columna de precio y
// de fecha. Hint lleva, por hoja, qué encabezado se detectó para cada campo
// (diagnóstico para el que subió el archivo).
type NoHeadersError struct {
	Hint map[string]map[string]string
}

func (e *NoHeadersError) Error() string {
	return "no se encontraron encabezados válidos: se requiere una columna de precio y una columna de fecha (desde)"
}

// IngestResult es el resultado de parsear un archivo completo
type IngestResult struct {
	Records  []models.PriceRecord
	RowCount int // filas aceptadas antes de la deduplicación
	Skipped  int // filas descartadas (sin identificador o sin fecha válida)
	Sheet    string
}

// IngestFile parsea un archivo subido (.csv, .xlsx o .xls) y devuelve los
// registros de precio normalizados. No escribe nada: el que llama decide si
// persiste el resultado.
func IngestFile(data []byte, filename string) (*IngestResult, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ingestCSV(data)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ingestXLSX(data)
	}
	return nil, fmt.Errorf("formato de archivo no soportado: %s (use .csv, .xlsx o .xls)", filename)
}

func ingestCSV(data []byte) (*IngestResult, error) {
	// Detectamos la codificación: si no es UTF-8 válido probamos Windows-1252
	// (la codificación habitual de los exports locales)
	utf8Data := data
	if !utf8.Valid(data) {
		decoder := charmap.Windows1252.NewDecoder()
		if convertido, _, err := transform.Bytes(decoder, data); err == nil {
			utf8Data = convertido
		}
	}

	reader := csv.NewReader(bytes.NewReader(utf8Data))
	reader.Comma = detectDelimiter(utf8Data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("⚠️ Error leyendo fila CSV: %v, se omite", err)
			continue
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("el archivo está vacío")
	}

	return extractRows(map[string][][]string{"csv": rows}, []string{"csv"})
}

func ingestXLSX(data []byte) (*IngestResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error abriendo el archivo XLSX: %w", err)
	}
	defer f.Close()

	nombres := f.GetSheetList()
	if len(nombres) == 0 {
		return nil, fmt.Errorf("el archivo no contiene hojas")
	}

	sheets := make(map[string][][]string, len(nombres))
	for _, nombre := range nombres {
		rows, err := f.GetRows(nombre)
		if err != nil {
			return nil, fmt.Errorf("error leyendo la hoja %s: %w", nombre, err)
		}
		sheets[nombre] = rows
	}

	return extractRows(sheets, nombres)
}

// extractRows selecciona la mejor hoja y convierte sus filas en registros
func extractRows(sheets map[string][][]string, order []string) (*IngestResult, error) {
	sel, inspecciones := SelectBestSheet(order, sheets)
	if !sel.Viable {
		hint := make(map[string]map[string]string, len(inspecciones))
		for _, insp := range inspecciones {
			detectado := make(map[string]string)
			for campo, encabezado := range insp.Detected {
				detectado[string(campo)] = encabezado
			}
			hint[insp.Sheet] = detectado
		}
		return nil, &NoHeadersError{Hint: hint}
	}

	rows := sheets[sel.Sheet]
	res := &IngestResult{Sheet: sel.Sheet}

	celda := func(row []string, campo Field) string {
		idx, ok := sel.Columns[campo]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(strings.Trim(row[idx], "\"'\t"))
	}

	for i := sel.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]
		if filaVacia(row) {
			continue
		}

		nombre := celda(row, FieldName)
		codigo := celda(row, FieldCode)
		barcode := normalize.Barcode(celda(row, FieldBarcode))

		// Sin identificador utilizable la fila no se emite
		if nombre == "" && codigo == "" && barcode == "" {
			res.Skipped++
			continue
		}

		fechaCruda := celda(row, FieldDate)
		ts := normalize.UpdatedAt(fechaCruda)
		if ts == 0 {
			res.Skipped++
			continue
		}

		rec := models.PriceRecord{
			ID:             uuid.New().String(),
			Name:           nombre,
			Code:           codigo,
			Barcode:        barcode,
			Price:          normalize.Price(celda(row, FieldPrice)),
			UpdatedAt:      ts,
			UpdatedAtLabel: normalize.FechaLabel(ts),
		}
		rec.IdentityKey = IdentityKey(rec)
		res.Records = append(res.Records, rec)
		res.RowCount++
	}

	return res, nil
}

func filaVacia(row []string) bool {
	for _, celda := range row {
		if strings.TrimSpace(celda) != "" {
			return false
		}
	}
	return true
}

// detectDelimiter elige el separador más frecuente en la primera parte del
// archivo (coma, punto y coma, tabulador o pipe)
func detectDelimiter(data []byte) rune {
	muestra := string(data)
	if len(muestra) > 1000 {
		muestra = muestra[:1000]
	}

	delimitador := ','
	maxCount := strings.Count(muestra, ",")

	if n := strings.Count(muestra, ";"); n > maxCount {
		maxCount = n
		delimitador = ';'
	}
	if n := strings.Count(muestra, "\t"); n > maxCount {
		maxCount = n
		delimitador = '\t'
	}
	if n := strings.Count(muestra, "|"); n > maxCount {
		delimitador = '|'
	}
	return delimitador
}
