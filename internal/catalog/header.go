package catalog

import (
	"strings"

	"tiendafacil/server/internal/normalize"
)

// Cantidad máxima de filas iniciales exploradas al buscar el encabezado
const maxFilasEncabezado = 10

// headerMatches indica si un alias coincide con un encabezado. Los alias de
// una sola palabra exigen coincidencia exacta de token (separado por
// espacios); los alias de varias palabras se buscan como subcadena de la
// frase normalizada.
func headerMatches(header, alias string) bool {
	h := normalize.Text(header)
	a := normalize.Text(alias)
	if h == "" || a == "" {
		return false
	}
	if strings.ContainsRune(a, ' ') {
		return strings.Contains(h, a)
	}
	for _, token := range strings.Fields(h) {
		if token == a {
			return true
		}
	}
	return false
}

// classifyHeader asigna el encabezado a su columna lógica, si corresponde
func classifyHeader(header string) (Field, bool) {
	for _, set := range aliasTable {
		if set.Field == FieldDate && esFechaExcluida(header) {
			continue
		}
		for _, alias := range set.Aliases {
			if headerMatches(header, alias) {
				return set.Field, true
			}
		}
	}
	return "", false
}

func esFechaExcluida(header string) bool {
	h := normalize.Text(header)
	for _, palabra := range fechaExcluida {
		if strings.Contains(h, palabra) {
			return true
		}
	}
	return false
}

// SheetSelection es el resultado de inspeccionar una hoja: qué columnas
// lógicas se detectaron y en qué fila está el encabezado
type SheetSelection struct {
	Sheet     string
	HeaderRow int
	Columns   map[Field]int
	Detected  map[Field]string
	Score     int
	Viable    bool
}

// inspectSheet busca la fila de encabezados (la que más columnas lógicas
// clasifica dentro de las primeras filas) y arma el mapa de columnas
func inspectSheet(name string, rows [][]string) SheetSelection {
	sel := SheetSelection{
		Sheet:    name,
		Columns:  make(map[Field]int),
		Detected: make(map[Field]string),
	}

	mejorFila := 0
	mejorCount := 0
	limite := len(rows)
	if limite > maxFilasEncabezado {
		limite = maxFilasEncabezado
	}
	for i := 0; i < limite; i++ {
		count := 0
		vistos := make(map[Field]bool)
		for _, celda := range rows[i] {
			if campo, ok := classifyHeader(celda); ok && !vistos[campo] {
				vistos[campo] = true
				count++
			}
		}
		if count > mejorCount {
			mejorCount = count
			mejorFila = i
		}
	}
	if mejorCount == 0 {
		return sel
	}

	sel.HeaderRow = mejorFila
	for j, celda := range rows[mejorFila] {
		campo, ok := classifyHeader(celda)
		if !ok {
			continue
		}
		// La primera columna de cada campo gana
		if _, ya := sel.Columns[campo]; ya {
			continue
		}
		sel.Columns[campo] = j
		sel.Detected[campo] = strings.TrimSpace(celda)
	}

	_, tienePrecio := sel.Columns[FieldPrice]
	_, tieneFecha := sel.Columns[FieldDate]
	sel.Viable = tienePrecio && tieneFecha

	for _, campo := range []Field{FieldName, FieldCode, FieldBarcode} {
		if _, ok := sel.Columns[campo]; ok {
			sel.Score++
		}
	}
	return sel
}

// SelectBestSheet elige la hoja a ingerir: entre las hojas con columna de
// precio y de fecha, gana la de más coincidencias de nombre/código/barras;
// a igualdad, la primera en el orden del archivo. Devuelve además la
// inspección de todas las hojas para diagnóstico.
func SelectBestSheet(order []string, sheets map[string][][]string) (SheetSelection, []SheetSelection) {
	inspecciones := make([]SheetSelection, 0, len(order))
	var mejor SheetSelection
	encontrada := false

	for _, nombre := range order {
		sel := inspectSheet(nombre, sheets[nombre])
		inspecciones = append(inspecciones, sel)
		if !sel.Viable {
			continue
		}
		if !encontrada || sel.Score > mejor.Score {
			mejor = sel
			encontrada = true
		}
	}
	return mejor, inspecciones
}
