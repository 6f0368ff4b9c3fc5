package catalog

// Field identifica una columna lógica del catálogo
type Field string

// Columnas lógicas que se buscan en los encabezados
const (
	FieldName    Field = "name"
	FieldCode    Field = "code"
	FieldBarcode Field = "barcode"
	FieldPrice   Field = "price"
	FieldDate    Field = "date"
)

type aliasSet struct {
	Field   Field
	Aliases []string
}

// Tabla estática de alias por campo. El orden importa: barcode se evalúa
// antes que code para que "codigo de barras" no quede clasificado como
// código interno por el token "codigo".
var aliasTable = []aliasSet{
	{FieldBarcode, []string{
		"codigo barras", "codigo de barras", "cod barras", "cod de barras",
		"ean", "ean13", "upc", "barras",
	}},
	{FieldName, []string{
		"descripcion", "nombre", "detalle", "producto", "articulo",
		"denominacion", "item",
	}},
	{FieldCode, []string{
		"codigo", "cod", "id", "sku", "referencia", "ref", "clave", "plu",
	}},
	{FieldPrice, []string{
		"precio", "pvp", "importe", "precio venta", "precio unitario",
		"precio publico", "monto",
	}},
	// La fecha de actualización es estrictamente la columna "desde"
	// (inicio de vigencia); nunca una columna de vencimiento
	{FieldDate, []string{"desde"}},
}

// Encabezados que jamás pueden actuar como columna de fecha aunque
// contengan un token compatible
var fechaExcluida = []string{"vigencia", "hasta", "vencimiento", "expira"}
