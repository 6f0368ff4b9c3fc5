package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/catalog"
	"tiendafacil/server/internal/services"
	"tiendafacil/server/internal/storage"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// UploadCatalog recibe un archivo de precios y reemplaza el catálogo completo
// POST /api/v1/catalog/upload  (multipart, campo "file")
func (cc *CatalogController) UploadCatalog(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "falta el archivo",
			"details": err.Error(),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo abrir el archivo", "details": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo", "details": err.Error()})
		return
	}

	snapshot, skipped, err := cc.service.ImportFile(c.Request.Context(), TenantID(c), data, fileHeader.Filename)
	if err != nil {
		var noHeaders *catalog.NoHeadersError
		if errors.As(err, &noHeaders) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": noHeaders.Error(),
				"hint":  noHeaders.Hint,
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"imported": len(snapshot.Items),
		"skipped":  skipped,
		"rowCount": snapshot.RowCount,
	})
}

// GetCatalog devuelve el snapshot vigente del catálogo
// GET /api/v1/catalog
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	snapshot, err := cc.service.GetSnapshot(c.Request.Context(), TenantID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "el comercio todavía no tiene catálogo importado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SearchCatalog busca productos por texto libre
// GET /api/v1/catalog/search?q=azucar
func (cc *CatalogController) SearchCatalog(c *gin.Context) {
	items, err := cc.service.Search(c.Request.Context(), TenantID(c), c.Query("q"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "el comercio todavía no tiene catálogo importado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
