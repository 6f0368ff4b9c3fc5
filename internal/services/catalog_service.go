package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"tiendafacil/server/internal/catalog"
	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/normalize"
	"tiendafacil/server/internal/storage"
	"tiendafacil/server/internal/utils"
)

// CatalogNotifier recibe el aviso de catálogo actualizado (websocket u otro
// canal); se inyecta desde el arranque para no acoplar el servicio a la capa HTTP
type CatalogNotifier interface {
	NotifyCatalogUpdated(tenantID string, imported int)
}

// CatalogService orquesta la importación de catálogos: parseo, reducción,
// persistencia atómica del snapshot, caché y aviso a los consumidores.
type CatalogService struct {
	blobs    storage.BlobStore
	redis    *utils.RedisService
	writer   *kafka.Writer
	notifier CatalogNotifier
	cacheTTL time.Duration
}

// NewCatalogService crea el servicio. redis, writer y notifier pueden ser nil:
// el servicio degrada a solo-blob sin caché ni avisos.
func NewCatalogService(blobs storage.BlobStore, redis *utils.RedisService, writer *kafka.Writer, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		blobs:    blobs,
		redis:    redis,
		writer:   writer,
		cacheTTL: cacheTTL,
	}
}

// SetNotifier engancha el aviso de catálogo actualizado
func (s *CatalogService) SetNotifier(n CatalogNotifier) {
	s.notifier = n
}

func claveBlob(tenantID string) string {
	return "catalogo:" + tenantID
}

func claveCache(tenantID string) string {
	return "catalogo:cache:" + tenantID
}

// ImportFile procesa un archivo subido y reemplaza el catálogo completo del
// comercio. No hay escritura parcial: si el parseo falla no se toca nada.
func (s *CatalogService) ImportFile(ctx context.Context, tenantID string, data []byte, filename string) (*models.CatalogSnapshot, int, error) {
	res, err := catalog.IngestFile(data, filename)
	if err != nil {
		return nil, 0, err
	}

	reducidos := catalog.Reduce(res.Records)

	snapshot := &models.CatalogSnapshot{
		Items:      reducidos,
		RowCount:   res.RowCount,
		ImportedAt: time.Now().UTC().UnixMilli(),
		SourceMode: models.OrigenUpload,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, 0, fmt.Errorf("error serializando el snapshot: %w", err)
	}

	// Reemplazo atómico: el blob nuevo pisa al anterior
	if err := s.blobs.Put(ctx, claveBlob(tenantID), payload); err != nil {
		return nil, 0, err
	}

	// Caché en Redis, mejor esfuerzo: si falla seguimos con el blob guardado
	if s.redis != nil {
		if err := s.redis.Set(ctx, claveCache(tenantID), string(payload), s.cacheTTL); err != nil {
			log.Printf("⚠️ No se pudo cachear el catálogo de %s: %v", tenantID, err)
		}
	}

	// Aviso por Kafka para los consumidores externos (etiquetas, reportes)
	if s.writer != nil {
		evento, _ := json.Marshal(map[string]interface{}{
			"tenant_id":   tenantID,
			"imported":    len(reducidos),
			"row_count":   res.RowCount,
			"skipped":     res.Skipped,
			"imported_at": snapshot.ImportedAt,
		})
		if err := s.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(tenantID),
			Value: evento,
		}); err != nil {
			log.Printf("⚠️ No se pudo publicar el evento de catálogo de %s: %v", tenantID, err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyCatalogUpdated(tenantID, len(reducidos))
	}

	log.Printf("✅ Catálogo de %s importado: %d productos (%d filas, %d omitidas, hoja %q)",
		tenantID, len(reducidos), res.RowCount, res.Skipped, res.Sheet)

	return snapshot, res.Skipped, nil
}

// GetSnapshot devuelve el catálogo vigente del comercio: primero caché,
// después el blob persistido (y rellena la caché al pasar).
func (s *CatalogService) GetSnapshot(ctx context.Context, tenantID string) (*models.CatalogSnapshot, error) {
	if s.redis != nil {
		var snapshot models.CatalogSnapshot
		found, err := s.redis.GetJSON(ctx, claveCache(tenantID), &snapshot)
		if err != nil {
			log.Printf("⚠️ Error leyendo caché de catálogo de %s: %v", tenantID, err)
		}
		if found {
			return &snapshot, nil
		}
	}

	data, err := s.blobs.Get(ctx, claveBlob(tenantID))
	if err != nil {
		return nil, err
	}

	var snapshot models.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error deserializando el catálogo de %s: %w", tenantID, err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, claveCache(tenantID), string(data), s.cacheTTL); err != nil {
			log.Printf("⚠️ No se pudo rellenar la caché de %s: %v", tenantID, err)
		}
	}

	return &snapshot, nil
}

// Search filtra el catálogo por texto libre, insensible a acentos y
// mayúsculas, contra nombre, código y código de barras.
func (s *CatalogService) Search(ctx context.Context, tenantID, query string) ([]models.PriceRecord, error) {
	snapshot, err := s.GetSnapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	q := normalize.Text(query)
	if q == "" {
		return snapshot.Items, nil
	}

	var resultado []models.PriceRecord
	for _, rec := range snapshot.Items {
		if strings.Contains(normalize.Text(rec.Name), q) ||
			strings.Contains(normalize.Text(rec.Code), q) ||
			strings.Contains(strings.ToLower(rec.Barcode), q) {
			resultado = append(resultado, rec)
		}
	}
	return resultado, nil
}

// InvalidateCache borra la copia cacheada del catálogo
func (s *CatalogService) InvalidateCache(ctx context.Context, tenantID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, claveCache(tenantID)); err != nil {
		log.Printf("⚠️ No se pudo invalidar la caché de %s: %v", tenantID, err)
	}
}
