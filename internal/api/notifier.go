package api

import (
	"encoding/json"
	"time"
)

// CatalogWSNotifier avisa por WebSocket que el catálogo del comercio cambió.
// Implementa services.CatalogNotifier sin que el servicio dependa de la capa HTTP.
type CatalogWSNotifier struct {
	hub *Hub
}

func NewCatalogWSNotifier(hub *Hub) *CatalogWSNotifier {
	return &CatalogWSNotifier{hub: hub}
}

func salaComercio(tenantID string) string {
	return "tenant:" + tenantID
}

// NotifyCatalogUpdated envía el aviso a la sala del comercio
func (n *CatalogWSNotifier) NotifyCatalogUpdated(tenantID string, imported int) {
	aviso, _ := json.Marshal(map[string]interface{}{
		"type":       "catalogo_actualizado",
		"imported":   imported,
		"updated_at": time.Now().UTC().UnixMilli(),
	})
	n.hub.BroadcastToRoom(salaComercio(tenantID), aviso)
}
