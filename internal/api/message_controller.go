package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tiendafacil/server/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El control de acceso real lo hace el middleware de sesión
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MessageController maneja la mensajería entre sucursales: WebSocket por
// sala y fan-out entre instancias vía Redis pub/sub
type MessageController struct {
	redis *utils.RedisService
	hub   *Hub
}

func NewMessageController(redis *utils.RedisService, hub *Hub) *MessageController {
	return &MessageController{redis: redis, hub: hub}
}

func canalSucursal(branchID string) string {
	return "mensajes:" + branchID
}

// BranchMessage es un mensaje dirigido a una sucursal
type BranchMessage struct {
	BranchID string `json:"branch_id"`
	From     string `json:"from"`
	Type     string `json:"type"`
	Body     string `json:"body"`
	SentAt   int64  `json:"sent_at"`
}

// PostMessage publica un mensaje a una sucursal
// POST /api/v1/messages
func (mc *MessageController) PostMessage(c *gin.Context) {
	var msg BranchMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "datos inválidos",
			"details": err.Error(),
		})
		return
	}
	if msg.BranchID == "" || msg.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id y body son obligatorios"})
		return
	}
	msg.From = c.GetString("user_id")
	msg.SentAt = time.Now().UTC().UnixMilli()
	if msg.Type == "" {
		msg.Type = "chat"
	}

	// Publicamos en Redis: todas las instancias con clientes de esa sucursal
	// lo reciben por la suscripción y lo reenvían a su hub local
	if err := mc.redis.Publish(c.Request.Context(), canalSucursal(msg.BranchID), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo publicar el mensaje", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// BranchWebSocket conecta un cliente a la sala de su sucursal
// GET /api/v1/ws/branch/:branchId
func (mc *MessageController) BranchWebSocket(c *gin.Context) {
	branchID := c.Param("branchId")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falta branch_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ Error actualizando a WebSocket: %v", err)
		return
	}

	mc.hub.AddClient(branchID, conn)
	log.Printf("🔌 Cliente conectado a la sala %s (%d conectados)", branchID, mc.hub.GetClientsCount(branchID))

	// Loop de lectura: solo para detectar la desconexión, los mensajes
	// entrantes van por el endpoint HTTP
	go func() {
		defer mc.hub.RemoveClient(branchID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// TenantWebSocket conecta un cliente a la sala general de su comercio
// (avisos de catálogo actualizado y eventos globales)
// GET /api/v1/ws/tenant
func (mc *MessageController) TenantWebSocket(c *gin.Context) {
	sala := salaComercio(TenantID(c))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ Error actualizando a WebSocket: %v", err)
		return
	}

	mc.hub.AddClient(sala, conn)
	go func() {
		defer mc.hub.RemoveClient(sala, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// StartSubscriber arranca la suscripción de Redis que reenvía los mensajes
// publicados al hub local. Corre hasta que se cancele el contexto.
func (mc *MessageController) StartSubscriber(ctx context.Context) {
	psub := mc.redis.PSubscribe(ctx, "mensajes:*")

	go func() {
		defer psub.Close()
		ch := psub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Println("🛑 Suscriptor de mensajes detenido")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				// El canal es mensajes:<branchId>
				branchID := msg.Channel[len("mensajes:"):]
				mc.hub.BroadcastToRoom(branchID, []byte(msg.Payload))
			}
		}
	}()
	log.Println("📨 Suscriptor de mensajes por sucursal iniciado")
}
