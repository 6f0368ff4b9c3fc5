package api

import (
	"sync"

	"github.com/gorilla/websocket"
)

type mensajeSala struct {
	sala string
	data []byte
}

// Hub administra las conexiones WebSocket agrupadas por sala (una sala por
// sucursal; la sala vacía recibe los avisos globales del comercio)
type Hub struct {
	salas     map[string]map[*websocket.Conn]bool
	broadcast chan mensajeSala
	mutex     sync.RWMutex
}

// GlobalHub es el hub compartido de todo el proceso
var GlobalHub = NewHub()

func NewHub() *Hub {
	return &Hub{
		salas:     make(map[string]map[*websocket.Conn]bool),
		broadcast: make(chan mensajeSala, 256),
	}
}

// Run procesa los mensajes del canal de broadcast
func (h *Hub) Run() {
	for {
		msg := <-h.broadcast
		h.mutex.RLock()
		clientes := make([]*websocket.Conn, 0, len(h.salas[msg.sala]))
		for conn := range h.salas[msg.sala] {
			clientes = append(clientes, conn)
		}
		h.mutex.RUnlock()

		for _, conn := range clientes {
			if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				h.RemoveClient(msg.sala, conn)
			}
		}
	}
}

// AddClient suma una conexión a la sala
func (h *Hub) AddClient(sala string, conn *websocket.Conn) {
	h.mutex.Lock()
	if h.salas[sala] == nil {
		h.salas[sala] = make(map[*websocket.Conn]bool)
	}
	h.salas[sala][conn] = true
	h.mutex.Unlock()
}

// RemoveClient saca la conexión de la sala y la cierra
func (h *Hub) RemoveClient(sala string, conn *websocket.Conn) {
	h.mutex.Lock()
	if clientes, ok := h.salas[sala]; ok {
		if _, existe := clientes[conn]; existe {
			delete(clientes, conn)
			conn.Close()
		}
		if len(clientes) == 0 {
			delete(h.salas, sala)
		}
	}
	h.mutex.Unlock()
}

// BroadcastToRoom envía un mensaje a todos los clientes de una sala sin
// bloquear: si el canal está lleno el mensaje se descarta
func (h *Hub) BroadcastToRoom(sala string, message []byte) {
	select {
	case h.broadcast <- mensajeSala{sala: sala, data: message}:
	default:
	}
}

// GetClientsCount devuelve la cantidad de clientes de una sala
func (h *Hub) GetClientsCount(sala string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.salas[sala])
}
