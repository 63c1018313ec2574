// Package ws implementa el hub de broadcast por WebSocket: cada cambio de orden
// confirmado se difunde a todos los clientes conectados (cajas, cocina, tablero
// de recogida).
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/pkg/logger"
)

var _ orders.EventPublisher = (*Hub)(nil)

// Tamaño del buffer de salida por cliente. Un cliente que no drena su buffer
// se desconecta: el broadcast nunca bloquea al coordinador.
const clientBufferSize = 32

const writeWait = 10 * time.Second

// Hub registro de clientes conectados y difusión de eventos.
type Hub struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{log: log, clients: make(map[*client]struct{})}
}

// Publish difunde el evento a todos los clientes. No bloquea: los clientes con
// el buffer lleno se descartan.
func (h *Hub) Publish(event orders.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Event).Msg("ws: serializar evento")
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- body:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn().Msg("ws: cliente lento desconectado")
		h.drop(c)
	}
}

// ClientCount cantidad de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve registra la conexión y la atiende hasta que el cliente cierre. Se usa
// como callback de websocket.New en el router.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, clientBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()

	// Lector: solo para detectar el cierre del cliente (no se aceptan comandos).
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

func (c *client) writePump() {
	for body := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}
