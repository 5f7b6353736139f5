package rpc

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nvalette/marketd/internal/core/tx"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = 54 * time.Second
	wsMaxMessageSize = 64 * 1024
	wsSendBuffer     = 256
)

// WebSocketServer streams marketplace events to subscribed clients. It
// implements tx.Publisher, so it can be handed straight to the engine.
type WebSocketServer struct {
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	connections map[string]*wsConnection

	nextID atomic.Uint64
}

type wsConnection struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

var _ tx.Publisher = (*WebSocketServer)(nil)

// NewWebSocketServer creates a WebSocket event server.
func NewWebSocketServer() *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		connections: make(map[string]*wsConnection),
	}
}

// ServeHTTP upgrades the request and starts the connection pumps.
func (ws *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("rpc: websocket upgrade failed: %v", err)
		return
	}

	c := &wsConnection{
		id:   fmt.Sprintf("ws-%d", ws.nextID.Add(1)),
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}

	ws.mu.Lock()
	ws.connections[c.id] = c
	ws.mu.Unlock()

	go ws.readPump(c)
	go ws.writePump(c)
}

// Publish broadcasts one event to every connected client. Slow clients are
// disconnected rather than allowed to block the submission path.
func (ws *WebSocketServer) Publish(ev tx.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rpc: failed to marshal event %s: %v", ev.Type, err)
		return
	}

	ws.mu.RLock()
	conns := make([]*wsConnection, 0, len(ws.connections))
	for _, c := range ws.connections {
		conns = append(conns, c)
	}
	ws.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- payload:
		default:
			ws.drop(c)
		}
	}
}

// ConnectionCount reports the number of live subscribers.
func (ws *WebSocketServer) ConnectionCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.connections)
}

// Close disconnects every client.
func (ws *WebSocketServer) Close() {
	ws.mu.RLock()
	conns := make([]*wsConnection, 0, len(ws.connections))
	for _, c := range ws.connections {
		conns = append(conns, c)
	}
	ws.mu.RUnlock()

	for _, c := range conns {
		ws.drop(c)
	}
}

func (ws *WebSocketServer) drop(c *wsConnection) {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
	ws.mu.Lock()
	delete(ws.connections, c.id)
	ws.mu.Unlock()
}

// readPump discards inbound messages; the stream is one-way. It exists to
// process control frames and detect dead peers.
func (ws *WebSocketServer) readPump(c *wsConnection) {
	defer ws.drop(c)

	c.conn.SetReadLimit(wsMaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (ws *WebSocketServer) writePump(c *wsConnection) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ws.drop(c)
	}()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
