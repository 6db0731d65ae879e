package stream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 2 * time.Second
	maxReadMessage = 512
)

// Options configures a Hub.
type Options struct {
	MaxClients  int  // connections beyond this are refused (0 = unlimited)
	SendBuffer  int  // frames queued per client before dropping
	Compression bool // negotiate per-message deflate
}

// client is one websocket connection and its outbound queue.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans encoded frames out to websocket clients. Broadcast never blocks:
// a client whose queue is full misses the frame.
type Hub struct {
	opts     Options
	upgrader websocket.Upgrader
	metrics  *Metrics

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub. metrics may be nil.
func NewHub(opts Options, metrics *Metrics) *Hub {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 1
	}
	return &Hub{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    1024,
			WriteBufferSize:   64 * 1024,
			EnableCompression: opts.Compression,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		metrics: metrics,
		clients: make(map[*client]struct{}),
	}
}

// Handler returns a mux serving /ws and, when metrics are attached, /metrics.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	if h.metrics != nil {
		mux.Handle("/metrics", h.metrics.Handler())
	}
	return mux
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("stream listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// full reports whether another client would exceed MaxClients. Callers
// hold h.mu.
func (h *Hub) full() bool {
	return h.opts.MaxClients > 0 && len(h.clients) >= h.opts.MaxClients
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	refuse := h.closed || h.full()
	h.mu.Unlock()
	if refuse {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	if h.opts.Compression {
		conn.EnableWriteCompression(true)
	}

	c := &client{conn: conn, send: make(chan []byte, h.opts.SendBuffer)}
	if !h.add(c) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many clients"))
		conn.Close()
		return
	}
	slog.Info("stream client connected", "remote", r.RemoteAddr, "clients", h.Clients())

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.full() {
		return false
	}
	h.clients[c] = struct{}{}
	h.setClientGauge()
	return true
}

// remove unregisters c and closes its queue, which stops its write pump.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.setClientGauge()
}

func (h *Hub) setClientGauge() {
	if h.metrics != nil {
		h.metrics.Clients.Set(float64(len(h.clients)))
	}
}

// readPump discards inbound messages and returns when the peer goes away.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		slog.Info("stream client disconnected", "clients", h.Clients())
	}()
	c.conn.SetReadLimit(maxReadMessage)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			slog.Warn("stream write failed", "error", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Broadcast queues frame to every client and returns how many queues took
// it and how many were full. frame must not be modified afterwards.
func (h *Hub) Broadcast(frame []byte) (sent, dropped int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
			sent++
		default:
			dropped++
		}
	}
	if dropped > 0 {
		slog.Debug("stream frames dropped", "dropped", dropped)
	}
	if h.metrics != nil {
		h.metrics.FramesSent.Add(float64(sent))
		h.metrics.FramesDropped.Add(float64(dropped))
	}
	return sent, dropped
}

// ObserveStore forwards a store sample to the attached metrics.
func (h *Hub) ObserveStore(s StoreSample) {
	h.metrics.Observe(s)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.setClientGauge()
}
