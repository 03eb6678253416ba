package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/bibkit/internal/api/http"
	"github.com/GriffinCanCode/bibkit/internal/api/middleware"
	"github.com/GriffinCanCode/bibkit/internal/domain/cleanup"
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
)

const (
	// MaxMessageSize bounds a single client message
	MaxMessageSize = 1 << 20

	lookupTimeout = 2 * time.Minute
	closeGrace    = time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a client request. Entry is required for cleanup and fulltext.
type Message struct {
	Type   string            `json:"type"`
	Preset string            `json:"preset,omitempty"`
	Jobs   []string          `json:"jobs,omitempty"`
	Entry  *apihttp.EntryDTO `json:"entry,omitempty"`
}

// Handler streams per-entry cleanup and full-text results over a WebSocket
type Handler struct {
	api    *apihttp.Handlers
	logger *zap.Logger

	// base is cancelled by Close; every connection context derives from it
	base   context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewHandler creates a stream handler sharing the REST handlers' jobs,
// presets and fetchers
func NewHandler(api *apihttp.Handlers, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Handler{
		api:    api,
		logger: logger,
		base:   base,
		cancel: cancel,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Close cancels in-flight lookups, closes every open connection and waits
// for their handlers to return or ctx to expire. New upgrades are refused.
// Hijacked connections are invisible to http.Server.Shutdown.
func (h *Handler) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	h.cancel()
	deadline := time.Now().Add(closeGrace)
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		_ = conn.Close()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// track registers conn, reporting false once the handler is closed
func (h *Handler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	h.wg.Done()
}

// Register mounts the stream endpoint on router
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/api/v1/stream", h.HandleConnection)
}

// HandleConnection upgrades the request and serves messages until the
// client disconnects
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if !h.track(conn) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(closeGrace))
		return
	}
	defer h.untrack(conn)
	conn.SetReadLimit(MaxMessageSize)

	reqCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	stop := context.AfterFunc(h.base, cancel)
	defer stop()

	logger := h.logger.With(zap.String("request_id", middleware.GetRequestID(c)))

	h.send(conn, gin.H{
		"type":    "system",
		"message": "connected",
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg Message
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(conn, "malformed message: "+err.Error())
			continue
		}

		switch msg.Type {
		case "cleanup":
			h.handleCleanup(conn, msg)
		case "fulltext":
			h.handleFullText(reqCtx, conn, msg, logger)
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleCleanup(conn *websocket.Conn, msg Message) {
	e, err := h.entry(msg)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	job, err := h.api.ResolveJob(msg.Preset, msg.Jobs)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	changes := cleanup.Run(job, []*entry.Entry{e})
	if changes == nil {
		changes = []entry.FieldChange{}
	}
	h.api.Metrics().RecordCleanup(1, changes)

	h.send(conn, gin.H{
		"type":      "cleaned",
		"entry":     apihttp.FromEntry(e),
		"changes":   changes,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleFullText(reqCtx context.Context, conn *websocket.Conn, msg Message, logger *zap.Logger) {
	e, err := h.entry(msg)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(reqCtx, lookupTimeout)
	defer cancel()

	u, err := h.api.Finder().FindFullText(ctx, e)
	if err != nil {
		if !errors.Is(err, fulltext.ErrInvalidArgument) {
			logger.Warn("full-text lookup failed", zap.Stringer("entry", e.ID()), zap.Error(err))
		}
		h.sendError(conn, err.Error())
		return
	}

	resp := gin.H{
		"type":      "fulltext",
		"entry_id":  e.ID(),
		"found":     u != nil,
		"timestamp": time.Now().Unix(),
	}
	if u != nil {
		resp["url"] = u.String()
	}
	h.send(conn, resp)
}

func (h *Handler) entry(msg Message) (*entry.Entry, error) {
	if msg.Entry == nil {
		return nil, errors.New(msg.Type + " message must contain an entry")
	}
	return msg.Entry.ToEntry()
}

func (h *Handler) send(conn *websocket.Conn, data any) error {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) error {
	return h.send(conn, gin.H{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
