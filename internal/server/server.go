package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/processor"
)

// maxMessageSize bounds a single incoming websocket message
const maxMessageSize = 64 * 1024

// Processor is the part of the processor the server uses
type Processor interface {
	Process(ctx context.Context, input string) *processor.Turn
	Stats() processor.Stats
}

// Response is sent for every text message received on /ws
type Response struct {
	ID       string `json:"id"`
	Reply    string `json:"reply"`
	Language string `json:"language"`
	State    string `json:"state"`
	Degraded bool   `json:"degraded"`
}

// Health is the /healthz body
type Health struct {
	Status      string `json:"status"`
	Turns       int64  `json:"turns"`
	Failed      int64  `json:"failed"`
	Degraded    int64  `json:"degraded"`
	CacheSize   int    `json:"cache_entries"`
	CacheHits   uint64 `json:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses"`
}

// Server serves chat turns over websockets
type Server struct {
	proc     Processor
	addr     string
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

// New creates a server listening on addr
func New(proc Processor, addr string, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		proc: proc,
		addr: addr,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP handler with the /ws and /healthz routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.proc.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Health{
		Status:      "ok",
		Turns:       st.Turns,
		Failed:      st.Failed,
		Degraded:    st.Degraded,
		CacheSize:   st.Cache.Entries,
		CacheHits:   st.Cache.Hits,
		CacheMisses: st.Cache.Misses,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	remoteAddr := conn.RemoteAddr().String()
	s.log.Infow("websocket connection opened", "remote", remoteAddr)
	defer s.log.Infow("websocket connection closed", "remote", remoteAddr)

	conn.SetReadLimit(maxMessageSize)
	ctx := r.Context()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnw("websocket read failed", "remote", remoteAddr, "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			s.log.Debugw("ignoring non-text message", "remote", remoteAddr, "type", messageType)
			continue
		}

		turn := s.proc.Process(ctx, string(message))
		resp := Response{
			ID:       turn.ID,
			Reply:    turn.Final,
			Language: turn.Input.Lang.String(),
			State:    string(turn.State),
			Degraded: turn.Degraded,
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warnw("websocket write failed", "remote", remoteAddr, "error", err)
			return
		}
	}
}
