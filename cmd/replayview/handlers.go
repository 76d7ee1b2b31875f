package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/game"
)

// Server holds shared state for the HTTP handlers.
type Server struct {
	dbCache  *DBCache
	upgrader websocket.Upgrader
}

func NewServer(roots []string, refresh time.Duration) *Server {
	return &Server{
		dbCache: NewDBCache(roots, refresh),
		upgrader: websocket.Upgrader{
			// Local tool; same-origin checks would only get in the way.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes sets up all routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/rounds", s.handleRounds)
	mux.HandleFunc("/api/rounds/", s.handleRound)
	mux.HandleFunc("/", s.handleIndex)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db, err := s.dbCache.Get()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rounds, err := queryRounds(r.Context(), db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, RoundsResponse{Total: len(rounds), Rounds: rounds})
}

// handleRound serves /api/rounds/{id}/frames and /api/rounds/{id}/live.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/rounds/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	roundID, err := url.PathUnescape(parts[0])
	if err != nil {
		http.Error(w, "bad round id", http.StatusBadRequest)
		return
	}

	db, err := s.dbCache.Get()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	frames, err := queryFrames(r.Context(), db, roundID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(frames) == 0 {
		http.NotFound(w, r)
		return
	}

	switch parts[1] {
	case "frames":
		writeJSON(w, frames)
	case "live":
		s.streamFrames(w, r, frames)
	default:
		http.NotFound(w, r)
	}
}

// streamFrames replays the round over a websocket at the step rate of the
// difficulty it was recorded with, optionally scaled by ?speed=N.
func (s *Server) streamFrames(w http.ResponseWriter, r *http.Request, frames []Frame) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	stepsPerSecond := 12.0
	if d, ok := game.Difficulties[int(frames[0].Difficulty)]; ok {
		stepsPerSecond = d.StepsPerSecond
	}
	if v := r.URL.Query().Get("speed"); v != "" {
		if mult, err := strconv.ParseFloat(v, 64); err == nil && mult > 0 {
			stepsPerSecond *= mult
		}
	}
	interval := time.Duration(float64(time.Second) / stepsPerSecond)

	// Reads are discarded; a read error tells us the client went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, f := range frames {
		select {
		case <-closed:
			return
		case <-ticker.C:
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(f); err != nil {
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"),
		time.Now().Add(time.Second))
}
