// Undercover game transport
//
// Each player is secretly assigned a role: Civilians share a secret word,
// Undercover players get a related-but-different word, and Mr. White gets
// none. The group plays pass-the-phone style: one device creates the game,
// each seat reveals its role in turn, and the table votes players out round
// by round until a side wins. An eliminated Mr. White may steal the game by
// guessing the civilian word.
//
// Features:
// - JSON API per game ID: create, fetch, per-seat reveal, eliminate, guess
// - Spectator WebSocket at /undercover/:gameid/ws streaming the public
//   scoreboard (names and elimination flags only, never roles or words)
// - In-browser QR button to share the current game, backed by go-qrcode
// - Games auto-reaped after configurable idle timeout
// - All game state lives in games/undercover; this file only maps HTTP
//   onto the engine and fans results out to watchers

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/undercover/games/undercover"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Request bodies accepted from clients
type createRequest struct {
	PlayerCount      int                      `json:"playerCount"`
	RoleDistribution *undercover.Distribution `json:"roleDistribution,omitempty"`
	PlayerNames      []string                 `json:"playerNames,omitempty"`
}

type eliminateRequest struct {
	PlayerID string `json:"playerId"`
}

type guessRequest struct {
	PlayerID string `json:"playerId"`
	Guess    string `json:"guess"`
}

type createResponse struct {
	GameID string `json:"gameId"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// boardPlayer is the spectator-safe view of a seat.
type boardPlayer struct {
	Name         string `json:"name"`
	IsEliminated bool   `json:"isEliminated"`
	Color        string `json:"color"`
}

// boardMessage is pushed to watchers after every mutation.
type boardMessage struct {
	Type    string             `json:"type"` // "game_state"
	Round   int                `json:"round"`
	Status  string             `json:"status"`
	Players []boardPlayer      `json:"players"`
	Winner  *undercover.Winner `json:"winner,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses:
// validation 400, unknown ids 404, illegal state transitions 409.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, undercover.ErrInvalidDistribution),
		errors.Is(err, undercover.ErrNoCivilians),
		errors.Is(err, undercover.ErrNamePoolExhausted):
		status = http.StatusBadRequest
	case errors.Is(err, undercover.ErrGameNotFound),
		errors.Is(err, undercover.ErrPlayerNotFound),
		errors.Is(err, undercover.ErrSeatOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, undercover.ErrGameCompleted),
		errors.Is(err, undercover.ErrAlreadyEliminated),
		errors.Is(err, undercover.ErrNotEliminatedWhite):
		status = http.StatusConflict
	}

	writeJSON(w, status, errorResponse{Message: err.Error()})
}

type watcher struct {
	conn *websocket.Conn
	send chan any
}

func (c *watcher) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// watchHub tracks spectator connections per game ID.
type watchHub struct {
	mu       sync.Mutex
	watchers map[string]map[*watcher]bool
}

func newWatchHub() *watchHub {
	return &watchHub{
		watchers: make(map[string]map[*watcher]bool),
	}
}

func (h *watchHub) add(gameID string, c *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[gameID] == nil {
		h.watchers[gameID] = make(map[*watcher]bool)
	}
	h.watchers[gameID][c] = true
}

func (h *watchHub) remove(gameID string, c *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.watchers[gameID]; ok {
		if set[c] {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.watchers, gameID)
		}
	}
}

// broadcast pushes msg to every watcher of the game, dropping clients whose
// send buffers are full.
func (h *watchHub) broadcast(gameID string, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.watchers[gameID] {
		select {
		case c.send <- msg:
		default:
			delete(h.watchers[gameID], c)
			close(c.send)
		}
	}
}

// closeGame disconnects all watchers of a reaped game.
func (h *watchHub) closeGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.watchers[gameID] {
		close(c.send)
		_ = c.conn.Close()
	}
	delete(h.watchers, gameID)
}

func boardFor(game undercover.Game) boardMessage {
	players := make([]boardPlayer, 0, len(game.Players))
	for _, p := range game.Players {
		players = append(players, boardPlayer{
			Name:         p.Name,
			IsEliminated: p.IsEliminated,
			Color:        p.Color,
		})
	}

	return boardMessage{
		Type:    "game_state",
		Round:   game.Round,
		Status:  game.Status,
		Players: players,
		Winner:  game.Winner,
	}
}

func (h *watchHub) broadcastBoard(store *undercover.Store, gameID string) {
	game, err := store.Game(gameID)
	if err != nil {
		return
	}
	h.broadcast(gameID, boardFor(game))
}

func createGameHandler(cfg *Config, store *undercover.Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
			return
		}
		if req.PlayerCount < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "playerCount must be at least 1"})
			return
		}

		gameID, err := store.CreateGame(req.PlayerCount, req.RoleDistribution, req.PlayerNames)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		logf(cfg, "GAMES: Created undercover game %s with %d players", gameID, req.PlayerCount)

		writeJSON(w, http.StatusOK, createResponse{GameID: gameID})
	}
}

func getGameHandler(store *undercover.Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		game, err := store.Game(ps.ByName("gameid"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, game)
	}
}

func getPlayerHandler(store *undercover.Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		player, err := store.Player(ps.ByName("gameid"), ps.ByName("playerid"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

func getSeatHandler(store *undercover.Store) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		seat, err := strconv.Atoi(ps.ByName("seat"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "seat must be an integer"})
			return
		}

		reveal, err := store.Seat(ps.ByName("gameid"), seat)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, reveal)
	}
}

func eliminateHandler(cfg *Config, store *undercover.Store, hub *watchHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")

		var req eliminateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing player ID"})
			return
		}

		result, err := store.Eliminate(gameID, req.PlayerID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		logf(cfg, "GAMES: Eliminated %q (%s) in round %d of %s",
			result.EliminatedPlayer.Name,
			result.EliminatedPlayer.Role,
			result.GameStatus.Round-1,
			gameID,
		)
		if result.Winner != nil {
			logf(cfg, "GAMES: %s wins %s by %s", result.Winner.Role, gameID, result.Winner.Reason)
		}

		hub.broadcastBoard(store, gameID)

		writeJSON(w, http.StatusOK, result)
	}
}

func guessHandler(cfg *Config, store *undercover.Store, hub *watchHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")

		var req guessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" || req.Guess == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing required fields"})
			return
		}

		result, err := store.Guess(gameID, req.PlayerID, req.Guess)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		logf(cfg, "GAMES: Mr. White guessed %q in %s (correct: %t)", req.Guess, gameID, result.IsCorrect)

		if result.IsCorrect {
			hub.broadcastBoard(store, gameID)
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func wordPairHandler(rng *rand.Rand, rmu *sync.Mutex) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		rmu.Lock()
		pair := undercover.RandomPair(rng)
		rmu.Unlock()

		writeJSON(w, http.StatusOK, pair)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWatch upgrades a spectator connection and streams board updates for
// one game. Watchers are read-only; inbound messages are drained and
// discarded.
func serveWatch(store *undercover.Store, hub *watchHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")

		game, err := store.Game(gameID)
		if err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		c := &watcher{
			conn: conn,
			send: make(chan any, 8),
		}

		hub.add(gameID, c)
		go c.writePump()

		// Current board first, updates as they happen.
		c.send <- boardFor(game)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.remove(gameID, c)
				_ = conn.Close()
				return
			}
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// reaperLoop periodically drops games idle longer than the session timeout
// and disconnects their watchers.
func reaperLoop(ctx context.Context, cfg *Config, store *undercover.Store, hub *watchHub) {
	ticker := time.NewTicker(cfg.sessionTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range store.ReapIdle(time.Now().Add(-cfg.sessionTimeout)) {
				logf(cfg, "GAMES: Reaped idle game %s", id)
				hub.closeGame(id)
			}
		}
	}
}

// registerUndercoverGame sets up routes so that:
//   - POST /api$path/create                            → new game
//   - GET  /api$path/wordpair                          → random word pair
//   - GET  /api$path/game/:gameid                      → full game snapshot
//   - GET  /api$path/game/:gameid/player/:playerid     → player snapshot
//   - GET  /api$path/game/:gameid/seat/:seat           → per-seat role reveal
//   - POST /api$path/game/:gameid/eliminate            → vote a player out
//   - POST /api$path/game/:gameid/guess                → Mr. White's guess
//   - GET  $path/:gameid/ws                            → spectator WebSocket
//   - GET  $path/:gameid/qr                            → PNG QR code
func registerUndercoverGame(ctx context.Context, cfg *Config, path string, mux *httprouter.Router) {
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store := undercover.NewStore(rand.New(rand.NewSource(seed)))
	hub := newWatchHub()

	// Separate source for the standalone word pair endpoint, so peeking at
	// pairs never perturbs game creation under a fixed --seed.
	pairRng := rand.New(rand.NewSource(seed + 1))
	var pairMu sync.Mutex

	api := cfg.prefix + "/api" + path

	mux.POST(api+"/create", createGameHandler(cfg, store))
	mux.GET(api+"/wordpair", wordPairHandler(pairRng, &pairMu))
	mux.GET(api+"/game/:gameid", getGameHandler(store))
	mux.GET(api+"/game/:gameid/player/:playerid", getPlayerHandler(store))
	mux.GET(api+"/game/:gameid/seat/:seat", getSeatHandler(store))
	mux.POST(api+"/game/:gameid/eliminate", eliminateHandler(cfg, store, hub))
	mux.POST(api+"/game/:gameid/guess", guessHandler(cfg, store, hub))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWatch(store, hub))
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)

	if cfg.sessionTimeout > 0 {
		go reaperLoop(ctx, cfg, store, hub)
	}
}
