package undercover

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds every in-flight game, keyed by game ID. Mutations on a given
// game are serialized through a per-game lock, so two simultaneous
// eliminations can never both apply against the same round counter. Reads
// return deep-copied snapshots.
//
// The Store is passed explicitly to its callers rather than living in a
// package global, and randomness is injected so tests can supply a seeded
// source.
type Store struct {
	mu    sync.RWMutex
	games map[string]*gameEntry

	rmu sync.Mutex
	rng *rand.Rand
}

type gameEntry struct {
	mu   sync.RWMutex
	game *Game
}

// NewStore returns an empty store drawing randomness from rng. A nil rng
// falls back to a time-seeded source.
func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{
		games: make(map[string]*gameEntry),
		rng:   rng,
	}
}

// CreateGame validates the distribution, rolls the word pair, roles and
// names, and registers a new active game. A nil distribution uses the
// default heuristic for the player count. Custom names are used only when
// exactly playerCount of them are supplied.
func (s *Store) CreateGame(playerCount int, dist *Distribution, names []string) (string, error) {
	d := DefaultDistribution(playerCount)
	if dist != nil {
		d = *dist
	}
	if err := d.Validate(playerCount); err != nil {
		return "", err
	}

	s.rmu.Lock()
	pair := RandomPair(s.rng)
	roles := AssignRoles(s.rng, d)
	playerNames := names
	if len(playerNames) != playerCount {
		var err error
		playerNames, err = GenerateNames(s.rng, playerCount)
		if err != nil {
			s.rmu.Unlock()
			return "", err
		}
	}
	s.rmu.Unlock()

	now := time.Now()
	gameID := uuid.NewString()

	players := make([]Player, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		p := Player{
			ID:    fmt.Sprintf("%d-%s", i+1, uuid.NewString()),
			Name:  playerNames[i],
			Role:  roles[i],
			Color: playerColors[i%len(playerColors)],
		}
		if p.Role.HasWord() {
			if p.Role == RoleCivilian {
				p.Word = pair.Word1
			} else {
				p.Word = pair.Word2
			}
		}
		players = append(players, p)
	}

	game := &Game{
		ID:             gameID,
		CivilianWord:   pair.Word1,
		UndercoverWord: pair.Word2,
		Round:          1,
		Status:         GameActive,
		Players:        players,
		CreatedAt:      now,
		lastActive:     now,
	}

	s.mu.Lock()
	s.games[gameID] = &gameEntry{game: game}
	s.mu.Unlock()

	return gameID, nil
}

// Game returns a snapshot of the full aggregate.
func (s *Store) Game(gameID string) (Game, error) {
	entry, err := s.entry(gameID)
	if err != nil {
		return Game{}, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	return snapshot(entry.game), nil
}

// Player returns a snapshot of a single player.
func (s *Store) Player(gameID, playerID string) (Player, error) {
	entry, err := s.entry(gameID)
	if err != nil {
		return Player{}, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	for _, p := range entry.game.Players {
		if p.ID == playerID {
			return p, nil
		}
	}

	return Player{}, ErrPlayerNotFound
}

// Seat reveals role and word for a single seat without exposing the rest
// of the roster. The reveal cursor itself is client state; the engine just
// answers per-seat queries in roster order.
func (s *Store) Seat(gameID string, seat int) (SeatReveal, error) {
	entry, err := s.entry(gameID)
	if err != nil {
		return SeatReveal{}, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	if seat < 0 || seat >= len(entry.game.Players) {
		return SeatReveal{}, ErrSeatOutOfRange
	}

	p := entry.game.Players[seat]

	return SeatReveal{
		Seat: seat,
		Name: p.Name,
		Role: p.Role,
		Word: p.Word,
	}, nil
}

// Eliminate flips the player's elimination flag, appends a log entry,
// advances the round, and evaluates the win conditions. All preconditions
// are checked before any state changes.
func (s *Store) Eliminate(gameID, playerID string) (EliminationResult, error) {
	entry, err := s.entry(gameID)
	if err != nil {
		return EliminationResult{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	game := entry.game

	if game.Status == GameCompleted {
		return EliminationResult{}, ErrGameCompleted
	}

	idx := -1
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return EliminationResult{}, ErrPlayerNotFound
	}
	if game.Players[idx].IsEliminated {
		return EliminationResult{}, ErrAlreadyEliminated
	}

	game.Players[idx].IsEliminated = true
	eliminated := game.Players[idx]

	game.Logs = append(game.Logs, GameLog{
		Round:      game.Round,
		PlayerID:   eliminated.ID,
		PlayerName: eliminated.Name,
		Role:       eliminated.Role,
		Word:       eliminated.Word,
		Timestamp:  time.Now(),
	})
	game.Round++
	game.lastActive = time.Now()

	winner := CheckWinner(game.Players)
	if winner != nil {
		game.Status = GameCompleted
		if game.Winner == nil {
			game.Winner = winner
		}
	}

	tally := Tally{
		Round:        game.Round,
		TotalPlayers: len(game.Players),
	}
	for _, p := range game.Players {
		if p.IsEliminated {
			continue
		}
		tally.ActivePlayers++
		switch p.Role {
		case RoleCivilian:
			tally.CivilianCount++
		case RoleUndercover:
			tally.UndercoverCount++
		case RoleMrWhite:
			tally.MrWhiteCount++
		}
	}

	return EliminationResult{
		EliminatedPlayer: eliminated,
		GameStatus:       tally,
		Winner:           winner,
	}, nil
}

// Guess resolves Mr. White's bonus guess against the civilian word. Only an
// eliminated Mr. White may guess, but the guess is allowed even after a
// winner was already declared by the elimination itself: it is Mr. White's
// last action on the round they were voted out. Comparison is
// case-insensitive and whitespace-trimmed. An incorrect guess changes no
// state.
func (s *Store) Guess(gameID, playerID, guess string) (GuessResult, error) {
	entry, err := s.entry(gameID)
	if err != nil {
		return GuessResult{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	game := entry.game

	var player *Player
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			player = &game.Players[i]
			break
		}
	}
	if player == nil {
		return GuessResult{}, ErrPlayerNotFound
	}
	if player.Role != RoleMrWhite || !player.IsEliminated {
		return GuessResult{}, ErrNotEliminatedWhite
	}

	game.lastActive = time.Now()

	if !strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(game.CivilianWord)) {
		return GuessResult{IsCorrect: false}, nil
	}

	winner := &Winner{Role: RoleMrWhite, Reason: ReasonGuess}
	game.Status = GameCompleted
	if game.Winner == nil {
		game.Winner = winner
	}

	return GuessResult{
		IsCorrect: true,
		Word:      game.CivilianWord,
		Winner:    winner,
	}, nil
}

// ReapIdle drops games whose last activity predates the cutoff and returns
// their IDs so callers can tear down any attached watchers.
func (s *Store) ReapIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reaped []string
	for id, entry := range s.games {
		entry.mu.RLock()
		last := entry.game.lastActive
		entry.mu.RUnlock()

		if last.Before(cutoff) {
			delete(s.games, id)
			reaped = append(reaped, id)
		}
	}

	return reaped
}

// Len reports the number of games currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.games)
}

func (s *Store) entry(gameID string) (*gameEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return entry, nil
}

func snapshot(g *Game) Game {
	out := *g
	out.Players = make([]Player, len(g.Players))
	copy(out.Players, g.Players)
	out.Logs = make([]GameLog, len(g.Logs))
	copy(out.Logs, g.Logs)
	if g.Winner != nil {
		w := *g.Winner
		out.Winner = &w
	}
	return out
}
