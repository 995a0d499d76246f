// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/fowchess-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrGameNotFound = errors.New("game not found")

// MatchStatus tells a queued player whether a game has been found yet.
type MatchStatus struct {
	Queued   bool         `json:"queued"`
	QueuedAt *time.Time   `json:"queuedAt,omitempty"`
	GameID   string       `json:"gameId,omitempty"`
	Color    *model.Color `json:"color,omitempty"`
}

type matchResult struct {
	gameID string
	color  model.Color
}

type GameManager struct {
	games   map[string]*model.Game
	queue   *model.Queue
	matches map[string]matchResult // playerID -> game found by matchmaking
	log     zerolog.Logger
	mu      sync.RWMutex
}

// NewGameManager starts the matchmaking loop, which runs every interval until
// ctx is cancelled.
func NewGameManager(ctx context.Context, log zerolog.Logger, interval time.Duration) *GameManager {
	gm := &GameManager{
		games:   make(map[string]*model.Game),
		queue:   model.NewQueue(),
		matches: make(map[string]matchResult),
		log:     log,
	}

	go gm.processMatchmaking(ctx, interval)

	return gm
}

func (gm *GameManager) processMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gm.matchPlayers()
			gm.pruneMatches()
		}
	}
}

// matchPlayers pairs queued players into new games until fewer than two wait.
func (gm *GameManager) matchPlayers() {
	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game, err := model.NewGame(gameID, "", gm.log)
		if err != nil {
			gm.log.Error().Err(err).Msg("create matchmaking game")
			return
		}
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			gm.log.Error().Err(err).Str("player", player1.ID).Msg("seat player")
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			gm.log.Error().Err(err).Str("player", player2.ID).Msg("seat player")
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = game
		gm.matches[player1.ID] = matchResult{gameID: gameID, color: p1Color}
		gm.matches[player2.ID] = matchResult{gameID: gameID, color: p2Color}
		gm.mu.Unlock()

		gm.log.Info().Str("game", gameID).Str("white", player1.ID).Str("black", player2.ID).Msg("match found")
	}
}

// pruneMatches forgets the matchmaking results of finished games.
func (gm *GameManager) pruneMatches() {
	gm.mu.RLock()
	finished := make(map[string]string)
	for playerID, m := range gm.matches {
		if game, ok := gm.games[m.gameID]; !ok || game.Over() {
			finished[playerID] = m.gameID
		}
	}
	gm.mu.RUnlock()

	for playerID, gameID := range finished {
		gm.forgetMatch(playerID, gameID)
	}
}

// forgetMatch drops playerID's match unless it has since moved to another game.
func (gm *GameManager) forgetMatch(playerID, gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if m, ok := gm.matches[playerID]; ok && m.gameID == gameID {
		delete(gm.matches, playerID)
	}
}

// CreateGame registers a new game under gameID starting from fenStr.
func (gm *GameManager) CreateGame(gameID, fenStr string) error {
	game, err := model.NewGame(gameID, fenStr, gm.log)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.White, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	delete(gm.matches, playerID)
	gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

// MatchmakingStatus reports the game found for playerID while it is still
// being played, or whether playerID is waiting in the queue.
func (gm *GameManager) MatchmakingStatus(playerID string) MatchStatus {
	gm.mu.RLock()
	m, matched := gm.matches[playerID]
	game := gm.games[m.gameID]
	gm.mu.RUnlock()

	if matched {
		if game != nil && !game.Over() {
			color := m.color
			return MatchStatus{GameID: m.gameID, Color: &color}
		}
		gm.forgetMatch(playerID, m.gameID)
	}
	joined, ok := gm.queue.JoinedAt(playerID)
	if !ok {
		return MatchStatus{}
	}
	return MatchStatus{Queued: true, QueuedAt: &joined}
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameView(gameID, playerID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(playerID), nil
}

func (gm *GameManager) MakeMove(gameID, playerID, san string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, san)
}

func (gm *GameManager) Resign(gameID, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
