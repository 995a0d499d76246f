package service

import (
	"fmt"

	"github.com/benbeisheim/fowchess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame opens a game from fenStr, or the standard start when empty.
func (gs *GameService) CreateGame(fenStr string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, fenStr); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) MatchStatus {
	return gs.gameManager.MatchmakingStatus(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameView(gameID, playerID string) (model.GameView, error) {
	return gs.gameManager.GetGameView(gameID, playerID)
}

func (gs *GameService) HandleMove(gameID, playerID, san string) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, san); err != nil {
		return fmt.Errorf("move %q: %w", san, err)
	}
	return nil
}

func (gs *GameService) Resign(gameID, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes msg to playerID's connection on gameID.
func (gs *GameService) Send(gameID, playerID string, msg interface{}) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}
