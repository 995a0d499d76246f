package controller

import (
	"errors"

	"github.com/benbeisheim/fowchess-backend/internal/fen"
	"github.com/benbeisheim/fowchess-backend/internal/model"
	"github.com/benbeisheim/fowchess-backend/internal/service"
	"github.com/benbeisheim/fowchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, log zerolog.Logger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return gc.fail(c, err)
	}
	gc.log.Info().Str("game", gameID).Msg("game created")
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	view, err := gc.gameService.GetGameView(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil || move.SAN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move notation is required",
		})
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move.SAN); err != nil {
		return gc.fail(c, err)
	}

	view, err := gc.gameService.GetGameView(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Resign(gameID, playerID); err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Resigned",
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	return c.JSON(gc.gameService.MatchmakingStatus(playerID))
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	return c.JSON(fiber.Map{
		"left": gc.gameService.LeaveMatchmaking(playerID),
	})
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		gc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, fen.ErrMalformed), errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
