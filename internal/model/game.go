package model

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/fowchess-backend/internal/ws"
	"github.com/rs/zerolog"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one fog-of-war game and its observers. Every move goes through
// MakeMove under the game lock, so the board has a single writer; readers get
// GameView snapshots built from the board's cached strings.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	players     Players
	history     []Ply
	winner      *Color
	resolve     string
	connections *GameConnections
	log         zerolog.Logger
}

// GameView is what one observer is allowed to know about a game. Players see
// their own fog-of-war FEN and their own plies until the game ends, while
// anybody else sees a board of unknown squares and no plies. Once it is over
// everybody sees the full position and history.
type GameView struct {
	ID      string   `json:"id"`
	Color   *Color   `json:"color"`
	FEN     string   `json:"fen"`
	Board   string   `json:"board"`
	ToMove  Color    `json:"toMove"`
	Moves   []string `json:"moves"`
	History []Ply    `json:"history"`
	Seats   Seats    `json:"seats"`
	Winner  *Color   `json:"winner"`
	Resolve *string  `json:"resolve"`
}

// NewGame starts a game from fenStr, or the standard position when empty.
func NewGame(id, fenStr string, log zerolog.Logger) (*Game, error) {
	board, err := NewBoard(fenStr)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		board:       board,
		history:     make([]Ply, 0),
		connections: NewGameConnections(),
		log:         log.With().Str("game", id).Logger(),
	}, nil
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.players.colorOf(playerID); ok {
		return c, nil
	}
	if g.players.full() {
		return White, ErrGameFull
	}
	if g.players.White == "" {
		g.players.White = playerID
		g.log.Info().Str("player", playerID).Msg("player seated as white")
		return White, nil
	}
	g.players.Black = playerID
	g.log.Info().Str("player", playerID).Msg("player seated as black")
	return Black, nil
}

// Over reports whether the game has a winner.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner != nil
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.colorOf(playerID)
	return ok
}

// MakeMove plays san for playerID and pushes the new views to every
// connected observer.
func (g *Game) MakeMove(playerID, san string) error {
	g.mu.Lock()
	if err := g.checkTurn(playerID); err != nil {
		g.mu.Unlock()
		return err
	}

	move, err := g.board.FindSAN(san)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	ply := newPly(move)
	winner, over := g.board.ApplyMove(move)
	g.history = append(g.history, ply)
	if over {
		g.winner = &winner
		g.resolve = "king captured"
	}
	g.log.Info().Str("player", playerID).Str("move", ply.Notation).Bool("over", over).Msg("move applied")
	g.mu.Unlock()

	g.broadcastState()
	return nil
}

func (g *Game) checkTurn(playerID string) error {
	if g.winner != nil {
		return ErrGameOver
	}
	color, ok := g.players.colorOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if color != g.board.SideToMove() {
		return ErrNotYourTurn
	}
	return nil
}

// Resign ends the game in favour of playerID's opponent.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	if g.winner != nil {
		g.mu.Unlock()
		return ErrGameOver
	}
	color, ok := g.players.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	winner := color.Opponent()
	g.winner = &winner
	g.resolve = "resignation"
	g.log.Info().Str("player", playerID).Msg("player resigned")
	g.mu.Unlock()

	g.broadcastState()
	return nil
}

// View returns the snapshot playerID is entitled to.
func (g *Game) View(playerID string) GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view(playerID)
}

func (g *Game) view(playerID string) GameView {
	v := GameView{
		ID:      g.ID,
		ToMove:  g.board.SideToMove(),
		Moves:   []string{},
		History: []Ply{},
		Seats:   g.players.seats(),
		Winner:  g.winner,
	}
	if g.resolve != "" {
		resolve := g.resolve
		v.Resolve = &resolve
	}

	color, isPlayer := g.players.colorOf(playerID)
	if isPlayer {
		v.Color = &color
	}
	switch {
	case g.winner != nil:
		v.FEN = g.board.FEN()
		v.History = append(v.History, g.history...)
	case isPlayer:
		v.FEN = g.board.FOWFEN(color)
		for _, p := range g.history {
			if p.Color == color {
				v.History = append(v.History, p)
			}
		}
		if color == g.board.SideToMove() {
			for _, m := range g.board.Moves(color) {
				v.Moves = append(v.Moves, m.SAN())
			}
		}
	default:
		v.FEN = g.board.HiddenFEN()
	}
	if grid, err := RenderFOW(v.FEN); err == nil {
		v.Board = grid
	}
	return v
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.Close()
		return fmt.Errorf("player %s: connection already exists", playerID)
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.log.Debug().Str("player", playerID).Msg("connection registered")

	g.broadcastState()
	return nil
}

// UnregisterConnection forgets conn if it is still playerID's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		g.log.Debug().Str("player", playerID).Msg("connection unregistered")
	}
}

// Send writes v to playerID's connection.
func (g *Game) Send(playerID string, v interface{}) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return fmt.Errorf("player %s: no connection", playerID)
	}
	return conn.WriteJSON(v)
}

// broadcastState sends every connection its own view. Writes happen under the
// connections lock so no connection is written concurrently.
func (g *Game) broadcastState() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	g.mu.Lock()
	views := make(map[string]GameView, len(g.connections.connections))
	for playerID := range g.connections.connections {
		views[playerID] = g.view(playerID)
	}
	g.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		msg, err := ws.NewMessage(ws.MessageTypeGameState, views[playerID])
		if err != nil {
			g.log.Error().Err(err).Msg("marshal game state")
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			g.log.Warn().Err(err).Str("player", playerID).Msg("dropping connection")
			delete(g.connections.connections, playerID)
		}
	}
}
