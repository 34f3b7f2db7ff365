package tictactoe

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
)

// GameController owns the state of a single game. It is not safe for concurrent use;
// callers feed it one event at a time.
type GameController struct {
	winMap *WinMap
	random *rand.Rand
	state  entity.GameState
}

type Option func(*GameController)

// WithSource makes bot move selection reproducible.
func WithSource(src rand.Source) Option {
	return func(that *GameController) {
		that.random = rand.New(src)
	}
}

// NewGameController starts a game with X to move. In bot mode a nil botConfig means
// the human plays X and the bot plays O.
func NewGameController(size int, mode entity.Mode, botConfig *entity.BotConfig, opts ...Option) (*GameController, error) {
	winMap, err := BuildWinMap(size)
	if err != nil {
		return nil, fmt.Errorf("failed to build win map: %w", err)
	}

	var bot entity.BotConfig
	switch mode {
	case entity.ModeLocal:
	case entity.ModeBot:
		bot = entity.DefaultBotConfig()
		if botConfig != nil {
			bot = *botConfig
		}
		if err = bot.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	controller := &GameController{
		winMap: winMap,
		random: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		state: entity.GameState{
			Size: size,
			Mode: mode,
			Bot:  bot,
		},
	}

	for _, opt := range opts {
		opt(controller)
	}

	controller.clear()

	return controller, nil
}

func (that *GameController) WinMap() *WinMap {
	return that.winMap
}

func (that *GameController) State() entity.GameState {
	return that.state.Clone()
}

func (that *GameController) IsBotTurn() bool {
	return that.state.IsBotTurn()
}

// ApplyMove places the current turn's symbol on cell. On error the state is left untouched.
func (that *GameController) ApplyMove(cell entity.Cell) (entity.GameState, error) {
	if err := that.validateMove(cell); err != nil {
		return that.State(), err
	}

	symbol := that.state.Turn
	that.state.Board[cell.Row][cell.Col] = symbol
	that.state.Filled++
	lastMove := cell
	that.state.LastMove = &lastMove

	that.updateGameStatus(cell, symbol)

	return that.State(), nil
}

// Reset starts a new game on the same board size and win map.
func (that *GameController) Reset() entity.GameState {
	that.clear()

	return that.State()
}

// SelectBotMove picks one of the empty cells uniformly at random. It does not play it.
func (that *GameController) SelectBotMove() (entity.Cell, error) {
	if that.state.Mode != entity.ModeBot {
		return entity.Cell{}, apperror.ErrNotBotMode
	}

	if !that.state.IsInProgress() {
		return entity.Cell{}, apperror.ErrGameOver
	}

	if that.state.Turn != that.state.Bot.BotSymbol {
		return entity.Cell{}, apperror.ErrNotBotTurn
	}

	availableCells := that.state.Board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Cell{}, apperror.ErrNoMoveAvailable
	}

	return availableCells[that.random.Intn(len(availableCells))], nil
}

func (that *GameController) String() string {
	return that.state.Board.String()
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell entity.Cell) error {
	if !that.state.Board.Contains(cell) {
		return fmt.Errorf("%w: %s on %dx%d board", apperror.ErrOutOfBounds, cell, that.state.Size, that.state.Size)
	}

	if that.state.Board.At(cell) != entity.EmptyCell {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, cell)
	}

	if !that.state.IsInProgress() {
		return apperror.ErrGameOver
	}

	return nil
}

// updateGameStatus - checks the game status after a move on cell.
func (that *GameController) updateGameStatus(cell entity.Cell, symbol entity.Symbol) {
	// a side needs size marks to win, so nothing can be complete before move 2*size-1
	if that.state.Filled >= 2*that.state.Size-1 && that.winMap.completesLine(that.state.Board, cell, symbol) {
		that.state.Status = entity.StatusWin
		that.state.Winner = symbol
		return
	}

	if that.state.Filled == that.state.Size*that.state.Size {
		that.state.Status = entity.StatusTie
		return
	}

	that.state.Turn = symbol.Opponent()
}

func (that *GameController) clear() {
	that.state.Board = entity.NewBoard(that.state.Size)
	that.state.Turn = entity.SymbolX
	that.state.Filled = 0
	that.state.Status = entity.StatusInProgress
	that.state.Winner = entity.EmptyCell
	that.state.LastMove = nil
}
