package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
)

type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"

	EmptyCell Symbol = ""
)

// Opponent returns the other side. The empty symbol has no opponent.
func (that Symbol) Opponent() Symbol {
	switch that {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	default:
		return EmptyCell
	}
}

func (that Symbol) IsValid() bool {
	return that == SymbolX || that == SymbolO
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusTie        Status = "tie"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeBot   Mode = "bot"
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModeLocal, ModeBot:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, value)
	}
}

// Cell is a 0-indexed board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// BotConfig is empty in local mode.
type BotConfig struct {
	BotSymbol   Symbol `json:"bot_symbol,omitempty"`
	HumanSymbol Symbol `json:"human_symbol,omitempty"`
}

func DefaultBotConfig() BotConfig {
	return BotConfig{BotSymbol: SymbolO, HumanSymbol: SymbolX}
}

func NewBotConfig(humanSymbol Symbol) (BotConfig, error) {
	if !humanSymbol.IsValid() {
		return BotConfig{}, fmt.Errorf("%w: human symbol %q", apperror.ErrInvalidBotConfig, humanSymbol)
	}

	return BotConfig{BotSymbol: humanSymbol.Opponent(), HumanSymbol: humanSymbol}, nil
}

func (that BotConfig) Validate() error {
	if !that.BotSymbol.IsValid() || !that.HumanSymbol.IsValid() {
		return fmt.Errorf("%w: symbols must be X or O", apperror.ErrInvalidBotConfig)
	}

	if that.BotSymbol == that.HumanSymbol {
		return fmt.Errorf("%w: bot and human share symbol %s", apperror.ErrInvalidBotConfig, that.BotSymbol)
	}

	return nil
}

// Board is stored row-major: Board[row][col].
type Board [][]Symbol

func NewBoard(size int) Board {
	board := make(Board, size)
	for row := range board {
		board[row] = make([]Symbol, size)
	}

	return board
}

func (that Board) Clone() Board {
	board := make(Board, len(that))
	for row := range that {
		board[row] = append([]Symbol(nil), that[row]...)
	}

	return board
}

func (that Board) At(cell Cell) Symbol {
	return that[cell.Row][cell.Col]
}

func (that Board) Contains(cell Cell) bool {
	size := len(that)
	return cell.Row >= 0 && cell.Row < size && cell.Col >= 0 && cell.Col < size
}

// CountFilled counts the occupied cells.
func (that Board) CountFilled() int {
	filled := 0
	for _, row := range that {
		for _, symbol := range row {
			if symbol != EmptyCell {
				filled++
			}
		}
	}

	return filled
}

func (that Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, len(that)*len(that))
	for row := range that {
		for col, symbol := range that[row] {
			if symbol == EmptyCell {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range that {
		for col, symbol := range that[row] {
			if col > 0 {
				sb.WriteString(" | ")
			}
			if symbol == EmptyCell {
				sb.WriteString(".")
			} else {
				sb.WriteString(string(symbol))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// GameState is a snapshot; mutating it has no effect on the engine that produced it.
type GameState struct {
	Size     int       `json:"size"`
	Mode     Mode      `json:"mode"`
	Board    Board     `json:"board"`
	Turn     Symbol    `json:"turn"`
	Filled   int       `json:"filled"`
	Status   Status    `json:"status"`
	Winner   Symbol    `json:"winner,omitempty"`
	Bot      BotConfig `json:"bot"`
	LastMove *Cell     `json:"last_move,omitempty"`
}

func (that GameState) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that GameState) IsFinished() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}

// IsBotTurn reports whether the bot is to play in an unfinished bot game.
func (that GameState) IsBotTurn() bool {
	return that.Mode == ModeBot && that.IsInProgress() && that.Turn == that.Bot.BotSymbol
}

func (that GameState) Clone() GameState {
	clone := that
	clone.Board = that.Board.Clone()
	if that.LastMove != nil {
		lastMove := *that.LastMove
		clone.LastMove = &lastMove
	}

	return clone
}
