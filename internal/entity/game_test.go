package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
)

func TestSymbol_Opponent(t *testing.T) {
	assert.Equal(t, SymbolO, SymbolX.Opponent())
	assert.Equal(t, SymbolX, SymbolO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestParseMode(t *testing.T) {
	t.Run("Known modes", func(t *testing.T) {
		mode, err := ParseMode("local")
		require.NoError(t, err)
		assert.Equal(t, ModeLocal, mode)

		mode, err = ParseMode("bot")
		require.NoError(t, err)
		assert.Equal(t, ModeBot, mode)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, err := ParseMode("network")

		require.ErrorIs(t, err, apperror.ErrInvalidMode)
	})
}

func TestBotConfig(t *testing.T) {
	t.Run("Human picks O", func(t *testing.T) {
		// When: the human chooses O
		config, err := NewBotConfig(SymbolO)

		// Then: the bot plays X
		require.NoError(t, err)
		assert.Equal(t, BotConfig{BotSymbol: SymbolX, HumanSymbol: SymbolO}, config)
		assert.NoError(t, config.Validate())
	})

	t.Run("Invalid human symbol", func(t *testing.T) {
		_, err := NewBotConfig(Symbol("Z"))

		require.ErrorIs(t, err, apperror.ErrInvalidBotConfig)
	})

	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, DefaultBotConfig().Validate())
		assert.ErrorIs(t, BotConfig{}.Validate(), apperror.ErrInvalidBotConfig)
		assert.ErrorIs(t, BotConfig{BotSymbol: SymbolO, HumanSymbol: SymbolO}.Validate(), apperror.ErrInvalidBotConfig)
	})
}

func TestBoard(t *testing.T) {
	t.Run("New board is empty", func(t *testing.T) {
		board := NewBoard(4)

		require.Len(t, board, 4)
		for _, row := range board {
			require.Len(t, row, 4)
		}
		assert.Equal(t, 0, board.CountFilled())
		assert.Len(t, board.EmptyCells(), 16)
	})

	t.Run("Contains", func(t *testing.T) {
		board := NewBoard(3)

		assert.True(t, board.Contains(Cell{Row: 0, Col: 0}))
		assert.True(t, board.Contains(Cell{Row: 2, Col: 2}))
		assert.False(t, board.Contains(Cell{Row: 3, Col: 0}))
		assert.False(t, board.Contains(Cell{Row: 0, Col: -1}))
	})

	t.Run("Empty cells in row-major order", func(t *testing.T) {
		board := Board{
			{SymbolX, EmptyCell},
			{EmptyCell, SymbolO},
		}

		assert.Equal(t, []Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, board.EmptyCells())
		assert.Equal(t, 2, board.CountFilled())
	})

	t.Run("Clone is independent", func(t *testing.T) {
		board := NewBoard(2)
		clone := board.Clone()

		clone[0][0] = SymbolX

		assert.Equal(t, EmptyCell, board.At(Cell{Row: 0, Col: 0}))
	})
}

func TestGameState_IsBotTurn(t *testing.T) {
	state := GameState{
		Mode:   ModeBot,
		Turn:   SymbolO,
		Status: StatusInProgress,
		Bot:    DefaultBotConfig(),
	}
	assert.True(t, state.IsBotTurn())

	state.Status = StatusWin
	assert.False(t, state.IsBotTurn())
	assert.True(t, state.IsFinished())

	state = GameState{Mode: ModeLocal, Turn: SymbolO, Status: StatusInProgress}
	assert.False(t, state.IsBotTurn())
}

func TestGameState_PredicatesOnReturnedSnapshot(t *testing.T) {
	snapshot := func() GameState {
		return GameState{Mode: ModeBot, Turn: SymbolO, Status: StatusInProgress, Bot: DefaultBotConfig()}
	}

	assert.True(t, snapshot().IsInProgress())
	assert.False(t, snapshot().IsFinished())
	assert.True(t, snapshot().IsBotTurn())
	assert.Equal(t, snapshot(), snapshot().Clone())
}

func TestGameState_Clone(t *testing.T) {
	lastMove := Cell{Row: 1, Col: 0}
	state := GameState{Board: NewBoard(2), LastMove: &lastMove}

	clone := state.Clone()
	clone.Board[1][0] = SymbolX
	clone.LastMove.Col = 1

	assert.Equal(t, EmptyCell, state.Board[1][0])
	assert.Equal(t, 0, state.LastMove.Col)
}
