package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
)

// Line is a row, column or diagonal whose full occupation by one symbol wins.
type Line []entity.Cell

// WinMap indexes every winning line by the cells it passes through.
type WinMap struct {
	size   int
	lines  []Line
	byCell map[entity.Cell][]Line
}

// BuildWinMap returns all 2*size+2 lines of a size x size board.
func BuildWinMap(size int) (*WinMap, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSize, size)
	}

	lines := make([]Line, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make(Line, size)
		for col := range line {
			line[col] = entity.Cell{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	mainDiagonal := make(Line, size)
	antiDiagonal := make(Line, size)
	for i := 0; i < size; i++ {
		mainDiagonal[i] = entity.Cell{Row: i, Col: i}
		antiDiagonal[i] = entity.Cell{Row: i, Col: size - 1 - i}
	}
	lines = append(lines, mainDiagonal, antiDiagonal)

	for col := 0; col < size; col++ {
		line := make(Line, size)
		for row := range line {
			line[row] = entity.Cell{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	byCell := make(map[entity.Cell][]Line, size*size)
	for _, line := range lines {
		for _, cell := range line {
			byCell[cell] = append(byCell[cell], line)
		}
	}

	return &WinMap{
		size:   size,
		lines:  lines,
		byCell: byCell,
	}, nil
}

func (that *WinMap) Size() int {
	return that.size
}

// Lines returns a copy of every line in build order: rows, diagonals, columns.
func (that *WinMap) Lines() []Line {
	lines := make([]Line, len(that.lines))
	for i, line := range that.lines {
		lines[i] = append(Line(nil), line...)
	}

	return lines
}

// LinesThrough returns a copy of the lines containing cell, nil if cell is off the board.
func (that *WinMap) LinesThrough(cell entity.Cell) []Line {
	through := that.byCell[cell]
	if through == nil {
		return nil
	}

	lines := make([]Line, len(through))
	for i, line := range through {
		lines[i] = append(Line(nil), line...)
	}

	return lines
}

// completesLine reports whether some line through cell is fully held by symbol.
func (that *WinMap) completesLine(board entity.Board, cell entity.Cell, symbol entity.Symbol) bool {
	for _, line := range that.byCell[cell] {
		if lineHeldBy(board, line, symbol) {
			return true
		}
	}

	return false
}

func lineHeldBy(board entity.Board, line Line, symbol entity.Symbol) bool {
	for _, cell := range line {
		if board.At(cell) != symbol {
			return false
		}
	}

	return true
}
