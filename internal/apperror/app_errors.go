package apperror

import "errors"

var (
	ErrInvalidSize      = errors.New("invalid board size")
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrInvalidBotConfig = errors.New("invalid bot config")
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrGameOver         = errors.New("game is already over")
	ErrNotBotMode       = errors.New("game is not in bot mode")
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoMoveAvailable  = errors.New("no move available")
	ErrSessionNotFound  = errors.New("session not found")
)
