package entity

import "time"

// Session is a player's table: one game per selectable board size, one of them active.
type Session struct {
	ID         string    `json:"id"`
	Mode       Mode      `json:"mode"`
	ActiveSize int       `json:"active_size"`
	Game       GameState `json:"game"`
	UpdatedAt  time.Time `json:"updated_at"`
}
