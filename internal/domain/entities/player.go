package entities

import "time"

// Player is someone playing the game through either delivery surface.
// Telegram players carry their Telegram user ID; web players are assigned
// an ID on first contact.
type Player struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"` // "web" or "telegram"
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
