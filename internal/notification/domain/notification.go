package domain

import "time"

type Type string

const (
	TypeVerification Type = "verification"
	TypeOrder        Type = "order"
	TypeSystem       Type = "system"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
