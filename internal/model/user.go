package model

import "time"

// User is a registered player, identified for display purposes by email
type User struct {
	ID        UserID
	Email     string
	CreatedAt time.Time
}
