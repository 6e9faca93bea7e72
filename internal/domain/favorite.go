package domain

import "time"

// Favorite marks a file as favorited by a user.
type Favorite struct {
	UserID    int64
	FileID    int64
	CreatedAt time.Time
}
