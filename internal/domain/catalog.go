package domain

import "time"

// Catalog is a directory grouping of reference files.
type Catalog struct {
	ID          int64
	Name        string
	Path        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
