package domain

import "time"

// File is a reference file entry belonging to a catalog.
type File struct {
	ID          int64
	CatalogID   int64
	Name        string
	Path        string
	SizeBytes   int64
	ContentType string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
