package domain

import "time"

// Course is the domain model for a published video course. Courses are
// insert-only: once created they are never mutated through this service.
type Course struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	PreviewURL   string
	FullVideoURL string
	CreatedAt    time.Time
}
