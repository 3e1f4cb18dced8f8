package database

import (
	"context"
	"time"

	"medihub/internal/domain/model"
)

// DocumentFilter narrows a document listing. Zero fields match everything.
type DocumentFilter struct {
	Classification string
	PatientID      string
	Since          *time.Time
	Until          *time.Time
}

// Lister defines the interface for listing documents from the database.
type Lister interface {
	List(ctx context.Context, filter DocumentFilter) ([]model.Document, error)
}
