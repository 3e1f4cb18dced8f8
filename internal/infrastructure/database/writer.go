package database

import (
	"context"

	"medihub/internal/domain/model"
)

type DocumentWriter struct {
	db *Database
}

func NewDocumentWriter(db *Database) *DocumentWriter {
	return &DocumentWriter{db: db}
}

func (w *DocumentWriter) Write(ctx context.Context, document *model.Document) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	_, err := w.db.collection().InsertOne(ctx, document)

	return err
}
