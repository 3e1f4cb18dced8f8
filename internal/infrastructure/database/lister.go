package database

import (
	"context"

	"github.com/dezh-tech/immortal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medihub/internal/domain/model"
	"medihub/internal/domain/repository/database"
)

type DocumentLister struct {
	db *Database
}

func NewDocumentLister(db *Database) *DocumentLister {
	return &DocumentLister{db: db}
}

// List returns the matching documents, newest first.
func (l *DocumentLister) List(ctx context.Context, f database.DocumentFilter) ([]model.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Classification != "" {
		filter["classification"] = f.Classification
	}
	if f.PatientID != "" {
		filter["patient.id"] = f.PatientID
	}
	if f.Since != nil || f.Until != nil {
		createdFilter := bson.M{}
		if f.Since != nil {
			createdFilter["$gte"] = *f.Since
		}
		if f.Until != nil {
			createdFilter["$lte"] = *f.Until
		}
		filter["created_at"] = createdFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := l.db.collection().Find(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to retrieve documents", "err", err)

		return nil, err
	}
	defer cursor.Close(ctx)

	var documents []model.Document
	if err = cursor.All(ctx, &documents); err != nil {
		logger.Error("failed to decode documents", "err", err)

		return nil, err
	}

	return documents, nil
}
