package database

import (
	"context"

	"github.com/dezh-tech/immortal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

type DocumentRemover struct {
	db *Database
}

func NewDocumentRemover(db *Database) *DocumentRemover {
	return &DocumentRemover{db: db}
}

func (r *DocumentRemover) RemoveByKey(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	_, err := r.db.collection().DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		logger.Error("failed to remove document", "key", key, "err", err)

		return err
	}

	return nil
}
