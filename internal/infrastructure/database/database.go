package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DocumentCollection = "documents"

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond).
		SetBSONOptions(&options.BSONOptions{
			NilSliceAsEmpty: true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initDocumentCollection(db); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) collection() *mongo.Collection {
	return db.Client.Database(db.DBName).Collection(DocumentCollection)
}

func initDocumentCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": DocumentCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "bucket", "file_name", "size", "classification", "status", "created_at"},
			"properties": bson.M{
				"_id": bson.M{
					"bsonType":    "string",
					"pattern":     "^(patient|general)/",
					"description": "must be prefixed by the document classification",
				},
				"bucket":    bson.M{"bsonType": "string", "minLength": 1},
				"file_name": bson.M{"bsonType": "string", "minLength": 1},
				"file_type": bson.M{"bsonType": "string"},
				"size": bson.M{
					"bsonType": "long",
					"minimum":  1,
				},
				"classification": bson.M{"enum": []string{"patient", "general"}},
				"patient": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"id":         bson.M{"bsonType": "string"},
						"name":       bson.M{"bsonType": "string"},
						"department": bson.M{"bsonType": "string"},
					},
				},
				"status":     bson.M{"bsonType": "string"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	})

	err = db.Client.Database(db.DBName).CreateCollection(ctx, DocumentCollection, collOpts)
	if err != nil {
		return err
	}

	_, err = db.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient.id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "classification", Value: 1}, {Key: "created_at", Value: -1}}},
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}

func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeout)
	defer cancel()

	return db.Client.Ping(ctx, nil)
}
