package database

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"medihub/internal/domain/model"
)

const (
	TestUsername = "testuser"
	TestPassword = "testpass"
	TestDBName   = "testdb"
)

func setupMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": TestUsername,
			"MONGO_INITDB_ROOT_PASSWORD": TestPassword,
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal("Failed to start MongoDB container:", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal("Failed to get container host:", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatal("Failed to get mapped port:", err)
	}

	hostPort := net.JoinHostPort(host, port.Port())

	return fmt.Sprintf("mongodb://%s:%s@%s", TestUsername, TestPassword, hostPort)
}

func connectTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := Connect(Config{
		URI:               setupMongo(t),
		DBName:            TestDBName,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Stop()
	})

	return db
}

func TestWrite(t *testing.T) {
	t.Parallel()
	db := connectTestDB(t)

	writer := NewDocumentWriter(db)

	baseDocument := model.Document{
		Key:            "patient/0f8fad5b-d9cb-469f-a165-70867728950e.pdf",
		Bucket:         "medihub-documents",
		FileName:       "echocardiogram.pdf",
		FileType:       "application/pdf",
		Size:           2048,
		Classification: "patient",
		Patient:        &model.Patient{ID: "P-7", Name: "Ana Costa", Department: "Cardiology"},
		Status:         model.DocumentStatusPending,
		CreatedAt:      time.Now().UTC().Truncate(time.Millisecond),
	}

	tests := []struct {
		name        string
		modify      func(d *model.Document)
		expectError string
	}{
		{
			name:   "patient document",
			modify: func(_ *model.Document) {},
		},
		{
			name: "general document without patient",
			modify: func(d *model.Document) {
				d.Key = "general/7c9e6679-7425-40de-944b-e07fc1f90ae7.pdf"
				d.Classification = "general"
				d.Patient = nil
			},
		},
		{
			name: "key without classification prefix",
			modify: func(d *model.Document) {
				d.Key = "0f8fad5b.pdf"
			},
			expectError: "Document failed validation",
		},
		{
			name: "unknown classification",
			modify: func(d *model.Document) {
				d.Key = "patient/unknown.pdf"
				d.Classification = "imaging"
			},
			expectError: "Document failed validation",
		},
		{
			name: "empty file",
			modify: func(d *model.Document) {
				d.Key = "patient/empty.pdf"
				d.Size = 0
			},
			expectError: "Document failed validation",
		},
		{
			name: "missing file name",
			modify: func(d *model.Document) {
				d.Key = "patient/nameless.pdf"
				d.FileName = ""
			},
			expectError: "Document failed validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document := baseDocument
			tt.modify(&document)

			err := writer.Write(context.Background(), &document)

			if tt.expectError == "" {
				require.NoError(t, err)

				var stored model.Document
				err := db.collection().FindOne(context.Background(), bson.M{"_id": document.Key}).Decode(&stored)
				require.NoError(t, err)
				require.True(t, document.CreatedAt.Equal(stored.CreatedAt))

				stored.CreatedAt = document.CreatedAt
				require.Equal(t, document, stored)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}

func TestRemoveByKey(t *testing.T) {
	t.Parallel()
	db := connectTestDB(t)

	writer := NewDocumentWriter(db)
	remover := NewDocumentRemover(db)
	ctx := context.Background()

	document := &model.Document{
		Key:            "general/1b4e28ba-2fa1-11d2-883f-0016d3cca427.pdf",
		Bucket:         "medihub-documents",
		FileName:       "hand-hygiene-protocol.pdf",
		Size:           512,
		Classification: "general",
		Status:         model.DocumentStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, writer.Write(ctx, document))

	require.NoError(t, remover.RemoveByKey(ctx, document.Key))

	count, err := db.collection().CountDocuments(ctx, bson.M{"_id": document.Key})
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, remover.RemoveByKey(ctx, "general/missing.pdf"))
}
