package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"medihub/internal/infrastructure/broker"
	"medihub/internal/infrastructure/database"
	minioInfra "medihub/internal/infrastructure/minio"
)

const (
	minioImage    = "minio/minio:latest"
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
	minioBucket   = "test-bucket"

	mongoImage    = "mongo:latest"
	mongoUser     = "testuser"
	mongoPassword = "testpass"
	mongoDBName   = "testdb"

	redisImage = "redis:7-alpine"
	streamName = "test-stream"
	groupName  = "test-group"
)

type testServices struct {
	minio  *minioInfra.Client
	db     *database.Database
	broker *broker.Client

	redisURI string
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start %s container: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("Failed to terminate %s container: %v", req.Image, err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get %s endpoint: %v", req.Image, err)
	}

	return endpoint
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	ctx := context.Background()

	minioEndpoint := startContainer(t, testcontainers.ContainerRequest{
		Image:        minioImage,
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioUser,
			"MINIO_ROOT_PASSWORD": minioPassword,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
	})

	mongoEndpoint := startContainer(t, testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": mongoUser,
			"MONGO_INITDB_ROOT_PASSWORD": mongoPassword,
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(30 * time.Second),
	})

	redisEndpoint := startContainer(t, testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	})

	s := &testServices{}
	t.Cleanup(s.close)

	minioClient, err := minioInfra.New(&minioInfra.ClientConfig{
		AccessKey: minioUser,
		SecretKey: minioPassword,
		Endpoint:  minioEndpoint,
	})
	if err != nil {
		t.Fatalf("Failed to create MinIO client: %v", err)
	}
	if err := minioClient.EnsureBucket(ctx, minioBucket); err != nil {
		t.Fatalf("Failed to create MinIO bucket: %v", err)
	}
	s.minio = minioClient

	db, err := database.Connect(database.Config{
		URI:               fmt.Sprintf("mongodb://%s:%s@%s", mongoUser, mongoPassword, mongoEndpoint),
		DBName:            mongoDBName,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	s.db = db

	s.redisURI = "redis://" + redisEndpoint
	brokerClient, err := broker.NewClient(broker.Config{
		URI:        s.redisURI,
		StreamName: streamName,
		GroupName:  groupName,
	})
	if err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}
	s.broker = brokerClient

	return s
}

func (s *testServices) close() {
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.db != nil {
		_ = s.db.Stop()
	}
}
