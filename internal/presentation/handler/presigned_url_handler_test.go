package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medihub/internal/application/usecase"
	"medihub/internal/domain/dto"
	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
	"medihub/internal/domain/repository/database"
	"medihub/internal/infrastructure/broker"
	"medihub/internal/infrastructure/controlplane"
	dbInfra "medihub/internal/infrastructure/database"
	minioInfra "medihub/internal/infrastructure/minio"
	"medihub/internal/infrastructure/transfer"
	"medihub/internal/presentation"
)

type fakeIssuer struct {
	requests []dto.PresignedURLRequest
	response dto.PresignedURLResponse
	status   int
	err      error
}

func (f *fakeIssuer) Issue(_ context.Context, request dto.PresignedURLRequest) (dto.PresignedURLResponse, int, error) {
	f.requests = append(f.requests, request)

	return f.response, f.status, f.err
}

type credentialRecord struct {
	classification string
	status         int
	size           int64
}

type fakeRecorder struct {
	records []credentialRecord
}

func (f *fakeRecorder) RecordCredential(classification string, status int, sizeBytes int64) {
	f.records = append(f.records, credentialRecord{classification, status, sizeBytes})
}

func TestHandlePresignedURL(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		issuer         *fakeIssuer
		expectedStatus int
		expectedReason string
		expectIssued   bool
	}{
		{
			name: "credential issued",
			body: `{"fileName":"scan.pdf","fileType":"application/pdf","fileSize":2048,"type":"general"}`,
			issuer: &fakeIssuer{
				response: dto.PresignedURLResponse{
					PresignedURL: "http://minio/bucket/general/k.pdf?X-Amz-Signature=s",
					FileKey:      "general/k.pdf",
					BucketName:   "bucket",
				},
				status: http.StatusOK,
			},
			expectedStatus: http.StatusOK,
			expectIssued:   true,
		},
		{
			name:           "malformed body",
			body:           `{"fileName":`,
			issuer:         &fakeIssuer{},
			expectedStatus: http.StatusBadRequest,
			expectedReason: "invalid request body",
		},
		{
			name: "policy rejection",
			body: `{"fileName":"scan.pdf","fileSize":20971520,"type":"general"}`,
			issuer: &fakeIssuer{
				status: http.StatusRequestEntityTooLarge,
				err:    &derrors.PayloadTooLargeError{Size: 20971520, Limit: 10485760},
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedReason: "exceeds",
			expectIssued:   true,
		},
		{
			name: "internal failure",
			body: `{"fileName":"scan.pdf","fileSize":10,"type":"general"}`,
			issuer: &fakeIssuer{
				status: http.StatusInternalServerError,
				err:    errors.New("couldn't add document to database"),
			},
			expectedStatus: http.StatusInternalServerError,
			expectedReason: "couldn't add document to database",
			expectIssued:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			h := NewPresignedURLHandler(tt.issuer, recorder)

			e := echo.New()
			e.POST("/get-presigned-url", h.Handle)

			req := httptest.NewRequest(http.MethodPost, "/get-presigned-url", strings.NewReader(tt.body))
			req.Header.Set(presentation.TypeKey, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectIssued, len(tt.issuer.requests) == 1)
			require.Len(t, recorder.records, 1)
			assert.Equal(t, tt.expectedStatus, recorder.records[0].status)

			if tt.expectedStatus == http.StatusOK {
				var resp dto.PresignedURLResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.issuer.response, resp)
				assert.Equal(t, "general", recorder.records[0].classification)
				assert.Equal(t, int64(2048), recorder.records[0].size)

				return
			}

			assert.Contains(t, rec.Header().Get(presentation.ReasonTag), tt.expectedReason)
			assert.Contains(t, rec.Body.String(), tt.expectedReason)
		})
	}
}

func TestHandlePresignedURL_NilRecorder(t *testing.T) {
	h := NewPresignedURLHandler(&fakeIssuer{status: http.StatusOK}, nil)

	e := echo.New()
	e.POST("/get-presigned-url", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/get-presigned-url",
		strings.NewReader(`{"fileName":"a.pdf","fileSize":1}`))
	req.Header.Set(presentation.TypeKey, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { e.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestUploadPipeline_Integration drives the client pipeline against a real
// control plane backed by minio, mongo and redis.
func TestUploadPipeline_Integration(t *testing.T) {
	services := setupServices(t)
	ctx := context.Background()

	issuer := usecase.NewIssuer(
		minioInfra.NewPresigner(services.minio.MinioClient, &minioInfra.PresignerConfig{
			Bucket: minioBucket,
			Expiry: 300,
		}),
		dbInfra.NewDocumentWriter(services.db),
		dbInfra.NewDocumentRemover(services.db),
		broker.NewPublisher(services.broker, broker.PublisherConfig{Timeout: 1000}),
		usecase.UploaderConfig{},
	)

	e := echo.New()
	e.POST("/get-presigned-url", NewPresignedURLHandler(issuer, nil).Handle)
	e.GET("/documents", NewListHandler(usecase.NewLister(dbInfra.NewDocumentLister(services.db))).HandleList)

	server := httptest.NewServer(e)
	defer server.Close()

	uploader := usecase.NewUploader(
		controlplane.New(controlplane.Config{BaseURL: server.URL, Timeout: 10000}),
		transfer.New(transfer.Config{Timeout: 30000}),
		usecase.UploaderConfig{},
	)

	content := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("radiology report "), 4096)...)
	file := &entity.File{
		Name:    "Radiology-Report.PDF",
		Size:    int64(len(content)),
		Content: bytes.NewReader(content),
	}

	var last entity.ProgressSnapshot
	key, err := uploader.Upload(ctx, file, entity.UploadMetadata{
		Classification: entity.ClassificationPatient,
		Patient:        &entity.PatientInfo{ID: "P-99", Name: "Joao Pereira", Department: "Radiology"},
	}, func(s entity.ProgressSnapshot) { last = s })
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "patient/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, 100, last.Percentage)

	info, err := services.minio.MinioClient.StatObject(ctx, minioBucket, key, minio.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)

	documents, err := dbInfra.NewDocumentLister(services.db).List(ctx, database.DocumentFilter{PatientID: "P-99"})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, key, documents[0].Key)
	assert.Equal(t, "application/pdf", documents[0].FileType)

	opts, err := redis.ParseURL(services.redisURI)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	read, err := rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: "test-consumer",
		Streams:  []string{streamName, ">"},
		Count:    1,
		Block:    2 * time.Second,
	}).Result()
	require.NoError(t, err)
	require.Len(t, read, 1)
	require.Len(t, read[0].Messages, 1)

	var event dto.DocumentEvent
	body, _ := read[0].Messages[0].Values["body"].(string)
	require.NoError(t, json.Unmarshal([]byte(body), &event))
	assert.Equal(t, key, event.FileKey)
	assert.Equal(t, minioBucket, event.BucketName)

	t.Run("rejected credential surfaces the reason", func(t *testing.T) {
		exe := &entity.File{Name: "setup.exe", Size: 4, Content: bytes.NewReader([]byte("MZ\x90\x00"))}

		badUploader := usecase.NewUploader(
			controlplane.New(controlplane.Config{BaseURL: server.URL, Timeout: 10000}),
			transfer.New(transfer.Config{Timeout: 30000}),
			usecase.UploaderConfig{AllowedExtensions: []string{".pdf", ".exe"}},
		)

		_, err := badUploader.Upload(ctx, exe, entity.UploadMetadata{}, nil)

		var rejected *derrors.CredentialRequestError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, http.StatusUnsupportedMediaType, rejected.Status)
		assert.Contains(t, rejected.Body, ".exe")
	})
}
