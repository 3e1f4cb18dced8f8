package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/google/uuid"

	"medihub/internal/domain/dto"
	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
	"medihub/internal/domain/model"
	"medihub/internal/domain/repository/broker"
	"medihub/internal/domain/repository/database"
	"medihub/internal/domain/repository/minio"
	"medihub/pkg/utils"
)

// Issuer mints presigned PUT URLs, records the pending document and
// announces it to the ingest pipeline.
type Issuer struct {
	presigner minio.Presigner
	writer    database.Writer
	remover   database.Remover
	publisher broker.Publisher
	policy    Policy
}

func NewIssuer(presigner minio.Presigner, writer database.Writer, remover database.Remover,
	publisher broker.Publisher, cfg UploaderConfig,
) *Issuer {
	return &Issuer{
		presigner: presigner,
		writer:    writer,
		remover:   remover,
		publisher: publisher,
		policy:    NewPolicy(cfg),
	}
}

func (i *Issuer) Issue(ctx context.Context, request dto.PresignedURLRequest) (dto.PresignedURLResponse, int, error) {
	descriptor := descriptorFromRequest(request)
	if err := i.policy.CheckDescriptor(descriptor); err != nil {
		return dto.PresignedURLResponse{}, statusForPolicyError(err), err
	}
	if descriptor.Classification == "" {
		descriptor.Classification = entity.ClassificationGeneral
	}
	if descriptor.MimeType == "" {
		descriptor.MimeType = utils.GetMimeTypeFromFileName(descriptor.FileName)
	}

	ext := (&entity.File{Name: descriptor.FileName}).Extension()
	key := fmt.Sprintf("%s/%s%s", descriptor.Classification, uuid.NewString(), ext)

	url, bucket, err := i.presigner.PresignPut(ctx, key)
	if err != nil {
		logger.Error("failed to presign upload url", "key", key, "err", err)

		return dto.PresignedURLResponse{}, http.StatusInternalServerError, errors.New("couldn't create upload url")
	}

	document := &model.Document{
		Key:            key,
		Bucket:         bucket,
		FileName:       descriptor.FileName,
		FileType:       descriptor.MimeType,
		Size:           descriptor.SizeBytes,
		Classification: string(descriptor.Classification),
		Status:         model.DocumentStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if p := descriptor.Patient; p != nil {
		document.Patient = &model.Patient{ID: p.ID, Name: p.Name, Department: p.Department}
	}

	if err := i.writer.Write(ctx, document); err != nil {
		logger.Error("failed to record document", "key", key, "err", err)

		return dto.PresignedURLResponse{}, http.StatusInternalServerError, errors.New("couldn't add document to database")
	}

	event := dto.DocumentEvent{
		FileKey:    key,
		BucketName: bucket,
		FileType:   descriptor.MimeType,
		Type:       document.Classification,
	}
	if document.Patient != nil {
		event.PatientID = document.Patient.ID
	}

	if err := i.publish(ctx, event); err != nil {
		if removeErr := i.remover.RemoveByKey(ctx, key); removeErr != nil {
			logger.Error("failed to remove document from db after publish failed", "err", removeErr)
		}

		logger.Error("failed to publish document event for further processing", "err", err)

		return dto.PresignedURLResponse{}, http.StatusInternalServerError,
			errors.New("failed to publish document to queue for further processing")
	}

	logger.Info("issued write credential", "key", key, "bucket", bucket, "size", descriptor.SizeBytes)

	return dto.PresignedURLResponse{
		PresignedURL: url,
		FileKey:      key,
		BucketName:   bucket,
	}, http.StatusOK, nil
}

func (i *Issuer) publish(ctx context.Context, event dto.DocumentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return i.publisher.Publish(ctx, string(body))
}

func descriptorFromRequest(request dto.PresignedURLRequest) entity.UploadDescriptor {
	descriptor := entity.UploadDescriptor{
		FileName:       request.FileName,
		MimeType:       request.FileType,
		SizeBytes:      request.FileSize,
		Classification: entity.Classification(request.Type),
	}

	patient := &entity.PatientInfo{
		ID:         request.PatientID,
		Name:       request.PatientName,
		Department: request.Department,
	}
	if !patient.Empty() {
		descriptor.Patient = patient
	}

	return descriptor
}

func statusForPolicyError(err error) int {
	var (
		tooLarge    *derrors.PayloadTooLargeError
		unsupported *derrors.UnsupportedMediaTypeError
	)

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
