package usecase

import (
	"context"
	"strings"

	"github.com/dezh-tech/immortal/pkg/logger"

	"medihub/internal/domain/entity"
	"medihub/internal/domain/repository/controlplane"
	"medihub/internal/domain/repository/storage"
	"medihub/pkg/utils"
)

// Uploader runs one upload attempt: validate, request a write credential,
// transfer the bytes. It keeps no state between attempts.
type Uploader struct {
	issuer      controlplane.CredentialIssuer
	transferrer storage.Transferrer
	policy      Policy
}

func NewUploader(issuer controlplane.CredentialIssuer, transferrer storage.Transferrer,
	cfg UploaderConfig,
) *Uploader {
	return &Uploader{
		issuer:      issuer,
		transferrer: transferrer,
		policy:      NewPolicy(cfg),
	}
}

// Upload returns the object key of the uploaded file. Nothing is retried; the
// first failing step ends the attempt with its typed error.
func (u *Uploader) Upload(ctx context.Context, file *entity.File, meta entity.UploadMetadata,
	onProgress entity.ProgressFunc,
) (string, error) {
	if err := u.policy.CheckFile(file); err != nil {
		return "", err
	}
	if err := CheckMetadata(meta); err != nil {
		return "", err
	}

	mimeType := strings.TrimSpace(file.Type)
	if mimeType == "" {
		mimeType = utils.GetMimeTypeFromFileName(file.Name)
	}
	descriptor := entity.NewUploadDescriptor(file, mimeType, meta)

	logger.Info("requesting write credential", "file", descriptor.FileName,
		"size", descriptor.SizeBytes, "type", descriptor.Classification)

	credential, err := u.issuer.RequestWriteCredential(ctx, descriptor)
	if err != nil {
		logger.Error("write credential request failed", "file", descriptor.FileName, "err", err)

		return "", err
	}

	payload := *file
	payload.Type = mimeType

	if err := u.transferrer.Transfer(ctx, &payload, credential.URL, onProgress); err != nil {
		logger.Error("transfer failed", "file", descriptor.FileName, "key", credential.ObjectKey, "err", err)

		return "", err
	}

	logger.Info("upload completed", "file", descriptor.FileName, "key", credential.ObjectKey,
		"bucket", credential.BucketName)

	return credential.ObjectKey, nil
}
