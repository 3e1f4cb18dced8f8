package controlplane

import (
	"context"
	"errors"

	"github.com/dezh-tech/immortal/pkg/logger"

	"medihub/internal/domain/dto"
	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
)

const opPresignedURL = "get-presigned-url"

// RequestWriteCredential asks the control plane for a presigned PUT URL.
// Exactly one request is made per call.
func (c *Client) RequestWriteCredential(ctx context.Context,
	descriptor entity.UploadDescriptor,
) (entity.WriteCredential, error) {
	request := dto.PresignedURLRequest{
		FileName: descriptor.FileName,
		FileType: descriptor.MimeType,
		FileSize: descriptor.SizeBytes,
		Type:     string(descriptor.Classification),
	}
	if descriptor.Classification == entity.ClassificationPatient && descriptor.Patient != nil {
		request.PatientID = descriptor.Patient.ID
		request.PatientName = descriptor.Patient.Name
		request.Department = descriptor.Patient.Department
	}

	var response dto.PresignedURLResponse
	if err := c.postJSON(ctx, PresignedURLPath, request, &response, opPresignedURL); err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			logger.Error("control plane rejected credential request",
				"status", statusErr.status, "file", descriptor.FileName)

			return entity.WriteCredential{}, &derrors.CredentialRequestError{
				Status: statusErr.status,
				Body:   statusErr.body,
			}
		}

		return entity.WriteCredential{}, err
	}

	if response.PresignedURL == "" || response.FileKey == "" {
		return entity.WriteCredential{}, &derrors.InvalidResponseError{
			Op:  opPresignedURL,
			Err: errors.New("missing presignedUrl or fileKey"),
		}
	}

	return entity.WriteCredential{
		URL:        response.PresignedURL,
		ObjectKey:  response.FileKey,
		BucketName: response.BucketName,
	}, nil
}
