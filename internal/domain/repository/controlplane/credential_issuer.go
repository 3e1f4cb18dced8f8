package controlplane

import (
	"context"

	"medihub/internal/domain/entity"
)

// CredentialIssuer mints a write credential for one upload attempt.
type CredentialIssuer interface {
	RequestWriteCredential(ctx context.Context, descriptor entity.UploadDescriptor) (entity.WriteCredential, error)
}
