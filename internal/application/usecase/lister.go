package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/dezh-tech/immortal/pkg/logger"

	"medihub/internal/domain/dto"
	"medihub/internal/domain/repository/database"
)

// Lister implements the Lister abstraction for retrieving document records.
type Lister struct {
	lister database.Lister
}

// NewLister creates a new Lister usecase.
func NewLister(lister database.Lister) *Lister {
	return &Lister{
		lister: lister,
	}
}

// ListDocuments retrieves document records matching the filter.
func (l *Lister) ListDocuments(ctx context.Context,
	filter database.DocumentFilter,
) ([]dto.DocumentDescriptor, int, error) {
	if filter.Since != nil && filter.Until != nil && filter.Since.After(*filter.Until) {
		return nil, http.StatusBadRequest, errors.New("'since' must not be after 'until'")
	}

	documents, err := l.lister.List(ctx, filter)
	if err != nil {
		logger.Error("failed to list documents", "err", err)

		return nil, http.StatusInternalServerError, errors.New("failed to retrieve documents")
	}

	descriptors := make([]dto.DocumentDescriptor, 0, len(documents))
	for i := range documents {
		d := dto.DocumentDescriptor{
			FileKey:    documents[i].Key,
			BucketName: documents[i].Bucket,
			FileName:   documents[i].FileName,
			FileType:   documents[i].FileType,
			FileSize:   documents[i].Size,
			Type:       documents[i].Classification,
			Status:     documents[i].Status,
			Created:    documents[i].CreatedAt.Unix(),
		}
		if p := documents[i].Patient; p != nil {
			d.PatientID = p.ID
			d.PatientName = p.Name
			d.Department = p.Department
		}
		descriptors = append(descriptors, d)
	}

	return descriptors, http.StatusOK, nil
}
