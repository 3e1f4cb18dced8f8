package usecase

import (
	"strings"

	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
)

const DefaultMaxUploadBytes int64 = 10 << 20 // 10 MiB

var DefaultAllowedExtensions = []string{".pdf"}

// Policy holds the client-side upload gates. The control plane applies the
// same policy before minting a credential.
type Policy struct {
	maxUploadBytes    int64
	allowedExtensions []string
}

func NewPolicy(cfg UploaderConfig) Policy {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	allowed := make([]string, 0, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed = append(allowed, ext)
	}
	if len(allowed) == 0 {
		allowed = append(allowed, DefaultAllowedExtensions...)
	}

	return Policy{
		maxUploadBytes:    maxBytes,
		allowedExtensions: allowed,
	}
}

func (p Policy) MaxUploadBytes() int64 {
	return p.maxUploadBytes
}

// CheckFile validates the file itself, cheapest checks first.
func (p Policy) CheckFile(file *entity.File) error {
	if file == nil || file.Content == nil {
		return &derrors.InvalidInputError{Field: "file", Reason: "no file provided"}
	}
	if file.Size <= 0 {
		return &derrors.InvalidInputError{Field: "file", Reason: "file is empty"}
	}

	return p.check(file.Name, file.Size, file.Extension())
}

// CheckDescriptor validates a credential request as received by the control
// plane.
func (p Policy) CheckDescriptor(d entity.UploadDescriptor) error {
	if d.SizeBytes <= 0 {
		return &derrors.InvalidInputError{Field: "fileSize", Reason: "must be greater than zero"}
	}

	ext := (&entity.File{Name: d.FileName}).Extension()
	if err := p.check(d.FileName, d.SizeBytes, ext); err != nil {
		return err
	}

	return CheckMetadata(entity.UploadMetadata{Classification: d.Classification, Patient: d.Patient})
}

func (p Policy) check(name string, size int64, ext string) error {
	if strings.TrimSpace(name) == "" {
		return &derrors.InvalidInputError{Field: "fileName", Reason: "file name is required"}
	}
	if size > p.maxUploadBytes {
		return &derrors.PayloadTooLargeError{Size: size, Limit: p.maxUploadBytes}
	}
	for _, allowed := range p.allowedExtensions {
		if ext == allowed {
			return nil
		}
	}

	return &derrors.UnsupportedMediaTypeError{Extension: ext, Allowed: p.allowedExtensions}
}

// CheckMetadata enforces that patient fields only come with patient
// documents. An empty classification is read as general.
func CheckMetadata(meta entity.UploadMetadata) error {
	classification := meta.Classification
	if classification == "" {
		classification = entity.ClassificationGeneral
	}
	if !classification.Valid() {
		return &derrors.InvalidInputError{
			Field:  "type",
			Reason: "must be \"patient\" or \"general\", got \"" + string(meta.Classification) + "\"",
		}
	}
	if classification == entity.ClassificationGeneral && !meta.Patient.Empty() {
		return &derrors.InvalidInputError{Field: "type", Reason: "patient fields require a patient document"}
	}

	return nil
}
