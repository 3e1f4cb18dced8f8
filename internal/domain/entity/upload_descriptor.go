package entity

import "strings"

type Classification string

const (
	ClassificationPatient Classification = "patient"
	ClassificationGeneral Classification = "general"
)

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	return c == ClassificationPatient || c == ClassificationGeneral
}

// PatientInfo links a document to a patient.
type PatientInfo struct {
	ID         string
	Name       string
	Department string
}

// Empty reports whether no patient field is set.
func (p *PatientInfo) Empty() bool {
	return p == nil ||
		(strings.TrimSpace(p.ID) == "" && strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Department) == "")
}

// UploadMetadata is what the caller supplies next to the file.
type UploadMetadata struct {
	Classification Classification
	Patient        *PatientInfo
}

// UploadDescriptor describes the object a write credential is requested for.
// Patient is only set when Classification is ClassificationPatient.
type UploadDescriptor struct {
	FileName       string
	MimeType       string
	SizeBytes      int64
	Classification Classification
	Patient        *PatientInfo
}

// NewUploadDescriptor combines file attributes and caller metadata. An empty
// classification defaults to general and patient fields are dropped for
// general documents.
func NewUploadDescriptor(file *File, mimeType string, meta UploadMetadata) UploadDescriptor {
	classification := meta.Classification
	if classification == "" {
		classification = ClassificationGeneral
	}

	var patient *PatientInfo
	if classification == ClassificationPatient && !meta.Patient.Empty() {
		p := *meta.Patient
		patient = &p
	}

	return UploadDescriptor{
		FileName:       strings.TrimSpace(file.Name),
		MimeType:       mimeType,
		SizeBytes:      file.Size,
		Classification: classification,
		Patient:        patient,
	}
}
