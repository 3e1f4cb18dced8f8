package dto

// DocumentDescriptor is one entry of GET /documents.
type DocumentDescriptor struct {
	FileKey     string `json:"fileKey"`
	BucketName  string `json:"bucketName"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	Type        string `json:"type"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Department  string `json:"department,omitempty"`
	Status      string `json:"status"`
	Created     int64  `json:"created"`
}

// DocumentEvent is published for every issued write credential so that the
// ingest pipeline can pick up the object once it lands.
type DocumentEvent struct {
	FileKey    string `json:"fileKey"`
	BucketName string `json:"bucketName"`
	FileType   string `json:"fileType"`
	Type       string `json:"type"`
	PatientID  string `json:"patientId,omitempty"`
}
