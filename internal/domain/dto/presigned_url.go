package dto

// PresignedURLRequest is the body of POST /get-presigned-url.
type PresignedURLRequest struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	Type        string `json:"type"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Department  string `json:"department,omitempty"`
}

// PresignedURLResponse is the 200 body of POST /get-presigned-url.
type PresignedURLResponse struct {
	PresignedURL string `json:"presignedUrl"`
	FileKey      string `json:"fileKey"`
	BucketName   string `json:"bucketName"`
}
