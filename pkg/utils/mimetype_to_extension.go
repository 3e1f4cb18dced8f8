package utils

import (
	"path/filepath"
	"strings"
)

const DefaultMimeType = "application/octet-stream"

// mimeTypeToExtension maps document and scan MIME types to their typical file extensions.
var mimeTypeToExtension = map[string]string{
	"application/pdf":    ".pdf",
	"application/json":   ".json",
	"application/xml":    ".xml",
	"application/zip":    ".zip",
	"application/dicom":  ".dcm",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/rtf":          ".rtf",
	"application/octet-stream": ".bin",
	"image/bmp":                ".bmp",
	"image/gif":                ".gif",
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/tiff":               ".tif",
	"image/webp":               ".webp",
	"text/csv":                 ".csv",
	"text/html":                ".html",
	"text/plain":               ".txt",
	"text/xml":                 ".xml",
}

// extensionToMimeType is the reverse of mimeTypeToExtension plus common aliases.
var extensionToMimeType = func() map[string]string {
	m := make(map[string]string, len(mimeTypeToExtension)+3)
	for mimeType, ext := range mimeTypeToExtension {
		if _, ok := m[ext]; !ok {
			m[ext] = mimeType
		}
	}
	m[".xml"] = "application/xml"
	m[".jpeg"] = "image/jpeg"
	m[".tiff"] = "image/tiff"

	return m
}()

// GetMimeTypeFromFileName returns the MIME type registered for the file
// extension, or DefaultMimeType.
func GetMimeTypeFromFileName(name string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if mimeType, ok := extensionToMimeType[ext]; ok {
		return mimeType
	}

	return DefaultMimeType
}
