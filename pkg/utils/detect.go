package utils

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType sniffs the content of the file at path. When the content
// gives no better answer than a generic type, the extension decides.
func DetectMimeType(path string) (string, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}

	mimeType := strings.Split(detected.String(), ";")[0]
	if mimeType == DefaultMimeType || mimeType == "text/plain" {
		if byName := GetMimeTypeFromFileName(path); byName != DefaultMimeType {
			return byName, nil
		}
	}

	return mimeType, nil
}
