package entity

import (
	"io"
	"path/filepath"
	"strings"
)

// File is the content handed to an upload attempt. Content is read from the
// start on every attempt, so a failed upload can be retried with the same
// File.
type File struct {
	Name    string
	Type    string
	Size    int64
	Content io.ReaderAt
}

// Reader returns a fresh reader over the whole content.
func (f *File) Reader() io.Reader {
	return io.NewSectionReader(f.Content, 0, f.Size)
}

// Extension returns the lower-cased extension of the file name, dot included.
func (f *File) Extension() string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(f.Name)))
}
