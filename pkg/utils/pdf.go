package utils

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFPageCount opens the PDF at path and returns its page count.
func PDFPageCount(path string) (pages int, err error) {
	defer func() {
		// the parser panics on some malformed cross-reference tables
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return r.NumPage(), nil
}
