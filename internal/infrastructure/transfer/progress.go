package transfer

import (
	"io"

	"medihub/internal/domain/entity"
)

// progressReader reports every read handed to the transport. The transport
// reads the body from a single goroutine, so onProgress is never called
// concurrently.
type progressReader struct {
	reader     io.Reader
	sent       int64
	total      int64
	onProgress entity.ProgressFunc
	readErr    error
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(entity.NewProgressSnapshot(p.sent, p.total))
		}
	}
	if err != nil && err != io.EOF {
		p.readErr = err
	}

	return n, err
}
