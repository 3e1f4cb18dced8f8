package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"medihub/internal/application/usecase"
	"medihub/internal/application/usecase/abstraction"
	"medihub/internal/domain/entity"
	"medihub/internal/infrastructure/controlplane"
	"medihub/internal/infrastructure/transfer"
	"medihub/pkg/utils"
)

const uploadUsage = "medihub upload <config> [flags] <file>..."

type uploadOptions struct {
	meta  entity.UploadMetadata
	files []string
}

type uploadResult struct {
	path string
	key  string
	err  error
}

func HandleUpload(args []string) {
	cfg := loadConfig(args, uploadUsage)
	if err := cfg.CheckClient(); err != nil {
		ExitOnError(err)
	}

	opts, err := parseUploadArgs(args[3:])
	if err != nil {
		ExitOnError(fmt.Errorf("%w\nusage: %s", err, uploadUsage))
	}

	uploader := usecase.NewUploader(
		controlplane.New(cfg.ControlPlane),
		transfer.New(cfg.Transfer),
		cfg.Uploader,
	)

	ctx, stop := signalContext()
	defer stop()

	failed := 0
	for _, r := range runUploads(ctx, uploader, opts, os.Stdout) {
		if r.err != nil {
			failed++
		}
	}

	if failed > 0 {
		ExitOnError(fmt.Errorf("%d of %d uploads failed", failed, len(opts.files)))
	}
}

func parseUploadArgs(args []string) (uploadOptions, error) {
	fs := pflag.NewFlagSet("upload", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	classification := fs.String("type", string(entity.ClassificationGeneral), `document type, "patient" or "general"`)
	patient := entity.PatientInfo{}
	fs.StringVar(&patient.ID, "patient-id", "", "patient identifier")
	fs.StringVar(&patient.Name, "patient-name", "", "patient name")
	fs.StringVar(&patient.Department, "department", "", "department")

	if err := fs.Parse(args); err != nil {
		return uploadOptions{}, err
	}
	if fs.NArg() == 0 {
		return uploadOptions{}, errors.New("at least one file expected")
	}

	opts := uploadOptions{
		meta:  entity.UploadMetadata{Classification: entity.Classification(*classification)},
		files: fs.Args(),
	}
	if !patient.Empty() {
		opts.meta.Patient = &patient
	}

	return opts, nil
}

// runUploads uploads every file concurrently. Each upload has its own outcome;
// a failing file does not stop the others.
func runUploads(ctx context.Context, uploader abstraction.Uploader, opts uploadOptions,
	out io.Writer,
) []uploadResult {
	results := make([]uploadResult, len(opts.files))
	printer := &progressPrinter{out: out}

	var g errgroup.Group
	for i, path := range opts.files {
		g.Go(func() error {
			results[i] = uploadOne(ctx, uploader, path, opts.meta, printer)

			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			printer.printf("FAILED %s: %v\n", r.path, r.err)

			continue
		}
		printer.printf("OK     %s -> %s\n", r.path, r.key)
	}

	return results
}

func uploadOne(ctx context.Context, uploader abstraction.Uploader, path string,
	meta entity.UploadMetadata, printer *progressPrinter,
) uploadResult {
	file, closeFile, err := openFile(path)
	if err != nil {
		return uploadResult{path: path, err: err}
	}
	defer closeFile()

	last := -1
	key, err := uploader.Upload(ctx, file, meta, func(s entity.ProgressSnapshot) {
		if s.Percentage == last {
			return
		}
		last = s.Percentage
		printer.printf("%s: %3d%% (%d/%d bytes)\n", file.Name, s.Percentage, s.BytesSent, s.BytesTotal)
	})

	return uploadResult{path: path, key: key, err: err}
}

func openFile(path string) (*entity.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()

		return nil, nil, fmt.Errorf("%s is a directory", path)
	}

	mimeType, err := utils.DetectMimeType(path)
	if err != nil {
		_ = f.Close()

		return nil, nil, err
	}

	if mimeType == "application/pdf" {
		pages, err := utils.PDFPageCount(path)
		if err != nil {
			logger.Error("file does not parse as pdf", "file", path, "err", err)
		} else {
			logger.Info("opened pdf", "file", path, "pages", pages, "size", info.Size())
		}
	}

	return &entity.File{
		Name:    filepath.Base(path),
		Type:    mimeType,
		Size:    info.Size(),
		Content: f,
	}, func() { _ = f.Close() }, nil
}

type progressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *progressPrinter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, format, args...) //nolint
}
