package service

import (
	"fmt"
	"os"
	"path/filepath"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

// Resaver copies a loaded document into a fresh output document and writes it to disk
type Resaver struct {
	library  domain.PDFLibrary
	verifier domain.PageCounter // optional
	logger   domain.Logger
}

// NewResaver creates a resaver. verifier may be nil.
func NewResaver(library domain.PDFLibrary, verifier domain.PageCounter, logger domain.Logger) *Resaver {
	return &Resaver{
		library:  library,
		verifier: verifier,
		logger:   logger,
	}
}

// Resave writes doc's pages, in order, and its string metadata to target.
// It returns the number of pages written.
func (r *Resaver) Resave(doc domain.Document, target string) (int, error) {
	out := r.library.NewOutput()

	pages, err := doc.Pages()
	if err != nil {
		return 0, apperrors.NewLibraryError(fmt.Sprintf("Failed to read pages of '%s'", doc.Path()), err)
	}
	for _, page := range pages {
		if err := out.AddPage(page); err != nil {
			return 0, apperrors.NewLibraryError(fmt.Sprintf("Failed to copy page %d", page.Number()), err)
		}
	}

	meta, err := doc.Metadata()
	if err != nil {
		return 0, apperrors.NewLibraryError(fmt.Sprintf("Failed to read metadata of '%s'", doc.Path()), err)
	}
	if sanitized := SanitizeMetadata(meta); len(sanitized) > 0 {
		if err := out.AddMetadata(sanitized); err != nil {
			return 0, apperrors.NewLibraryError("Failed to attach metadata", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, apperrors.NewInternalError(fmt.Sprintf("Failed to create directory for '%s'", target), err)
	}
	if err := writeOutput(out, target); err != nil {
		return 0, err
	}

	if r.verifier != nil {
		n, err := r.verifier.CountPages(target)
		if err != nil {
			return 0, apperrors.NewLibraryError(fmt.Sprintf("Failed to verify '%s'", target), err)
		}
		if n != len(pages) {
			return 0, apperrors.NewLibraryError(
				fmt.Sprintf("Output '%s' has %d pages, expected %d", target, n, len(pages)),
				domain.ErrPageCountMismatch)
		}
	}

	return len(pages), nil
}

func writeOutput(out domain.OutputDocument, target string) error {
	f, err := os.Create(target)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("Failed to create '%s'", target), err)
	}
	if err := out.Write(f); err != nil {
		f.Close()
		os.Remove(target)
		return apperrors.NewLibraryError(fmt.Sprintf("Failed to write '%s'", target), err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("Failed to close '%s'", target), err)
	}
	return nil
}
