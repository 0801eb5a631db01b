package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"

	"github.com/google/uuid"
)

// EncryptedPDFMessage is returned when a merge input is still encrypted.
const EncryptedPDFMessage = "PDF file is encrypted or password-protected. Please re-scan or export without password."

// MergeService concatenates PDFs. By default each input is first re-saved
// without encryption so the merge never sees a locked file.
type MergeService struct {
	resaver           domain.ResaveService
	merger            domain.PDFMerger
	workDir           string
	resaveBeforeMerge bool
	logger            domain.Logger
}

func NewMergeService(
	resaver domain.ResaveService,
	merger domain.PDFMerger,
	workDir string,
	resaveBeforeMerge bool,
	logger domain.Logger,
) *MergeService {
	return &MergeService{
		resaver:           resaver,
		merger:            merger,
		workDir:           workDir,
		resaveBeforeMerge: resaveBeforeMerge,
		logger:            logger,
	}
}

// Merge writes the pages of inputs, in order, to output. Temporary copies are
// removed whether or not the merge succeeds.
func (s *MergeService) Merge(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return apperrors.NewValidationError("At least one PDF is required to merge")
	}

	var cleanup []string
	defer func() {
		for _, file := range cleanup {
			if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("Failed to remove temp PDF", "path", file, "error", err)
			}
		}
	}()

	working := inputs
	if s.resaveBeforeMerge {
		working = make([]string, 0, len(inputs))
		for _, input := range inputs {
			if err := ctx.Err(); err != nil {
				return err
			}
			tmp := s.tempPath(input)
			cleanup = append(cleanup, tmp)
			if _, err := s.resaver.ResaveFile(input, tmp); err != nil {
				if apperrors.IsType(err, apperrors.ErrorTypeUndecryptable) {
					s.logger.Warn("Encrypted PDF in merge input, merge aborted", "input", input, "error", err)
					return apperrors.NewUndecryptableError(EncryptedPDFMessage, err)
				}
				return err
			}
			working = append(working, tmp)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("Failed to create directory for '%s'", output), err)
	}
	if err := s.merger.MergeFiles(working, output); err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			s.logger.Warn("Encrypted PDF in merge input, merge aborted", "inputs", len(inputs))
			return apperrors.NewUndecryptableError(EncryptedPDFMessage, err)
		}
		s.logger.Error("Error merging PDFs", err, "inputs", len(inputs))
		return apperrors.NewLibraryError("Failed to merge PDFs", err)
	}

	s.logger.Info("Merged PDFs", "count", len(inputs), "output", output)
	return nil
}

// tempPath returns <workDir>/<base>__resaved-<uuid>.pdf
func (s *MergeService) tempPath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := s.workDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, fmt.Sprintf("%s__resaved-%s.pdf", base, uuid.NewString()))
}
