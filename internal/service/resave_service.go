package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

// ResaveService re-saves a PDF file without encryption
type ResaveService struct {
	loader  *DecryptingLoader
	resaver *Resaver
	logger  domain.Logger
}

func NewResaveService(loader *DecryptingLoader, resaver *Resaver, logger domain.Logger) *ResaveService {
	return &ResaveService{
		loader:  loader,
		resaver: resaver,
		logger:  logger,
	}
}

// ResaveFile resolves both paths, checks the source exists, then loads and
// re-saves it. Nothing is written when the source is missing.
func (s *ResaveService) ResaveFile(source, target string) (*domain.ResaveResult, error) {
	src, err := resolvePath(source)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid source path", err.Error())
	}
	dst, err := resolvePath(target)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid target path", err.Error())
	}

	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		return nil, apperrors.NewMissingInputError(fmt.Sprintf("Source PDF not found: %s", src))
	}

	doc, err := s.loader.Load(src)
	if err != nil {
		return nil, err
	}
	pages, err := s.resaver.Resave(doc, dst)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Re-saved PDF copy", "source", src, "target", dst, "pages", pages, "encrypted", doc.IsEncrypted())
	return &domain.ResaveResult{
		Source:    src,
		Target:    dst,
		PageCount: pages,
		Encrypted: doc.IsEncrypted(),
	}, nil
}

// resolvePath expands a leading "~" and returns an absolute, cleaned path.
func resolvePath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty path")
	}
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
