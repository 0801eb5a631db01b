package service

import (
	"errors"
	"fmt"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

// DecryptingLoader opens documents and unlocks those protected only by an
// empty user password.
type DecryptingLoader struct {
	library    domain.PDFLibrary
	candidates []domain.Password
	logger     domain.Logger
}

// NewDecryptingLoader creates a loader that tries domain.EmptyPasswords in order
func NewDecryptingLoader(library domain.PDFLibrary, logger domain.Logger) *DecryptingLoader {
	return &DecryptingLoader{
		library:    library,
		candidates: domain.EmptyPasswords(),
		logger:     logger,
	}
}

// Load opens path and, if it is encrypted, tries each empty-password
// candidate until one succeeds.
func (l *DecryptingLoader) Load(path string) (domain.Document, error) {
	if l.library == nil {
		return nil, apperrors.NewMissingDependencyError("No PDF library is configured. Re-saving PDFs is unavailable.", nil)
	}

	doc, err := l.library.Open(path)
	if err != nil {
		if errors.Is(err, domain.ErrEncryptionUnsupported) {
			return nil, apperrors.NewMissingDependencyError(
				fmt.Sprintf("The PDF library cannot decrypt '%s': %v", path, err), err)
		}
		return nil, apperrors.NewLibraryError(fmt.Sprintf("Failed to open '%s'", path), err)
	}

	if !doc.IsEncrypted() {
		return doc, nil
	}

	decrypted := false
	for _, password := range l.candidates {
		result, err := doc.Decrypt(password)
		if errors.Is(err, domain.ErrUnsupportedPassword) {
			l.logger.Debug("Password representation rejected, skipping", "path", path, "kind", password.Kind)
			continue
		}
		if err != nil {
			return nil, apperrors.NewLibraryError(fmt.Sprintf("Failed to decrypt '%s'", path), err)
		}
		if result.Succeeded() {
			l.logger.Debug("Unlocked encrypted PDF", "path", path, "kind", password.Kind, "result", int(result))
			decrypted = true
			break
		}
	}

	if !decrypted && doc.IsEncrypted() {
		return nil, apperrors.NewUndecryptableError(
			fmt.Sprintf("Unable to decrypt '%s'. Provide a password or re-export the file.", path), nil)
	}
	return doc, nil
}
