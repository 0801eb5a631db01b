// Package pdflib adapts pdfcpu to the domain.PDFLibrary interface.
package pdflib

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"pdf-resaver/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Library implements domain.PDFLibrary and domain.PDFMerger with pdfcpu
type Library struct {
	logger domain.Logger
}

// NewLibrary creates a pdfcpu backed library. pdfcpu's on-disk config
// directory is disabled so the process never writes to the user's home.
func NewLibrary(logger domain.Logger) *Library {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Library{logger: logger}
}

// Open reads the whole file and tries it with empty credentials.
// An encrypted file stays locked until Decrypt succeeds.
func (l *Library) Open(path string) (domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &document{lib: l, path: path, raw: raw}

	ctx, err := l.read(raw, "", "")
	switch {
	case err == nil:
		doc.encrypted = ctx.Encrypt != nil || ctx.E != nil
		if !doc.encrypted {
			doc.ctx = ctx
		}
	case isUnsupportedEncryption(err):
		return nil, fmt.Errorf("%w: %v", domain.ErrEncryptionUnsupported, err)
	case isWrongPassword(err):
		doc.encrypted = true
	default:
		return nil, err
	}

	l.logger.Debug("PDF opened", "path", path, "bytes", len(raw), "encrypted", doc.encrypted)
	return doc, nil
}

// NewOutput returns an empty output document
func (l *Library) NewOutput() domain.OutputDocument {
	return &output{}
}

// MergeFiles concatenates inputs in order into output
func (l *Library) MergeFiles(inputs []string, output string) error {
	if err := api.MergeCreateFile(inputs, output, false, l.configuration("", "")); err != nil {
		if isWrongPassword(err) {
			return fmt.Errorf("%w: %v", domain.ErrWrongPassword, err)
		}
		return err
	}
	return nil
}

func (l *Library) configuration(userPW, ownerPW string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = userPW
	conf.OwnerPW = ownerPW
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (l *Library) read(raw []byte, userPW, ownerPW string) (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(raw), l.configuration(userPW, ownerPW))
	if err != nil {
		return nil, err
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// pdfcpu reports credential problems as plain errors, e.g.
// "pdfcpu: please provide the correct password".
func isWrongPassword(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "password")
}

func isUnsupportedEncryption(err error) bool {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "encrypt") {
		return false
	}
	return strings.Contains(msg, "unsupported") || strings.Contains(msg, "unknown")
}
