package pdflib

import (
	"fmt"
	"unicode/utf8"

	"pdf-resaver/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type document struct {
	lib       *Library
	path      string
	raw       []byte
	ctx       *model.Context // nil while locked
	encrypted bool
}

type page struct {
	doc    *document
	number int
}

func (p page) Number() int { return p.number }

func (d *document) Path() string { return d.path }

func (d *document) IsEncrypted() bool { return d.encrypted }

// Decrypt re-reads the file with password as both user and owner
// credential. A rejected password is reported as NotDecrypted, not as an error.
func (d *document) Decrypt(password domain.Password) (domain.DecryptResult, error) {
	secret, err := passwordString(password)
	if err != nil {
		return domain.NotDecrypted, err
	}
	if !d.encrypted {
		return domain.NotDecrypted, domain.ErrNotEncrypted
	}

	ctx, err := d.lib.read(d.raw, secret, secret)
	if err != nil {
		if isWrongPassword(err) {
			return domain.NotDecrypted, nil
		}
		return domain.NotDecrypted, err
	}
	d.ctx = ctx
	return domain.DecryptedUser, nil
}

func (d *document) Pages() ([]domain.Page, error) {
	if d.ctx == nil {
		return nil, domain.ErrDocumentLocked
	}
	pages := make([]domain.Page, 0, d.ctx.PageCount)
	for nr := 1; nr <= d.ctx.PageCount; nr++ {
		pages = append(pages, page{doc: d, number: nr})
	}
	return pages, nil
}

// Metadata returns the info dictionary with text strings decoded to Go
// strings. Every other value is left as its pdfcpu object.
func (d *document) Metadata() (domain.Metadata, error) {
	if d.ctx == nil {
		return nil, domain.ErrDocumentLocked
	}
	if d.ctx.Info == nil {
		return nil, nil
	}
	info, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil {
		return nil, fmt.Errorf("read info dict: %w", err)
	}
	if info == nil {
		return nil, nil
	}

	meta := make(domain.Metadata, len(info))
	for key, obj := range info {
		value, err := d.ctx.Dereference(obj)
		if err != nil {
			d.lib.logger.Warn("Skipping unreadable info entry", "path", d.path, "key", key, "error", err)
			continue
		}
		meta[key] = decodeInfoValue(value)
	}
	return meta, nil
}

func passwordString(password domain.Password) (string, error) {
	switch password.Kind {
	case domain.PasswordText:
		return password.Text, nil
	case domain.PasswordBytes:
		if !utf8.Valid(password.Bytes) {
			return "", fmt.Errorf("%w: pdfcpu needs UTF-8 passwords", domain.ErrUnsupportedPassword)
		}
		return string(password.Bytes), nil
	case domain.PasswordAbsent:
		return "", nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedPassword, password.Kind)
}
