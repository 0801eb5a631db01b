package service

import (
	"fmt"
	"io"
	"os"

	"pdf-resaver/internal/domain"
)

// Mock implementations for testing
type MockLogger struct{}

func NewMockLogger() domain.Logger {
	return &MockLogger{}
}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

type fakePage struct{ n int }

func (p fakePage) Number() int { return p.n }

type fakeDocument struct {
	path      string
	encrypted bool
	pages     int
	meta      domain.Metadata
	metaErr   error
	results   map[domain.PasswordKind]domain.DecryptResult
	errs      map[domain.PasswordKind]error
	attempts  []domain.PasswordKind
	unlocked  bool
}

func (d *fakeDocument) Path() string      { return d.path }
func (d *fakeDocument) IsEncrypted() bool { return d.encrypted }

func (d *fakeDocument) Decrypt(pw domain.Password) (domain.DecryptResult, error) {
	d.attempts = append(d.attempts, pw.Kind)
	if err := d.errs[pw.Kind]; err != nil {
		return domain.NotDecrypted, err
	}
	r := d.results[pw.Kind]
	if r.Succeeded() {
		d.unlocked = true
	}
	return r, nil
}

func (d *fakeDocument) Pages() ([]domain.Page, error) {
	if d.encrypted && !d.unlocked {
		return nil, domain.ErrDocumentLocked
	}
	pages := make([]domain.Page, 0, d.pages)
	for i := 1; i <= d.pages; i++ {
		pages = append(pages, fakePage{n: i})
	}
	return pages, nil
}

func (d *fakeDocument) Metadata() (domain.Metadata, error) {
	if d.metaErr != nil {
		return nil, d.metaErr
	}
	return d.meta, nil
}

type fakeOutput struct {
	pages    []int
	meta     map[string]string
	metaSet  bool
	writeErr error
}

func (o *fakeOutput) AddPage(p domain.Page) error {
	o.pages = append(o.pages, p.Number())
	return nil
}

func (o *fakeOutput) AddMetadata(entries map[string]string) error {
	o.metaSet = true
	o.meta = entries
	return nil
}

func (o *fakeOutput) Write(w io.Writer) error {
	if o.writeErr != nil {
		return o.writeErr
	}
	if len(o.pages) == 0 {
		return domain.ErrEmptyOutput
	}
	_, err := fmt.Fprintf(w, "pages=%v", o.pages)
	return err
}

type fakeLibrary struct {
	docs     map[string]*fakeDocument
	openErr  error
	writeErr error
	opened   []string
	outputs  []*fakeOutput
}

func newFakeLibrary(docs ...*fakeDocument) *fakeLibrary {
	lib := &fakeLibrary{docs: make(map[string]*fakeDocument)}
	for _, d := range docs {
		lib.docs[d.path] = d
	}
	return lib
}

func (l *fakeLibrary) Open(path string) (domain.Document, error) {
	l.opened = append(l.opened, path)
	if l.openErr != nil {
		return nil, l.openErr
	}
	doc, ok := l.docs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return doc, nil
}

func (l *fakeLibrary) NewOutput() domain.OutputDocument {
	o := &fakeOutput{writeErr: l.writeErr}
	l.outputs = append(l.outputs, o)
	return o
}

type fakePageCounter struct {
	count int
	err   error
	paths []string
}

func (c *fakePageCounter) CountPages(path string) (int, error) {
	c.paths = append(c.paths, path)
	return c.count, c.err
}
