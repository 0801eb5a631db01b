package pdflib

import (
	"fmt"
	"path/filepath"
	"testing"

	"pdf-resaver/internal/domain"

	"github.com/phpdave11/gofpdf"
)

type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

var _ domain.Logger = (*mockLogger)(nil)

type fixture struct {
	pages        int
	title        string
	author       string
	protect      bool
	userPassword string
}

// writeFixture renders a PDF whose page i (1-based) is 100+10*i mm wide, so
// page order can be checked from the page dimensions alone.
func writeFixture(t *testing.T, dir, name string, f fixture) string {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	if f.title != "" {
		pdf.SetTitle(f.title, true)
	}
	if f.author != "" {
		pdf.SetAuthor(f.author, true)
	}
	if f.protect {
		pdf.SetProtection(gofpdf.CnProtectPrint, f.userPassword, "owner-secret")
	}
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= f.pages; i++ {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: 100 + 10*float64(i), Ht: 200})
		pdf.Cell(40, 10, fmt.Sprintf("page %d", i))
	}

	path := filepath.Join(dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
