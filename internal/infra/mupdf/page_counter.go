// Package mupdf counts pages through MuPDF, independently of pdfcpu.
package mupdf

import (
	"fmt"
	"os"

	"pdf-resaver/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// PageCounter implements domain.PageCounter
type PageCounter struct {
	logger domain.Logger
}

// NewPageCounter creates a new page counter
func NewPageCounter(logger domain.Logger) *PageCounter {
	return &PageCounter{logger: logger}
}

// CountPages opens the file with MuPDF and returns its page count
func (c *PageCounter) CountPages(path string) (int, error) {
	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	c.logger.Debug("MuPDF page count", "path", path, "pages", n)
	return n, nil
}
