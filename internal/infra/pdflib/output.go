package pdflib

import (
	"fmt"
	"io"

	"pdf-resaver/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// output collects page numbers from a single source document. pdfcpu copies
// them into a fresh context on Write, so nothing of the source's
// encryption dictionary survives.
type output struct {
	source   *document
	pages    []int
	metadata map[string]string
}

func (o *output) AddPage(p domain.Page) error {
	pg, ok := p.(page)
	if !ok {
		return domain.ErrForeignPage
	}
	if o.source == nil {
		o.source = pg.doc
	} else if o.source != pg.doc {
		return domain.ErrForeignPage
	}
	o.pages = append(o.pages, pg.number)
	return nil
}

func (o *output) AddMetadata(entries map[string]string) error {
	if o.metadata == nil {
		o.metadata = make(map[string]string, len(entries))
	}
	for key, value := range entries {
		o.metadata[key] = value
	}
	return nil
}

func (o *output) Write(w io.Writer) error {
	if o.source == nil || len(o.pages) == 0 {
		return domain.ErrEmptyOutput
	}
	if o.source.ctx == nil {
		return domain.ErrDocumentLocked
	}

	ctx, err := pdfcpu.ExtractPages(o.source.ctx, o.pages, false)
	if err != nil {
		return fmt.Errorf("copy pages: %w", err)
	}
	if err := mergeInfo(ctx, o.metadata); err != nil {
		return fmt.Errorf("write info dict: %w", err)
	}
	return api.WriteContext(ctx, w)
}

// mergeInfo writes entries into ctx's info dictionary, creating it when missing.
func mergeInfo(ctx *model.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	var info types.Dict
	if ctx.Info != nil {
		d, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return err
		}
		info = d
	}
	if info == nil {
		info = types.Dict{}
		ref, err := ctx.IndRefForNewObject(info)
		if err != nil {
			return err
		}
		ctx.Info = ref
	}

	for key, value := range entries {
		obj, err := encodeInfoValue(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		info[key] = obj
	}
	return nil
}
