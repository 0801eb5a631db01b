package service

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

func TestSanitizeMetadata(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Metadata
		want map[string]string
	}{
		{
			name: "nil",
			in:   nil,
			want: map[string]string{},
		},
		{
			name: "keeps strings only",
			in: domain.Metadata{
				"Title":        "Invoice",
				"Author":       "",
				"Pages":        42,
				"Trapped":      true,
				"CreationDate": []byte("D:20240101"),
				"Producer":     nil,
			},
			want: map[string]string{"Title": "Invoice", "Author": ""},
		},
		{
			name: "drops empty key",
			in:   domain.Metadata{"": "orphan", "Subject": "Zoë"},
			want: map[string]string{"Subject": "Zoë"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeMetadata(tt.in)
			if got == nil {
				t.Fatalf("expected non-nil map")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResave_CopiesPagesInOrder(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 4, meta: domain.Metadata{"Title": "T", "Count": 3}}
	lib := newFakeLibrary(doc)
	target := filepath.Join(t.TempDir(), "out.pdf")

	n, err := NewResaver(lib, nil, NewMockLogger()).Resave(doc, target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 pages, got %d", n)
	}
	out := lib.outputs[0]
	if !reflect.DeepEqual(out.pages, []int{1, 2, 3, 4}) {
		t.Fatalf("expected pages [1 2 3 4], got %v", out.pages)
	}
	if !reflect.DeepEqual(out.meta, map[string]string{"Title": "T"}) {
		t.Fatalf("expected sanitized metadata, got %v", out.meta)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected target to exist, got %v", err)
	}
	if string(data) != "pages=[1 2 3 4]" {
		t.Fatalf("unexpected target content %q", data)
	}
}

func TestResave_SkipsEmptyMetadata(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 1, meta: domain.Metadata{"Pages": 1}}
	lib := newFakeLibrary(doc)

	if _, err := NewResaver(lib, nil, NewMockLogger()).Resave(doc, filepath.Join(t.TempDir(), "out.pdf")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if lib.outputs[0].metaSet {
		t.Fatalf("expected metadata not to be attached")
	}
}

func TestResave_CreatesParentDirectories(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 1}
	target := filepath.Join(t.TempDir(), "a", "b", "c", "out.pdf")

	if _, err := NewResaver(newFakeLibrary(doc), nil, NewMockLogger()).Resave(doc, target); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected target to exist, got %v", err)
	}
}

func TestResave_WriteFailure(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 1}
	lib := newFakeLibrary(doc)
	lib.writeErr = errors.New("xref too large")

	target := filepath.Join(t.TempDir(), "out.pdf")
	_, err := NewResaver(lib, nil, NewMockLogger()).Resave(doc, target)
	if !apperrors.IsType(err, apperrors.ErrorTypeLibrary) {
		t.Fatalf("expected library error, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected partial target to be removed, got %v", err)
	}
}

func TestResave_ZeroPages(t *testing.T) {
	doc := &fakeDocument{path: "/empty.pdf"}
	target := filepath.Join(t.TempDir(), "out.pdf")

	_, err := NewResaver(newFakeLibrary(doc), nil, NewMockLogger()).Resave(doc, target)
	if !apperrors.IsType(err, apperrors.ErrorTypeLibrary) {
		t.Fatalf("expected library error, got %v", err)
	}
	if !errors.Is(err, domain.ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected no target file, got %v", err)
	}
}

func TestResave_LockedDocument(t *testing.T) {
	doc := &fakeDocument{path: "/locked.pdf", encrypted: true, pages: 1}

	_, err := NewResaver(newFakeLibrary(doc), nil, NewMockLogger()).Resave(doc, filepath.Join(t.TempDir(), "out.pdf"))
	if !errors.Is(err, domain.ErrDocumentLocked) {
		t.Fatalf("expected ErrDocumentLocked, got %v", err)
	}
}

func TestResave_Verifier(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 3}
	target := filepath.Join(t.TempDir(), "out.pdf")

	counter := &fakePageCounter{count: 3}
	if _, err := NewResaver(newFakeLibrary(doc), counter, NewMockLogger()).Resave(doc, target); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(counter.paths) != 1 || counter.paths[0] != target {
		t.Fatalf("expected verifier to read %s, got %v", target, counter.paths)
	}

	mismatch := &fakePageCounter{count: 2}
	_, err := NewResaver(newFakeLibrary(doc), mismatch, NewMockLogger()).Resave(doc, target)
	if !errors.Is(err, domain.ErrPageCountMismatch) {
		t.Fatalf("expected ErrPageCountMismatch, got %v", err)
	}
}
