package domain

import (
	"io"
)

// PasswordKind identifies how a credential is represented when handed to the PDF library
type PasswordKind int

const (
	PasswordText PasswordKind = iota
	PasswordBytes
	PasswordAbsent
)

func (k PasswordKind) String() string {
	switch k {
	case PasswordText:
		return "text"
	case PasswordBytes:
		return "bytes"
	case PasswordAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Password is a single decryption credential
type Password struct {
	Kind  PasswordKind
	Text  string
	Bytes []byte
}

// TextPassword returns a text credential
func TextPassword(s string) Password {
	return Password{Kind: PasswordText, Text: s}
}

// BytesPassword returns a raw byte credential
func BytesPassword(b []byte) Password {
	return Password{Kind: PasswordBytes, Bytes: b}
}

// AbsentPassword returns a credential carrying no value at all
func AbsentPassword() Password {
	return Password{Kind: PasswordAbsent}
}

// EmptyPasswords returns the empty-password attempts in the order they are tried.
func EmptyPasswords() []Password {
	return []Password{
		TextPassword(""),
		BytesPassword([]byte{}),
		AbsentPassword(),
	}
}

// DecryptResult reports which password, if any, unlocked a document
type DecryptResult int

const (
	NotDecrypted DecryptResult = iota
	DecryptedUser
	DecryptedOwner
)

// Succeeded reports whether the attempt unlocked the document.
// Every result other than NotDecrypted counts as success.
func (r DecryptResult) Succeeded() bool {
	return r != NotDecrypted
}

// Page is an opaque page handle owned by the library that produced it
type Page interface {
	// Number is the 1-based position of the page in its source document.
	Number() int
}

// Metadata is the document information dictionary. Values keep whatever
// type the library decoded them to; nil means the document has none.
type Metadata map[string]any

// Document is an opened PDF
type Document interface {
	Path() string
	IsEncrypted() bool
	Decrypt(password Password) (DecryptResult, error)
	Pages() ([]Page, error)
	Metadata() (Metadata, error)
}

// OutputDocument accumulates pages and metadata before serialization
type OutputDocument interface {
	AddPage(page Page) error
	AddMetadata(entries map[string]string) error
	Write(w io.Writer) error
}

// PDFLibrary is the external PDF reader/writer capability
type PDFLibrary interface {
	Open(path string) (Document, error)
	NewOutput() OutputDocument
}

// PDFMerger concatenates whole PDF files in order
type PDFMerger interface {
	MergeFiles(inputs []string, output string) error
}

// PageCounter reports the number of pages in a PDF file on disk
type PageCounter interface {
	CountPages(path string) (int, error)
}

// ResaveResult describes a finished resave
type ResaveResult struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	PageCount int    `json:"page_count"`
	Encrypted bool   `json:"encrypted"`
}
