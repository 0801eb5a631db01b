package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedPassword   = errors.New("password representation not supported")
	ErrEncryptionUnsupported = errors.New("no crypto handler for this encryption scheme")
	ErrDocumentLocked        = errors.New("document is encrypted and has not been decrypted")
	ErrNotEncrypted          = errors.New("document is not encrypted")
	ErrForeignPage           = errors.New("page belongs to a different library or source document")
	ErrEmptyOutput           = errors.New("output document has no pages")
	ErrWrongPassword         = errors.New("wrong or missing password")
	ErrPageCountMismatch     = errors.New("output page count does not match source")
)
