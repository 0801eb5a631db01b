package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

func TestLoad_Unencrypted(t *testing.T) {
	doc := &fakeDocument{path: "/in.pdf", pages: 2}
	loader := NewDecryptingLoader(newFakeLibrary(doc), NewMockLogger())

	got, err := loader.Load("/in.pdf")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != doc {
		t.Fatalf("expected the opened document to be returned")
	}
	if len(doc.attempts) != 0 {
		t.Fatalf("expected no decrypt attempts, got %v", doc.attempts)
	}
}

func TestLoad_DecryptPolicy(t *testing.T) {
	tests := []struct {
		name         string
		results      map[domain.PasswordKind]domain.DecryptResult
		errs         map[domain.PasswordKind]error
		wantAttempts []domain.PasswordKind
		wantType     apperrors.ErrorType // empty means success
	}{
		{
			// Empty text is the first candidate and unlocks the file
			name:         "empty text succeeds",
			results:      map[domain.PasswordKind]domain.DecryptResult{domain.PasswordText: domain.DecryptedUser},
			wantAttempts: []domain.PasswordKind{domain.PasswordText},
		},
		{
			// A type mismatch is skipped and the next representation is tried
			name:         "type mismatch skipped",
			errs:         map[domain.PasswordKind]error{domain.PasswordText: fmt.Errorf("%w: text", domain.ErrUnsupportedPassword)},
			results:      map[domain.PasswordKind]domain.DecryptResult{domain.PasswordBytes: domain.DecryptedOwner},
			wantAttempts: []domain.PasswordKind{domain.PasswordText, domain.PasswordBytes},
		},
		{
			// Only the absent value works
			name: "absent succeeds last",
			results: map[domain.PasswordKind]domain.DecryptResult{
				domain.PasswordAbsent: domain.DecryptedUser,
			},
			wantAttempts: []domain.PasswordKind{domain.PasswordText, domain.PasswordBytes, domain.PasswordAbsent},
		},
		{
			// Any result other than NotDecrypted counts as success
			name:         "unknown result counts as success",
			results:      map[domain.PasswordKind]domain.DecryptResult{domain.PasswordText: domain.DecryptResult(7)},
			wantAttempts: []domain.PasswordKind{domain.PasswordText},
		},
		{
			// Non-empty user password: every candidate is rejected
			name:         "all rejected",
			wantAttempts: []domain.PasswordKind{domain.PasswordText, domain.PasswordBytes, domain.PasswordAbsent},
			wantType:     apperrors.ErrorTypeUndecryptable,
		},
		{
			// Every representation mismatches: still undecryptable
			name: "all mismatched",
			errs: map[domain.PasswordKind]error{
				domain.PasswordText:   domain.ErrUnsupportedPassword,
				domain.PasswordBytes:  domain.ErrUnsupportedPassword,
				domain.PasswordAbsent: domain.ErrUnsupportedPassword,
			},
			wantAttempts: []domain.PasswordKind{domain.PasswordText, domain.PasswordBytes, domain.PasswordAbsent},
			wantType:     apperrors.ErrorTypeUndecryptable,
		},
		{
			// Other library errors abort immediately
			name:         "library error aborts",
			errs:         map[domain.PasswordKind]error{domain.PasswordText: errors.New("corrupt encrypt dict")},
			results:      map[domain.PasswordKind]domain.DecryptResult{domain.PasswordBytes: domain.DecryptedUser},
			wantAttempts: []domain.PasswordKind{domain.PasswordText},
			wantType:     apperrors.ErrorTypeLibrary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &fakeDocument{path: "/locked.pdf", encrypted: true, pages: 1, results: tt.results, errs: tt.errs}
			loader := NewDecryptingLoader(newFakeLibrary(doc), NewMockLogger())

			got, err := loader.Load("/locked.pdf")

			if !reflect.DeepEqual(doc.attempts, tt.wantAttempts) {
				t.Fatalf("expected attempts %v, got %v", tt.wantAttempts, doc.attempts)
			}
			if tt.wantType == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if got != doc {
					t.Fatalf("expected document to be returned")
				}
				return
			}
			if !apperrors.IsType(err, tt.wantType) {
				t.Fatalf("expected %s error, got %v", tt.wantType, err)
			}
		})
	}
}

func TestLoad_UndecryptableMessageNamesPath(t *testing.T) {
	doc := &fakeDocument{path: "/scans/payslip.pdf", encrypted: true}
	loader := NewDecryptingLoader(newFakeLibrary(doc), NewMockLogger())

	_, err := loader.Load("/scans/payslip.pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "Unable to decrypt '/scans/payslip.pdf'. Provide a password or re-export the file."
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestLoad_MissingDependency(t *testing.T) {
	lib := newFakeLibrary()
	lib.openErr = fmt.Errorf("%w: unsupported encryption filter", domain.ErrEncryptionUnsupported)
	loader := NewDecryptingLoader(lib, NewMockLogger())

	_, err := loader.Load("/aes.pdf")
	if !apperrors.IsType(err, apperrors.ErrorTypeMissingDependency) {
		t.Fatalf("expected missing dependency error, got %v", err)
	}
	if !strings.Contains(err.Error(), "/aes.pdf") {
		t.Fatalf("expected message to name the path, got %q", err.Error())
	}

	_, err = NewDecryptingLoader(nil, NewMockLogger()).Load("/a.pdf")
	if !apperrors.IsType(err, apperrors.ErrorTypeMissingDependency) {
		t.Fatalf("expected missing dependency error without a library, got %v", err)
	}
}

func TestLoad_OpenFailure(t *testing.T) {
	lib := newFakeLibrary()
	lib.openErr = errors.New("pdfcpu: corrupt xref")
	loader := NewDecryptingLoader(lib, NewMockLogger())

	_, err := loader.Load("/broken.pdf")
	if !apperrors.IsType(err, apperrors.ErrorTypeLibrary) {
		t.Fatalf("expected library error, got %v", err)
	}
	if strings.Contains(err.Error(), "\n") {
		t.Fatalf("expected single-line message, got %q", err.Error())
	}
}
