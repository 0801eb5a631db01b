package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pdf-resaver/internal/domain"

	"github.com/google/uuid"
)

const (
	multipartMemory = 32 << 20
	formOverhead    = 1 << 20 // boundaries, part headers and form fields
	maxMergeFiles   = 20
)

// PDFHandler handles HTTP requests for PDF operations
type PDFHandler struct {
	resaveService domain.ResaveService
	mergeService  domain.MergeService
	storage       domain.StorageService
	workDir       string
	maxFileSize   int64
	logger        domain.Logger
}

// NewPDFHandler creates a new PDF handler instance. storage may be nil.
func NewPDFHandler(
	resaveService domain.ResaveService,
	mergeService domain.MergeService,
	storage domain.StorageService,
	workDir string,
	maxFileSize int64,
	logger domain.Logger,
) *PDFHandler {
	// Error messages are scrubbed of work paths, which needs them absolute
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	return &PDFHandler{
		resaveService: resaveService,
		mergeService:  mergeService,
		storage:       storage,
		workDir:       workDir,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

// Resave handles POST /pdf/resave
func (h *PDFHandler) Resave(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, 1) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	name, status, err := h.checkUpload(header)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	src, err := h.saveUpload(file)
	if err != nil {
		h.logger.Error("Failed to save upload", err, "filename", name)
		writeError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}
	defer h.remove(src)

	target := h.workPath("resaved")
	defer h.remove(target)

	result, err := h.resaveService.ResaveFile(src, target)
	if err != nil {
		h.logger.Warn("Resave failed", "filename", name, "error", err)
		writeAppError(w, err, src, name, target, name, h.workDir+string(filepath.Separator), "")
		return
	}

	h.logger.Info("Resave request completed", "filename", name, "pages", result.PageCount, "encrypted", result.Encrypted)
	h.respond(w, r, target, name)
}

// Merge handles POST /pdf/merge
func (h *PDFHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r, maxMergeFiles) {
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) < 2 {
		writeError(w, http.StatusBadRequest, "At least two PDF files are required")
		return
	}
	if len(headers) > maxMergeFiles {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Too many files. Maximum is %d.", maxMergeFiles))
		return
	}

	inputs := make([]string, 0, len(headers))
	defer func() {
		for _, in := range inputs {
			h.remove(in)
		}
	}()
	// old/new pairs mapping work paths back to uploaded names
	names := make([]string, 0, 2*len(headers)+4)
	for _, header := range headers {
		name, status, err := h.checkUpload(header)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
		path, err := h.saveHeader(header)
		if err != nil {
			h.logger.Error("Failed to save upload", err, "filename", header.Filename)
			writeError(w, http.StatusInternalServerError, "Failed to save upload")
			return
		}
		inputs = append(inputs, path)
		names = append(names, path, name)
	}

	target := h.workPath("merged")
	defer h.remove(target)

	if err := h.mergeService.Merge(r.Context(), inputs, target); err != nil {
		h.logger.Warn("Merge failed", "files", len(inputs), "error", err)
		names = append(names, target, "merged.pdf", h.workDir+string(filepath.Separator), "")
		writeAppError(w, err, names...)
		return
	}

	h.respond(w, r, target, "merged.pdf")
}

// parseForm caps the body at files uploads of maxFileSize and parses it.
// On failure it writes the error response and returns false.
func (h *PDFHandler) parseForm(w http.ResponseWriter, r *http.Request, files int64) bool {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*files+formOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

// checkUpload validates the name and size of an uploaded file and returns its
// sanitized name. On failure it also returns the HTTP status to answer with.
func (h *PDFHandler) checkUpload(header *multipart.FileHeader) (string, int, error) {
	// Strip any path components
	name := strings.TrimSpace(filepath.Base(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document.pdf"
	}
	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return "", http.StatusBadRequest, errors.New("Unsupported file type. Only PDF (.pdf) files are accepted.")
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		return "", http.StatusRequestEntityTooLarge, errors.New(h.tooLargeMessage())
	}
	return name, 0, nil
}

func (h *PDFHandler) tooLargeMessage() string {
	return fmt.Sprintf("File too large. Maximum file size is %d MB.", h.maxFileSize>>20)
}

func (h *PDFHandler) saveHeader(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return h.saveUpload(file)
}

func (h *PDFHandler) saveUpload(file io.Reader) (string, error) {
	if err := os.MkdirAll(h.workDir, 0o755); err != nil {
		return "", err
	}
	path := h.workPath("upload")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	return path, dst.Close()
}

// workPath returns <workDir>/<kind>-<uuid>.pdf
func (h *PDFHandler) workPath(kind string) string {
	return filepath.Join(h.workDir, fmt.Sprintf("%s-%s.pdf", kind, uuid.NewString()))
}

func (h *PDFHandler) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("Failed to remove temp file", "path", path, "error", err)
	}
}

// respond streams the finished PDF, or uploads it to storage when store=true
func (h *PDFHandler) respond(w http.ResponseWriter, r *http.Request, path, name string) {
	f, err := os.Open(path)
	if err != nil {
		h.logger.Error("Failed to open result", err, "path", path)
		writeError(w, http.StatusInternalServerError, "Failed to read result")
		return
	}
	defer f.Close()

	if r.FormValue("store") != "true" {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, f); err != nil {
			h.logger.Warn("Failed to stream result", "error", err)
		}
		return
	}

	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	objectPath := uuid.NewString() + "/" + name
	if user, ok := GetUserFromContext(r); ok {
		objectPath = user.ID + "/" + objectPath
	}
	token, _ := GetTokenFromContext(r)
	if err := h.storage.Upload(r.Context(), objectPath, token, f); err != nil {
		h.logger.Error("Failed to upload result", err, "path", objectPath)
		writeError(w, http.StatusBadGateway, "Failed to store result")
		return
	}

	h.logger.Info("Stored PDF", "path", objectPath)
	writeJSON(w, http.StatusCreated, map[string]string{"path": objectPath})
}
