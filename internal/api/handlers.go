package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tritender/tendercore/internal/brand"
	"github.com/tritender/tendercore/internal/classify"
	"github.com/tritender/tendercore/internal/compile"
	"github.com/tritender/tendercore/internal/pricing"
	"github.com/tritender/tendercore/internal/textract"
)

func (s *Server) handleDetectDocument(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	respondJSON(w, http.StatusOK, map[string]any{
		"label": classify.Classify(path),
	})
}

func (s *Server) handleExtractMetadata(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	respondJSON(w, http.StatusOK, textract.Extract(path))
}

func (s *Server) handlePricingEngine(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	var opts pricing.Options
	opts.Currency = r.FormValue("currency")
	if v := r.FormValue("default_mark_up"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.DefaultMarkUp = f
		}
	}
	if v := r.FormValue("rounding"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Rounding = &n
		}
	}

	respondJSON(w, http.StatusOK, pricing.Parse(path, opts))
}

func (s *Server) handleDetectBrand(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := s.spoolUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	respondJSON(w, http.StatusOK, brand.Infer(path))
}

type compileRequest struct {
	Documents []any           `json:"documents"`
	Brand     *brand.Record   `json:"brand"`
	Pricing   *pricing.Result `json:"pricing"`
}

func (s *Server) handleCompileOutput(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	html := compile.Compile(compile.Normalize(req.Documents), req.Brand, req.Pricing)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

// spoolUpload writes the multipart "file" field to a temp file that keeps
// the original (sanitized) filename, so extension-driven components behave
// the same as on a caller-side path. On failure it writes the error response
// itself and returns ok=false.
func (s *Server) spoolUpload(w http.ResponseWriter, r *http.Request) (string, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	dir, err := os.MkdirTemp("", "tendercore-upload-*")
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return "", nil, false
	}
	cleanup := func() {
		os.RemoveAll(dir)
		r.MultipartForm.RemoveAll()
	}

	path := filepath.Join(dir, sanitizeFilename(header.Filename))
	out, err := os.Create(path)
	if err != nil {
		cleanup()
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return "", nil, false
	}

	n, err := io.Copy(out, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	out.Close()
	if err != nil {
		cleanup()
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if n > s.cfg.MaxUploadBytes {
		cleanup()
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}

	return path, cleanup, true
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
