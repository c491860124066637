package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tritender/tendercore/internal/config"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		Port:           "0",
		APIKey:         testAPIKey,
		MaxUploadBytes: 1 << 20,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(log, cfg)
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func authedRequest(method, target, contentType string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tools/detect_document", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing auth: got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/detect_document", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad key: got %d, want 401", rec.Code)
	}
}

func TestDetectDocument(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartUpload(t, "pricing_schedule.csv", "Description,Qty\n", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/detect_document", ct, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["label"] != "pricing_schedule" {
		t.Errorf("label: got %q", resp["label"])
	}
}

func TestDetectDocument_FileRequired(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "x")
	w.Close()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/detect_document", w.FormDataContentType(), &buf))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestExtractMetadata(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartUpload(t, "notice.txt", "Closing Date: 2024-05-01\n", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/extract_tender_metadata", ct, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		FileName    string  `json:"file_name"`
		ClosingDate *string `json:"closing_date"`
		Title       *string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FileName != "notice.txt" {
		t.Errorf("file_name: got %q", resp.FileName)
	}
	if resp.ClosingDate == nil || *resp.ClosingDate != "2024-05-01" {
		t.Errorf("closing_date: got %v", resp.ClosingDate)
	}
	if resp.Title != nil {
		t.Errorf("title should be null, got %q", *resp.Title)
	}
}

func TestPricingEngine(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartUpload(t, "boq.csv", "Description,Qty,Rate,Total\nWidget,2,10.0,20.0\n", map[string]string{
		"default_mark_up": "0.1",
		"rounding":        "2",
		"currency":        "USD",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/pricing_engine", ct, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK                   bool    `json:"ok"`
		Currency             string  `json:"currency"`
		GrandTotal           float64 `json:"grand_total"`
		GrandTotalWithMarkUp float64 `json:"grand_total_with_mark_up"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Fatal("expected ok result")
	}
	if resp.Currency != "USD" {
		t.Errorf("currency: got %q", resp.Currency)
	}
	if resp.GrandTotal != 20.0 {
		t.Errorf("grand_total: got %v", resp.GrandTotal)
	}
	if resp.GrandTotalWithMarkUp != 22.0 {
		t.Errorf("grand_total_with_mark_up: got %v", resp.GrandTotalWithMarkUp)
	}
}

func TestPricingEngine_RoundingZero(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartUpload(t, "boq.csv", "Description,Qty,Rate\nWire,3,0.333\n", map[string]string{
		"rounding": "0",
	})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/pricing_engine", ct, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK         bool    `json:"ok"`
		Rounding   int     `json:"rounding"`
		GrandTotal float64 `json:"grand_total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Fatal("expected ok result")
	}
	if resp.Rounding != 0 {
		t.Errorf("rounding: got %d, want 0", resp.Rounding)
	}
	if resp.GrandTotal != 1.0 {
		t.Errorf("grand_total: got %v", resp.GrandTotal)
	}
}

func TestDetectBrand(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartUpload(t, "acme_corp.txt", "hello", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/detect_brand", ct, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		BrandName    string   `json:"brand_name"`
		PrimaryColor string   `json:"primary_color"`
		Palette      []string `json:"palette"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BrandName != "Acme Corp" {
		t.Errorf("brand_name: got %q", resp.BrandName)
	}
	if resp.PrimaryColor != "#003366" {
		t.Errorf("primary_color: got %q", resp.PrimaryColor)
	}
	if len(resp.Palette) != 3 {
		t.Errorf("palette: got %v", resp.Palette)
	}
}

func TestCompileOutput(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"documents": ["<p>Hi</p>", {"title": "Cover", "html": "<p>dear</p>"}]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/compile_output", "application/json", strings.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: got %q", ct)
	}
	out := rec.Body.String()
	if !strings.Contains(out, "<p>Hi</p>") || !strings.Contains(out, "Cover") {
		t.Errorf("compiled output missing fragments: %s", out)
	}
	if !strings.Contains(out, "#003366") {
		t.Error("default primary color missing")
	}
}

func TestCompileOutput_BadBody(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tools/compile_output", "application/json", strings.NewReader("{nope")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
