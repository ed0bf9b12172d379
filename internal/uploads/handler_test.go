package uploads_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/bootstrap"
	"ats-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		ScorerMode:      "http",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func TestTicketThenDirectUpload(t *testing.T) {
	router := buildRouter(t)

	content := []byte("%PDF-1.4 fake resume body")
	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	body, _ := json.Marshal(map[string]any{
		"contentType": "application/pdf",
		"byteSize":    len(content),
		"checksum":    checksum,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/ticket", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var ticket struct {
		URL              string `json:"url"`
		FileKey          string `json:"fileKey"`
		ExpiresInSeconds int64  `json:"expiresInSeconds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		t.Fatalf("decode ticket: %v", err)
	}
	if ticket.ExpiresInSeconds != 60 {
		t.Fatalf("expected 60s expiry, got %d", ticket.ExpiresInSeconds)
	}
	if !strings.HasPrefix(ticket.FileKey, checksum[:16]+"-") {
		t.Fatalf("expected content-addressed key, got %s", ticket.FileKey)
	}
	if !strings.Contains(ticket.URL, "/api/v1/uploads/direct/"+ticket.FileKey) {
		t.Fatalf("expected direct upload url, got %s", ticket.URL)
	}

	reqPut := httptest.NewRequest(http.MethodPut, "/api/v1/uploads/direct/"+ticket.FileKey, bytes.NewReader(content))
	reqPut.Header.Set("Content-Type", "application/pdf")
	addGuestHeader(reqPut)
	respPut := httptest.NewRecorder()
	router.ServeHTTP(respPut, reqPut)

	if respPut.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respPut.Code, respPut.Body.String())
	}
}

func TestTicketURLUsesPublicBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		PublicBaseURL:   "http://localhost:8080",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		ScorerMode:      "http",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	content := []byte("%PDF-1.4 fake resume body")
	sum := sha256.Sum256(content)
	body, _ := json.Marshal(map[string]any{
		"contentType": "application/pdf",
		"byteSize":    len(content),
		"checksum":    hex.EncodeToString(sum[:]),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/ticket", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var ticket struct {
		URL     string `json:"url"`
		FileKey string `json:"fileKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		t.Fatalf("decode ticket: %v", err)
	}
	want := "http://localhost:8080/api/v1/uploads/direct/" + ticket.FileKey
	if ticket.URL != want {
		t.Fatalf("expected absolute upload url %s, got %s", want, ticket.URL)
	}
}

func TestMultipartUploadFallback(t *testing.T) {
	router := buildRouter(t)

	content := []byte("%PDF-1.4 fake resume body")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var uploaded struct {
		FileKey   string `json:"fileKey"`
		SizeBytes int64  `json:"sizeBytes"`
		MimeType  string `json:"mimeType"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.SizeBytes != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), uploaded.SizeBytes)
	}
	if uploaded.MimeType == "" {
		t.Fatalf("expected a sniffed mime type")
	}
	// Key is namespaced under the caller's hashed directory and keeps the
	// sanitized file name.
	if !strings.Contains(uploaded.FileKey, "/") || !strings.HasSuffix(uploaded.FileKey, "_resume.pdf") {
		t.Fatalf("unexpected file key %s", uploaded.FileKey)
	}

	// The stored object is usable like any other key.
	createBody, _ := json.Marshal(map[string]any{"fileKey": uploaded.FileKey})
	reqCreate := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", bytes.NewReader(createBody))
	reqCreate.Header.Set("Content-Type", "application/json")
	addGuestHeader(reqCreate)
	respCreate := httptest.NewRecorder()
	router.ServeHTTP(respCreate, reqCreate)
	if respCreate.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", respCreate.Code, respCreate.Body.String())
	}
}

func TestTicketValidation(t *testing.T) {
	router := buildRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{name: "bad content type", body: map[string]any{"contentType": "image/png", "byteSize": 10, "checksum": strings.Repeat("ab", 32)}},
		{name: "zero size", body: map[string]any{"contentType": "application/pdf", "byteSize": 0, "checksum": strings.Repeat("ab", 32)}},
		{name: "oversized", body: map[string]any{"contentType": "application/pdf", "byteSize": 11 << 20, "checksum": strings.Repeat("ab", 32)}},
		{name: "bad checksum", body: map[string]any{"contentType": "application/pdf", "byteSize": 10, "checksum": "nothex"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/ticket", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			addGuestHeader(req)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}
