package jobs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/bootstrap"
	"ats-backend/internal/shared/config"
)

func buildRouter(t *testing.T, adzunaURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		ScorerMode:      "http",
		AdzunaBaseURL:   adzunaURL,
		AdzunaCountry:   "in",
		AdzunaAppID:     "app-id",
		AdzunaAPIKey:    "app-key",
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

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJobsSearchValidation(t *testing.T) {
	router := buildRouter(t, "http://localhost:0")

	resp := postJSON(t, router, "/api/v1/jobs/search", map[string]any{"title": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestJobsSearchFlow(t *testing.T) {
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [{
			"id": "9",
			"title": "Go Developer",
			"company": {"display_name": "Acme"},
			"location": {"display_name": "Remote"},
			"redirect_url": "https://example.com/9"
		}]}`))
	}))
	defer adzuna.Close()

	router := buildRouter(t, adzuna.URL)

	resp := postJSON(t, router, "/api/v1/jobs/search", map[string]any{"title": "Go Developer"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Jobs []struct {
			Company  string `json:"company"`
			Location string `json:"location"`
		} `json:"jobs"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 1 || len(body.Jobs) != 1 {
		t.Fatalf("expected one listing, got %+v", body)
	}
	if body.Jobs[0].Company != "Acme" {
		t.Fatalf("expected company Acme, got %s", body.Jobs[0].Company)
	}
}

func TestJobsSaveAndList(t *testing.T) {
	router := buildRouter(t, "http://localhost:0")

	resp := postJSON(t, router, "/api/v1/jobs", map[string]any{
		"redirectUrl": "https://example.com/42",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var saved struct {
		Company     string `json:"company"`
		Title       string `json:"title"`
		Location    string `json:"location"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode saved job: %v", err)
	}
	if saved.Company != "Unknown Company" || saved.Title != "Unknown Title" || saved.Location != "Unknown Location" {
		t.Fatalf("expected placeholder fields, got %+v", saved)
	}
	if saved.RedirectURL != "https://example.com/42" {
		t.Fatalf("expected redirect url to round-trip, got %s", saved.RedirectURL)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respList.Code, respList.Body.String())
	}

	var list struct {
		Jobs []struct {
			Company string `json:"company"`
		} `json:"jobs"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Jobs) != 1 {
		t.Fatalf("expected one saved job, got %d", len(list.Jobs))
	}
}
