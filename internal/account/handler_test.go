package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/shared/storage/object/local"
)

func TestResetDeletesOwnDataOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resumeRepo := resumes.NewMemoryRepo()
	jobRepo := jobs.NewMemoryRepo()
	svc := NewService(resumeRepo, jobRepo, local.New(t.TempDir()))
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "guest:g-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	now := time.Now().UTC()
	seed := []resumes.Resume{
		{ID: "r1", OwnerID: "guest:g-1", FileKey: "k1", SubmittedAt: now},
		{ID: "r2", OwnerID: "guest:g-1", FileKey: "k2", SubmittedAt: now},
		{ID: "r3", OwnerID: "guest:g-2", FileKey: "k3", SubmittedAt: now},
	}
	for _, r := range seed {
		if err := resumeRepo.Insert(context.Background(), r); err != nil {
			t.Fatalf("insert resume: %v", err)
		}
	}
	if err := jobRepo.Insert(context.Background(), jobs.Job{ID: "j1", OwnerID: "guest:g-1", SubmittedAt: now}); err != nil {
		t.Fatalf("insert job: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account/data", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var result ResetResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.DeletedResumes != 2 || result.DeletedJobs != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	remaining, err := resumeRepo.ListByOwner(context.Background(), "guest:g-2")
	if err != nil {
		t.Fatalf("list other owner: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected other owner's data untouched, got %d", len(remaining))
	}
}
