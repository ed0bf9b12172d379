package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const scorePath = "/api/score_resume"

// HTTPEngine talks to the scoring service over HTTP.
type HTTPEngine struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPEngine constructs an HTTPEngine with a transport timeout.
func NewHTTPEngine(baseURL string) *HTTPEngine {
	return &HTTPEngine{
		BaseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type scoreRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// Score posts the resume and job description and decodes the breakdown.
func (e *HTTPEngine) Score(ctx context.Context, resumeText, jobDescription string) (Breakdown, error) {
	payload, err := json.Marshal(scoreRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return Breakdown{}, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+scorePath, bytes.NewReader(payload))
	if err != nil {
		return Breakdown{}, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client().Do(req)
	if err != nil {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Breakdown{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var breakdown Breakdown
	if err := json.NewDecoder(resp.Body).Decode(&breakdown); err != nil {
		return Breakdown{}, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return breakdown, nil
}

func (e *HTTPEngine) client() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return http.DefaultClient
}

var _ Engine = (*HTTPEngine)(nil)
