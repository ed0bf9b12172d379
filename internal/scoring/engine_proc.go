package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// ProcEngine runs the scoring script as a subprocess. The input travels as a
// single JSON argument and the breakdown comes back as JSON on stdout.
type ProcEngine struct {
	Command string
}

// NewProcEngine constructs a ProcEngine from a command line, e.g.
// "python3 scripts/ats_score.py".
func NewProcEngine(command string) *ProcEngine {
	return &ProcEngine{Command: strings.TrimSpace(command)}
}

type procInput struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// Score executes the configured command and parses its stdout.
func (e *ProcEngine) Score(ctx context.Context, resumeText, jobDescription string) (Breakdown, error) {
	parts := strings.Fields(e.Command)
	if len(parts) == 0 {
		return Breakdown{}, fmt.Errorf("%w: scorer command not configured", ErrUpstream)
	}

	payload, err := json.Marshal(procInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return Breakdown{}, fmt.Errorf("marshal scorer input: %w", err)
	}

	args := append(parts[1:], string(payload))
	cmd := exec.CommandContext(ctx, parts[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Breakdown{}, fmt.Errorf("%w: run %s: %v: %s", ErrUpstream, parts[0], err, strings.TrimSpace(stderr.String()))
	}

	breakdown, err := parseOutput(stdout.Bytes())
	if err != nil {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return breakdown, nil
}

// parseOutput accepts either a bare JSON document or JSON on the last
// non-empty stdout line, since scripts tend to print progress first.
func parseOutput(out []byte) (Breakdown, error) {
	var breakdown Breakdown
	if err := json.Unmarshal(bytes.TrimSpace(out), &breakdown); err == nil {
		return breakdown, nil
	}

	lines := strings.Split(string(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if err := json.Unmarshal([]byte(line), &breakdown); err == nil {
			return breakdown, nil
		}
	}
	return Breakdown{}, fmt.Errorf("no JSON breakdown on stdout")
}

var _ Engine = (*ProcEngine)(nil)
