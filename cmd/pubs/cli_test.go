package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	pubsBinary     string
	pubsBinaryOnce sync.Once
	pubsBinaryErr  error
)

// getPubsBinary builds the pubs binary once and returns its path.
func getPubsBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping CLI build in short mode")
	}
	pubsBinaryOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "pubs-test-*")
		if err != nil {
			pubsBinaryErr = err
			return
		}
		pubsBinary = filepath.Join(tmpDir, "pubs")

		cmd := exec.Command("go", "build", "-o", pubsBinary, ".")
		if output, err := cmd.CombinedOutput(); err != nil {
			pubsBinaryErr = &buildError{output: string(output), err: err}
		}
	})
	if pubsBinaryErr != nil {
		t.Fatalf("failed to build pubs: %v", pubsBinaryErr)
	}
	return pubsBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

const siteBib = `@article{Ablove2023,
  author = {Ablove, Anna and Doe, Jane},
  title = {Older Work},
  journal = {Journal of Tests},
  year = {2023},
  doi = {10.1000/xyz123}
}

@inproceedings{Ablove2025,
  author = {Doe, Jane and Ablove, Anna},
  title = {Newer Work},
  booktitle = {Proceedings of Testing},
  year = {2025},
  pdf = {papers/missing.pdf},
  talk = {talks/ablove25.mp4}
}
`

// setupSite creates a site directory with pubs.yml and a bibliography.
func setupSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "public"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "public", "publications.bib"), []byte(siteBib), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := "source: public/publications.bib\nself_names: [Anna Ablove]\n"
	if err := os.WriteFile(filepath.Join(dir, "pubs.yml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// runPubs runs the binary in dir and returns stdout and the exit code.
func runPubs(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(getPubsBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PUBS_SOURCE=", "PUBS_SITE_ROOT=", "PUBS_LOG_LEVEL=")
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("running pubs: %v", err)
	}
	return string(out), 0
}

func TestCLI_List(t *testing.T) {
	dir := setupSite(t)
	out, code := runPubs(t, dir, "list")
	if code != ExitSuccess {
		t.Fatalf("list exit code = %d, output: %s", code, out)
	}

	var pubs []struct {
		ID      string `json:"id"`
		Year    int    `json:"year"`
		Authors []struct {
			Name string `json:"name"`
			Self bool   `json:"self"`
		} `json:"authors"`
		Links []struct {
			Label string `json:"label"`
			URL   string `json:"url"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(out), &pubs); err != nil {
		t.Fatalf("decoding list output: %v\n%s", err, out)
	}
	if len(pubs) != 2 || pubs[0].ID != "Ablove2025" || pubs[1].ID != "Ablove2023" {
		t.Fatalf("list = %+v", pubs)
	}
	if !pubs[0].Authors[1].Self || pubs[0].Authors[0].Self {
		t.Errorf("self flags = %+v", pubs[0].Authors)
	}
	if len(pubs[0].Links) != 2 || pubs[0].Links[0].Label != "PDF" || pubs[0].Links[1].Label != "Talk" {
		t.Errorf("Ablove2025 links = %+v", pubs[0].Links)
	}
	if len(pubs[1].Links) != 1 || pubs[1].Links[0].URL != "https://doi.org/10.1000/xyz123" {
		t.Errorf("Ablove2023 links = %+v", pubs[1].Links)
	}
}

func TestCLI_Bibtex(t *testing.T) {
	dir := setupSite(t)
	out, code := runPubs(t, dir, "bibtex", "Ablove2025", "--human")
	if code != ExitSuccess {
		t.Fatalf("bibtex exit code = %d", code)
	}
	if strings.Contains(out, "pdf =") || strings.Contains(out, "talk =") {
		t.Errorf("bibtex output not redacted:\n%s", out)
	}
	if !strings.Contains(out, "title = {Newer Work},") {
		t.Errorf("bibtex output missing title:\n%s", out)
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := setupSite(t)

	if _, code := runPubs(t, dir, "get", "Nope"); code != ExitError {
		t.Errorf("get unknown key exit code = %d, want %d", code, ExitError)
	}

	out, code := runPubs(t, dir, "list", "--source", filepath.Join(dir, "missing.bib"))
	if code != ExitDataError {
		t.Errorf("missing source exit code = %d, want %d", code, ExitDataError)
	}
	var resp ErrorResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil || !strings.HasPrefix(resp.Error, "failed to load publications") {
		t.Errorf("error response = %q", out)
	}
}

func TestCLI_CheckReportsMissingFiles(t *testing.T) {
	dir := setupSite(t)
	out, code := runPubs(t, dir, "check", "--keys", "Ablove2025")
	if code != ExitLinkProblems {
		t.Fatalf("check exit code = %d, want %d\n%s", code, ExitLinkProblems, out)
	}

	var resp CheckResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding check output: %v", err)
	}
	if resp.Checked != 2 || len(resp.Problems) != 2 {
		t.Errorf("check = %+v", resp)
	}
}
