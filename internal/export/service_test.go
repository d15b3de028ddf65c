package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
)

type stubGetter struct {
	d *delivery.Delivery
}

func (s *stubGetter) Get(ctx context.Context, milestoneID uuid.UUID) (*delivery.Delivery, error) {
	return s.d, nil
}

func TestService_Export(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/spec":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename=\"final spec.pdf\"")
			w.Write([]byte("fake pdf content"))
		case "/files/logo":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("fake png content"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	tmpDir, err := os.MkdirTemp("", "export_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	d := &delivery.Delivery{
		ID:          uuid.New(),
		MilestoneID: uuid.New(),
		Status:      delivery.StatusSubmitted,
		Files: []delivery.File{
			{ID: uuid.New(), Name: "spec.pdf", Version: 1, URL: ts.URL + "/files/spec"},
			{ID: uuid.New(), Name: "logo", Version: 2, URL: ts.URL + "/files/logo"},
			{ID: uuid.New(), Name: "notes.txt", Version: 1}, // No URL, metadata only
		},
	}

	service := NewService(&stubGetter{d: d}, "test-token")

	got, items, err := service.Export(context.Background(), d.MilestoneID, tmpDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got != d {
		t.Errorf("expected the loaded delivery back")
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	// File 1: server-advertised filename wins, spaces replaced.
	if filepath.Base(items[0].FilePath) != "final_spec.pdf" {
		t.Errorf("expected final_spec.pdf, got %s", filepath.Base(items[0].FilePath))
	}

	content, _ := os.ReadFile(items[0].FilePath)
	if string(content) != "fake pdf content" {
		t.Errorf("file content mismatch")
	}

	// File 2: generated name with version tag and extension from Content-Type.
	if filepath.Base(items[1].FilePath) != "logo_v2.png" {
		t.Errorf("expected logo_v2.png, got %s", filepath.Base(items[1].FilePath))
	}

	// File 3: no URL, nothing downloaded.
	if items[2].FilePath != "" {
		t.Errorf("expected empty file path, got %s", items[2].FilePath)
	}
}

func TestService_GenerateSummary(t *testing.T) {
	s := &Service{}

	d := &delivery.Delivery{
		Notes: "Final round of the homepage design.",
		Links: []delivery.ExternalLink{
			{Title: "Mockups", URL: "https://figma.com/file/abc", Type: delivery.LinkFigma},
		},
	}

	items := []Item{
		{File: delivery.File{Name: "spec.pdf", Version: 2}, FilePath: "/tmp/spec_v2.pdf"},
		{File: delivery.File{Name: "notes.txt", Version: 1}},
	}

	body := s.GenerateSummary(d, items)

	expectedSubstrings := []string{
		"Final round of the homepage design.",
		"* Mockups | figma | https://figma.com/file/abc",
		"* spec.pdf (v2) | spec_v2.pdf",
		"* notes.txt (v1) | not downloaded",
	}

	for _, sub := range expectedSubstrings {
		if !strings.Contains(body, sub) {
			t.Errorf("expected body to contain %q", sub)
		}
	}
}
