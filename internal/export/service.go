// Package export bundles a milestone's delivery into local files so the
// freelancer can hand the package to the client outside the platform.
package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
)

// Item represents a single delivery file with its downloaded local path.
type Item struct {
	File     delivery.File
	FilePath string
}

// DeliveryGetter loads the delivery for a milestone. Satisfied by
// delivery.Service.
type DeliveryGetter interface {
	Get(ctx context.Context, milestoneID uuid.UUID) (*delivery.Delivery, error)
}

// Service downloads delivery files from the storage backend.
type Service struct {
	deliveries DeliveryGetter
	client     *http.Client
	apiToken   string
}

func NewService(deliveries DeliveryGetter, apiToken string) *Service {
	return &Service{
		deliveries: deliveries,
		client:     &http.Client{Timeout: 30 * time.Second},
		apiToken:   apiToken,
	}
}

// Export downloads every file of the milestone's delivery to the output
// directory. Files without a URL are listed with an empty path.
func (s *Service) Export(ctx context.Context, milestoneID uuid.UUID, outputDir string) (*delivery.Delivery, []Item, error) {
	d, err := s.deliveries.Get(ctx, milestoneID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading delivery: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(d.Files))

	for _, f := range d.Files {
		item := Item{File: f}

		if f.URL != "" {
			path, err := s.downloadFile(ctx, f, outputDir)
			if err != nil {
				return nil, nil, fmt.Errorf("downloading file %s: %w", f.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return d, items, nil
}

func (s *Service) downloadFile(ctx context.Context, f delivery.File, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.apiToken != "" {
		req.Header.Set("Authorization", "Token "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, f.URL)
	}

	filename := s.determineFilename(resp, f)
	path := filepath.Join(dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

func (s *Service) determineFilename(resp *http.Response, f delivery.File) string {
	// Prefer the filename the storage backend advertises.
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if filename, ok := params["filename"]; ok && filename != "" {
				return strings.ReplaceAll(filepath.Base(filename), " ", "_")
			}
		}
	}

	// Fallback: sanitized original name tagged with its version, so older
	// versions of the same file do not overwrite each other on disk.
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}

		return '_'
	}, f.Name)

	ext := filepath.Ext(safeName)
	base := strings.TrimSuffix(safeName, ext)

	if ext == "" {
		if exts, _ := mime.ExtensionsByType(resp.Header.Get("Content-Type")); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("%s_v%d%s", base, f.Version, ext)
}

// GenerateSummary creates a plain-text manifest of the exported delivery:
// notes, external links and the downloaded files.
func (s *Service) GenerateSummary(d *delivery.Delivery, items []Item) string {
	var sb strings.Builder

	if d.Notes != "" {
		sb.WriteString(d.Notes)
		sb.WriteString("\n\n")
	}

	for _, l := range d.Links {
		sb.WriteString(fmt.Sprintf("* %s | %s | %s\n", l.Title, l.Type, l.URL))
	}

	for _, item := range items {
		status := "not downloaded"
		if item.FilePath != "" {
			status = filepath.Base(item.FilePath)
		}

		sb.WriteString(fmt.Sprintf("* %s (v%d) | %s\n", item.File.Name, item.File.Version, status))
	}

	return sb.String()
}
