// Package blob is the boundary to object storage for uploaded images
// (payment slips, pre-generated QR codes). The core only ever stores
// bytes and hands back a public URL, or fetches bytes for embedding.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Store interface {
	// Put stores the bytes and returns a public URL for them.
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	// Fetch resolves a public URL back to bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SlipPath is the storage path for a payment slip, unique per upload so a
// re-upload never clobbers the previous proof.
func SlipPath(attendeeID, ext string, now time.Time) string {
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("payments/%s-%d.%s", attendeeID, now.UnixMilli(), strings.TrimPrefix(ext, "."))
}

// FSStore keeps blobs on the local filesystem and serves them under a
// public base URL (the static file route exposes the directory).
type FSStore struct {
	Dir     string
	BaseURL string
	// Client overrides the HTTP client used for remote fetches; nil
	// means http.DefaultClient.
	Client *http.Client
}

func (s *FSStore) Put(_ context.Context, path string, data []byte, _ string) (string, error) {
	full := filepath.Join(s.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("FSStore.Put: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("FSStore.Put: %w", err)
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + path, nil
}

func (s *FSStore) Fetch(ctx context.Context, url string) ([]byte, error) {
	base := strings.TrimSuffix(s.BaseURL, "/") + "/"
	if strings.HasPrefix(url, base) {
		data, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(strings.TrimPrefix(url, base))))
		if err != nil {
			return nil, fmt.Errorf("FSStore.Fetch: %w", err)
		}
		return data, nil
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("FSStore.Fetch: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FSStore.Fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FSStore.Fetch: unexpected status %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("FSStore.Fetch: %w", err)
	}
	return data, nil
}
