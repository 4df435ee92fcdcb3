package export

import (
	"context"
	"log/slog"
	"sync"
)

type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Prefetch pulls each unique URL with a small fixed worker pool, purely to
// bound wall-clock time on large exports. The result map is write-once per
// key; a failed fetch simply leaves its key absent so the row or card it
// belonged to degrades instead of aborting the export.
func Prefetch(ctx context.Context, urls []string, workers int, fetch FetchFunc) map[string][]byte {
	unique := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}

	if workers < 1 {
		workers = 1
	}

	results := make(map[string][]byte, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan string)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				data, err := fetch(ctx, url)
				if err != nil {
					slog.Warn("export: image fetch failed, degrading", "url", url, "error", err)
					continue
				}
				mu.Lock()
				results[url] = data
				mu.Unlock()
			}
		}()
	}

	for _, u := range unique {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	return results
}
