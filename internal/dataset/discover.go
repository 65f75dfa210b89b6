package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Discover scans a data directory for <key>.csv files whose basename matches a
// registered KPI key. It returns key -> absolute file path.
func Discover(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	found := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), ".csv")
		if _, ok := Schemas[key]; !ok {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entry.Name(), err)
		}
		found[key] = path
	}

	return found, nil
}

// LoadAll reads every discovered KPI file in parallel. Files are independent,
// so one unreadable file fails the whole load rather than returning a partial
// map.
func LoadAll(ctx context.Context, dir string) (map[string][]Row, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	loaded := make(map[string][]Row, len(files))

	g, _ := errgroup.WithContext(ctx)
	for key, path := range files {
		g.Go(func() error {
			rows, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", key, err)
			}
			mu.Lock()
			loaded[key] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}
