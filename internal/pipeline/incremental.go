package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/theirongolddev/wealthview/internal/source"
	"github.com/theirongolddev/wealthview/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Pruned    int
}

// LoadWithCache discovers, diffs against cache, parses only changed files,
// and returns the combined result set. Cache entries for files that no longer
// exist are pruned.
func LoadWithCache(dataDir string, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	unchanged := make(map[string]struct{})
	present := make(map[string]struct{}, len(files))

	for _, f := range files {
		present[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged[f.Path] = struct{}{}
		} else {
			toReparse = append(toReparse, f)
		}
	}

	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if err := cache.DeleteFile(path); err == nil {
			result.Pruned++
		}
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadAllSeries()
		if err != nil {
			return nil, fmt.Errorf("loading cached series: %w", err)
		}
		for _, s := range cached {
			if _, ok := unchanged[s.Source]; ok {
				result.Series = append(result.Series, s)
				result.ParsedFiles++
			}
		}
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, result.CacheHits, result.TotalFiles, progressFn)
		for i, pr := range results {
			if !result.collect(pr) {
				// A file that no longer parses must not be served from cache.
				_ = cache.DeleteFile(toReparse[i].Path)
				continue
			}
			info, err := os.Stat(toReparse[i].Path)
			if err == nil {
				_ = cache.SaveSeries(pr.Series, info.ModTime().UnixNano(), info.Size())
			}
		}
	}

	// Keep the same ordering as a cold load.
	sort.Slice(result.Series, func(i, j int) bool {
		return result.Series[i].Source < result.Series[j].Source
	})

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "wealthview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "wealthview")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "series.db")
}
