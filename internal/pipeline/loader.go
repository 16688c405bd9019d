package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Series      []model.Series
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	Errors      []error // one per failed file, already prefixed with its path
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all series files in the data directory.
// It uses a bounded worker pool for parallel parsing.
func Load(dataDir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	for _, pr := range parseAll(files, 0, len(files), progressFn) {
		result.collect(pr)
	}
	return result, nil
}

func (r *LoadResult) collect(pr source.ParseResult) bool {
	if pr.Err != nil {
		r.FileErrors++
		r.Errors = append(r.Errors, pr.Err)
		return false
	}
	r.ParsedFiles++
	r.Series = append(r.Series, pr.Series)
	return true
}

// parseAll parses files in parallel and returns results in input order.
// Progress is reported as offset+n out of total.
func parseAll(files []source.DiscoveredFile, offset, total int, progressFn ProgressFunc) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(offset+int(n), total)
				}
			}
		}()
	}

	wg.Wait()
	return results
}
