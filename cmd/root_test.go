package cmd

import (
	"testing"

	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/pipeline"
)

func TestCacheStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		cr     pipeline.CachedLoadResult
		cached int
		want   string
	}{
		{
			name:   "all from cache",
			cr:     pipeline.CachedLoadResult{LoadResult: pipeline.LoadResult{Series: make([]model.Series, 3)}, CacheHits: 3},
			cached: 3,
			want:   "Loaded 3 series from cache (3 in cache)",
		},
		{
			name:   "some reparsed",
			cr:     pipeline.CachedLoadResult{CacheHits: 2, Reparsed: 1},
			cached: 3,
			want:   "2 cached + 1 reparsed (3 in cache)",
		},
		{
			name:   "count unknown",
			cr:     pipeline.CachedLoadResult{CacheHits: 2, Reparsed: 1},
			cached: -1,
			want:   "2 cached + 1 reparsed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheStatsLine(&tt.cr, tt.cached); got != tt.want {
				t.Errorf("cacheStatsLine = %q, want %q", got, tt.want)
			}
		})
	}
}
