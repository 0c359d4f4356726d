package pagearchive

import (
	"context"
	"fmt"
)

// RunFetcher serves the archived pages of an earlier run so it can be parsed
// again without touching the site.
type RunFetcher struct {
	archive *Archive
	runID   string
	keys    []string
}

func NewRunFetcher(archive *Archive, runID string) *RunFetcher {
	return &RunFetcher{archive: archive, runID: runID}
}

func (f *RunFetcher) Setup(ctx context.Context, term string, subjects []string) (int, error) {
	keys, err := f.archive.RunPages(ctx, term, f.runID)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, fmt.Errorf("no archived pages for run %s of %s", f.runID, term)
	}
	if err := checkPageRun(keys); err != nil {
		return 0, err
	}
	f.keys = keys
	return len(keys), nil
}

func (f *RunFetcher) FetchPage(ctx context.Context, page int) ([]byte, error) {
	if page < 1 || page > len(f.keys) {
		return nil, fmt.Errorf("page %d out of %d archived pages", page, len(f.keys))
	}
	return f.archive.Page(ctx, f.keys[page-1])
}
