package testservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Pjt727/soc/collection/services"
)

// FileFetcher serves saved results pages from a directory in place of the
// live site. Pages are the directory's .html files in name order.
type FileFetcher struct {
	directoryPath string
	filesPaths    []string

	mu       sync.Mutex
	term     string
	subjects []string
	fetched  map[int]int
}

func NewFileFetcher(directoryPath string) (*FileFetcher, error) {
	fetcher := &FileFetcher{
		directoryPath: directoryPath,
		fetched:       map[int]int{},
	}
	files, err := os.ReadDir(directoryPath)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".html") {
			continue
		}
		fetcher.filesPaths = append(
			fetcher.filesPaths,
			filepath.Join(directoryPath, file.Name()),
		)
	}
	if len(fetcher.filesPaths) == 0 {
		return nil, fmt.Errorf("directory %s must have at least one html file in it", directoryPath)
	}
	slices.Sort(fetcher.filesPaths)
	return fetcher, nil
}

func (f *FileFetcher) Setup(ctx context.Context, term string, subjects []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.term = term
	f.subjects = subjects
	return len(f.filesPaths), nil
}

func (f *FileFetcher) FetchPage(ctx context.Context, page int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	if f.term == "" {
		f.mu.Unlock()
		return nil, errors.Join(services.ErrIncorrectAssumption, errors.New("FetchPage called before Setup"))
	}
	f.fetched[page]++
	f.mu.Unlock()

	if page < 1 || page > len(f.filesPaths) {
		return nil, fmt.Errorf("%w: page %d of %d", services.ErrIncorrectAssumption, page, len(f.filesPaths))
	}
	return os.ReadFile(f.filesPaths[page-1])
}

// Searched is the term and subjects of the last Setup.
func (f *FileFetcher) Searched() (string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.term, slices.Clone(f.subjects)
}

// Fetched reports how many times each page was requested.
func (f *FileFetcher) Fetched() map[int]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[int]int, len(f.fetched))
	for page, count := range f.fetched {
		counts[page] = count
	}
	return counts
}
