package pagearchive

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

func pageNumber(key string) int {
	name := key[strings.LastIndex(key, "/")+1:]
	name = strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".html")
	n, err := strconv.Atoi(name)
	if err != nil {
		return -1
	}
	return n
}

// SortPageKeys orders keys by page number, listing order is lexical so
// page-10 would otherwise come before page-2. Keys that are not pages are dropped.
func SortPageKeys(keys []string) []string {
	pages := slices.DeleteFunc(slices.Clone(keys), func(key string) bool {
		return pageNumber(key) < 1
	})
	slices.SortFunc(pages, func(a, b string) int {
		return cmp.Compare(pageNumber(a), pageNumber(b))
	})
	return pages
}

// ErrMissingPages means an archived run does not hold every page from 1 up to
// its last one, which happens when the run failed part way through fetching.
var ErrMissingPages = errors.New("archived run is missing pages")

// checkPageRun expects sorted keys numbered exactly 1..len(keys).
func checkPageRun(keys []string) error {
	for i, key := range keys {
		if n := pageNumber(key); n != i+1 {
			return fmt.Errorf("%w: expected page %d, found %s", ErrMissingPages, i+1, key)
		}
	}
	return nil
}
