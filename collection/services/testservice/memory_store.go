package testservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Pjt727/soc/collection/schedule"
	"github.com/Pjt727/soc/data/pagearchive"
)

// SavedCatalog is one call to MemoryStore.SaveCatalog.
type SavedCatalog struct {
	Run     *schedule.Run
	Catalog schedule.Catalog
}

// MemoryStore keeps every saved catalog, optionally failing instead.
type MemoryStore struct {
	mu    sync.Mutex
	saved []SavedCatalog
	Err   error
}

func (m *MemoryStore) SaveCatalog(
	ctx context.Context,
	logger *slog.Logger,
	run *schedule.Run,
	catalog schedule.Catalog,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.saved = append(m.saved, SavedCatalog{Run: run, Catalog: catalog})
	logger.Info("Saved catalog in memory", "courses", len(catalog.Courses))
	return nil
}

func (m *MemoryStore) Saved() []SavedCatalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SavedCatalog(nil), m.saved...)
}

// MemoryArchive keeps raw pages keyed by run and page.
type MemoryArchive struct {
	mu    sync.Mutex
	pages map[string][]byte
}

func (m *MemoryArchive) ArchivePage(ctx context.Context, run *schedule.Run, page int, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pages == nil {
		m.pages = map[string][]byte{}
	}
	m.pages[pagearchive.ObjectKey(run, page)] = raw
	return nil
}

func (m *MemoryArchive) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

func (m *MemoryArchive) Page(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.pages[key]
	return raw, ok
}
