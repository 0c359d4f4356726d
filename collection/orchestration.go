package collection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pjt727/soc/collection/schedule"
	"github.com/Pjt727/soc/collection/services/soc"
	logginghelpers "github.com/Pjt727/soc/data/logging-helpers"
)

// PageFetcher returns the raw results pages of one search.
type PageFetcher interface {
	// starts a search and returns how many pages it has
	Setup(ctx context.Context, term string, subjects []string) (int, error)

	// 1 based page of the last search, safe to call concurrently
	FetchPage(ctx context.Context, page int) ([]byte, error)
}

// Store persists a fully checked catalog, it is only ever given complete runs
type Store interface {
	SaveCatalog(
		ctx context.Context,
		logger *slog.Logger,
		run *schedule.Run,
		catalog schedule.Catalog,
	) error
}

// Archiver keeps the raw pages of a run
type Archiver interface {
	ArchivePage(ctx context.Context, run *schedule.Run, page int, raw []byte) error
}

type Orchestrator struct {
	fetcher     PageFetcher
	store       Store
	archiver    Archiver
	logger      *slog.Logger
	pageWorkers int
	now         func() time.Time
}

type Option func(*Orchestrator)

func WithArchiver(archiver Archiver) Option {
	return func(o *Orchestrator) { o.archiver = archiver }
}

func WithPageWorkers(workers int) Option {
	return func(o *Orchestrator) {
		if workers > 0 {
			o.pageWorkers = workers
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// store may be nil to parse without saving
func NewOrchestrator(fetcher PageFetcher, store Store, logger *slog.Logger, options ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		fetcher:     fetcher,
		store:       store,
		logger:      logger,
		pageWorkers: 4,
		now:         time.Now,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// CollectTerm scrapes every page of the search, builds the catalog and saves
// it. Nothing is saved unless the whole run parsed and every key is unique.
func (o *Orchestrator) CollectTerm(ctx context.Context, term string, subjects []string) (*schedule.Run, schedule.Catalog, error) {
	run := schedule.NewRun(term, o.now(), o.logger)
	logger := run.Logger

	pageCount, err := o.fetcher.Setup(ctx, term, subjects)
	if err != nil {
		logger.Error("Could not start search", "error", err)
		return run, schedule.Catalog{}, err
	}
	logger.Info("starting collection", "pages", pageCount)

	raws, err := o.fetchPages(ctx, run, pageCount)
	if err != nil {
		return run, schedule.Catalog{}, err
	}

	// department headings carry over from one page to the next so pages are
	// extracted in order
	pages := make([][]schedule.Token, len(raws))
	department := ""
	for i, raw := range raws {
		page, err := soc.Extract(raw, department)
		if err != nil {
			logger.Error("Could not extract page", "page", i+1, "error", err)
			return run, schedule.Catalog{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		department = page.Department
		run.AddEmails(page.Emails)
		pages[i] = page.Tokens
	}

	catalog, err := schedule.Build(run, pages)
	if err != nil {
		logger.Log(ctx, logginghelpers.LevelBrokenProcess, "run aborted before saving", "error", err)
		return run, schedule.Catalog{}, err
	}

	if o.store == nil {
		logger.Info("no store configured, catalog not saved")
		return run, catalog, nil
	}
	if err := o.store.SaveCatalog(ctx, logger, run, catalog); err != nil {
		logger.Error("Could not save catalog", "error", err)
		return run, catalog, err
	}
	logger.Info("collection finished", "courses", len(catalog.Courses))
	return run, catalog, nil
}

func (o *Orchestrator) fetchPages(ctx context.Context, run *schedule.Run, pageCount int) ([][]byte, error) {
	raws := make([][]byte, pageCount)

	eg, fetchCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.pageWorkers)
	// i is already scoped to each iteration for goroutines
	for i := range pageCount {
		eg.Go(func() error {
			page := i + 1
			raw, err := o.fetcher.FetchPage(fetchCtx, page)
			if err != nil {
				run.Logger.Error("Could not fetch page", "page", page, "error", err)
				return fmt.Errorf("page %d: %w", page, err)
			}
			raws[i] = raw
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if o.archiver == nil {
		return raws, nil
	}

	// archived only once every page arrived so a stored run is never partial
	eg, archiveCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.pageWorkers)
	for i, raw := range raws {
		eg.Go(func() error {
			page := i + 1
			if err := o.archiver.ArchivePage(archiveCtx, run, page, raw); err != nil {
				run.Logger.Error("Could not archive page", "page", page, "error", err)
				return fmt.Errorf("archive page %d: %w", page, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}
