package classentry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/Pjt727/soc/collection/schedule"
	"github.com/Pjt727/soc/data/db"
)

// service collection is the main place that needs to be easy to verify
//   only certain db functions are used

func NewEntryQuery(database db.DBTX) *EntryQueries {
	return &EntryQueries{q: db.New(database)}
}

type EntryQueries struct {
	q *db.Queries
}

func (q *EntryQueries) WithTx(tx pgx.Tx) *EntryQueries {
	return &EntryQueries{
		q: q.q.WithTx(tx),
	}
}

// InsertCatalog writes one run. Sections and exams of the run's courses are
// replaced, seat snapshots are only ever appended.
func (q *EntryQueries) InsertCatalog(
	ctx context.Context,
	logger *slog.Logger,
	rows Rows,
) error {
	if err := q.q.InsertScrapeRun(ctx, rows.Run); err != nil {
		logger.Error("Error inserting scrape run", "error", err)
		return err
	}

	if len(rows.Courses) != 0 {
		var outerErr error = nil
		q.q.UpsertCourses(ctx, rows.Courses).Exec(func(i int, err error) {
			if err != nil && outerErr == nil {
				outerErr = fmt.Errorf("course %s: %w", rows.Courses[i].Code, err)
			}
		})
		if outerErr != nil {
			logger.Error("Error upserting course", "error", outerErr)
			return outerErr
		}
	}

	replaced := db.DeleteCourseSectionsParams{Term: rows.Run.Term, CourseKeys: rows.Keys}
	if err := q.q.DeleteCourseSections(ctx, replaced); err != nil {
		logger.Error("Error clearing sections", "error", err)
		return err
	}
	if err := q.q.DeleteCourseExams(ctx, db.DeleteCourseExamsParams(replaced)); err != nil {
		logger.Error("Error clearing exams", "error", err)
		return err
	}

	if len(rows.Sections) != 0 {
		if _, err := q.q.InsertSections(ctx, rows.Sections); err != nil {
			logger.Error("Error inserting sections", "error", err)
			return err
		}
	}

	if len(rows.Exams) != 0 {
		var outerErr error = nil
		q.q.InsertExams(ctx, rows.Exams).Exec(func(i int, err error) {
			if err != nil && outerErr == nil {
				outerErr = err
			}
		})
		if outerErr != nil {
			logger.Error("Error inserting exams", "error", outerErr)
			return outerErr
		}
	}

	if len(rows.Snapshots) != 0 {
		if _, err := q.q.InsertSeatSnapshots(ctx, rows.Snapshots); err != nil {
			logger.Error("Error inserting seat snapshots", "error", err)
			return err
		}
	}

	if len(rows.Instructors) != 0 {
		var outerErr error = nil
		q.q.UpsertInstructors(ctx, rows.Instructors).Exec(func(i int, err error) {
			if err != nil && outerErr == nil {
				outerErr = err
			}
		})
		if outerErr != nil {
			logger.Error("Error upserting instructors", "error", outerErr)
			return outerErr
		}
	}

	return nil
}

type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store saves each catalog in a single transaction.
type Store struct {
	pool TxStarter
}

func NewStore(pool TxStarter) *Store {
	return &Store{pool: pool}
}

func (s *Store) SaveCatalog(
	ctx context.Context,
	logger *slog.Logger,
	run *schedule.Run,
	catalog schedule.Catalog,
) error {
	rows := CatalogRows(run, catalog)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := NewEntryQuery(tx).InsertCatalog(ctx, logger, rows); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	logger.Info("Saved catalog",
		"courses", len(rows.Courses),
		"sections", len(rows.Sections),
		"snapshots", len(rows.Snapshots),
		"instructors", len(rows.Instructors),
	)
	return nil
}
