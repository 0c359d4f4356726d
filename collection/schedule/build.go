package schedule

import (
	"context"

	logginghelpers "github.com/Pjt727/soc/data/logging-helpers"
)

// Build runs the whole pipeline over the pages of one run: segment, parse,
// check keys, then group. Nothing is returned unless every group parsed and
// every key is unique.
func Build(run *Run, pages [][]Token) (Catalog, error) {
	logger := run.Logger
	var records []CourseRecord
	for group := range Segment(logger, pages) {
		record, err := ParseGroup(run, group)
		if err != nil {
			logger.Log(context.Background(), logginghelpers.LevelBrokenProcess,
				"course group could not be parsed", "error", err)
			return Catalog{}, err
		}
		records = append(records, record)
	}
	logger.Info("parsed course groups", "courses", len(records))

	if err := CheckCollisions(logger, records); err != nil {
		return Catalog{}, err
	}

	catalog, err := GroupRecords(run.Term, records)
	if err != nil {
		logger.Error("could not group courses", "error", err)
		return Catalog{}, err
	}
	logger.Info("grouped courses",
		"codes", len(catalog.Courses),
		"instructors", len(catalog.Instructors),
	)
	return catalog, nil
}
