package classentry

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Pjt727/soc/collection/schedule"
	"github.com/Pjt727/soc/data/db"
)

// Rows is a catalog flattened into table rows.
type Rows struct {
	Run         db.InsertScrapeRunParams
	Keys        []int64
	Courses     []db.UpsertCoursesParams
	Sections    []db.InsertSectionsParams
	Exams       []db.InsertExamsParams
	Snapshots   []db.InsertSeatSnapshotsParams
	Instructors []db.UpsertInstructorsParams
}

// StorageKey keeps the key's bits in a signed BIGINT column
func StorageKey(key schedule.Key) int64 {
	return int64(key)
}

func toPgTime(clock schedule.Clock) pgtype.Time {
	if !clock.Valid {
		return pgtype.Time{}
	}
	return pgtype.Time{
		Microseconds: int64(clock.Minutes()) * 60_000_000,
		Valid:        true,
	}
}

func toPgUUID(run *schedule.Run) pgtype.UUID {
	return pgtype.UUID{Bytes: run.ID, Valid: true}
}

func seatColumns(enrollment schedule.Enrollment) (pgtype.Int4, pgtype.Int4) {
	if !enrollment.HasSeats() {
		return pgtype.Int4{}, pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(enrollment.Seats.Taken), Valid: true},
		pgtype.Int4{Int32: int32(enrollment.Seats.Available), Valid: true}
}

func CatalogRows(run *schedule.Run, catalog schedule.Catalog) Rows {
	runID := toPgUUID(run)
	offerings := catalog.Offerings()
	rows := Rows{
		Run: db.InsertScrapeRunParams{
			ID:          runID,
			Term:        run.Term,
			StartedAt:   pgtype.Timestamptz{Time: run.Started, Valid: true},
			Stamp:       run.Timestamp(),
			Courses:     int32(len(offerings)),
			Instructors: int32(len(catalog.Instructors)),
		},
	}

	for _, course := range offerings {
		key := StorageKey(course.Key)
		rows.Keys = append(rows.Keys, key)

		restrictions := make([]string, 0, len(course.Restrictions))
		for _, restriction := range course.Restrictions {
			restrictions = append(restrictions, restriction.Description)
		}
		rows.Courses = append(rows.Courses, db.UpsertCoursesParams{
			Term:         run.Term,
			CourseKey:    key,
			Code:         course.Code,
			Department:   course.Header.Department,
			Number:       course.Header.Number,
			Title:        course.Header.Title,
			Units:        course.Header.Units,
			FirstLabel:   course.FirstLabel(),
			Restrictions: restrictions,
			Waitlisted:   course.Waitlisted,
			Dei:          course.DEI,
			LastRun:      runID,
		})

		for _, section := range course.Sections {
			days := make([]string, len(section.Days))
			for i, day := range section.Days {
				days[i] = string(day)
			}
			taken, available := seatColumns(section.Enrollment)
			rows.Sections = append(rows.Sections, db.InsertSectionsParams{
				Term:           run.Term,
				CourseKey:      key,
				Sequence:       int32(section.Index),
				SectionID:      section.ID,
				MeetingType:    section.MeetingType,
				Label:          section.Label,
				Days:           days,
				StartTime:      toPgTime(section.Start),
				EndTime:        toPgTime(section.End),
				Building:       section.Building,
				Room:           section.Room,
				EnrollmentKind: section.Enrollment.Kind.String(),
				Instructor:     section.Instructor().Name(),
				Email:          section.Email,
				SeatsTaken:     taken,
				SeatsAvailable: available,
			})
		}

		for _, exam := range []*schedule.ExamRecord{course.Final, course.Midterm} {
			if exam == nil {
				continue
			}
			rows.Exams = append(rows.Exams, db.InsertExamsParams{
				Term:      run.Term,
				CourseKey: key,
				Kind:      string(exam.Kind),
				ExamDate:  exam.Date,
				ExamDay:   exam.Day,
				StartTime: toPgTime(exam.Start),
				EndTime:   toPgTime(exam.End),
				Building:  exam.Building,
				Room:      exam.Room,
			})
		}

		if course.Snapshot.Valid {
			rows.Snapshots = append(rows.Snapshots, db.InsertSeatSnapshotsParams{
				Term:      run.Term,
				CourseKey: key,
				Stamp:     course.Snapshot.Timestamp,
				RunID:     runID,
				Taken:     int32(course.Snapshot.Seats.Taken),
				Available: int32(course.Snapshot.Seats.Available),
			})
		}
	}

	for _, name := range catalog.InstructorNames() {
		entry := catalog.Instructors[name]
		rows.Instructors = append(rows.Instructors, db.UpsertInstructorsParams{
			Term:    run.Term,
			Name:    entry.Name,
			Email:   entry.Email,
			Courses: entry.Courses,
		})
	}
	return rows
}
