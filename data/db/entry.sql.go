package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertScrapeRun = `-- name: InsertScrapeRun :exec
INSERT INTO scrape_runs (id, term, started_at, stamp, courses, instructors)
VALUES ($1, $2, $3, $4, $5, $6)
`

type InsertScrapeRunParams struct {
	ID          pgtype.UUID        `json:"id"`
	Term        string             `json:"term"`
	StartedAt   pgtype.Timestamptz `json:"started_at"`
	Stamp       int64              `json:"stamp"`
	Courses     int32              `json:"courses"`
	Instructors int32              `json:"instructors"`
}

func (q *Queries) InsertScrapeRun(ctx context.Context, arg InsertScrapeRunParams) error {
	_, err := q.db.Exec(ctx, insertScrapeRun,
		arg.ID,
		arg.Term,
		arg.StartedAt,
		arg.Stamp,
		arg.Courses,
		arg.Instructors,
	)
	return err
}

const deleteCourseSections = `-- name: DeleteCourseSections :exec
DELETE FROM sections
WHERE term = $1 AND course_key = ANY($2::BIGINT[])
`

type DeleteCourseSectionsParams struct {
	Term       string  `json:"term"`
	CourseKeys []int64 `json:"course_keys"`
}

func (q *Queries) DeleteCourseSections(ctx context.Context, arg DeleteCourseSectionsParams) error {
	_, err := q.db.Exec(ctx, deleteCourseSections, arg.Term, arg.CourseKeys)
	return err
}

const deleteCourseExams = `-- name: DeleteCourseExams :exec
DELETE FROM exams
WHERE term = $1 AND course_key = ANY($2::BIGINT[])
`

type DeleteCourseExamsParams struct {
	Term       string  `json:"term"`
	CourseKeys []int64 `json:"course_keys"`
}

func (q *Queries) DeleteCourseExams(ctx context.Context, arg DeleteCourseExamsParams) error {
	_, err := q.db.Exec(ctx, deleteCourseExams, arg.Term, arg.CourseKeys)
	return err
}

const listCourses = `-- name: ListCourses :many
SELECT term, course_key, code, department, number, title, units, first_label,
       restrictions, waitlisted, dei, last_run
FROM courses
WHERE term = $1
ORDER BY code, first_label
`

func (q *Queries) ListCourses(ctx context.Context, term string) ([]Course, error) {
	rows, err := q.db.Query(ctx, listCourses, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.Term,
			&i.CourseKey,
			&i.Code,
			&i.Department,
			&i.Number,
			&i.Title,
			&i.Units,
			&i.FirstLabel,
			&i.Restrictions,
			&i.Waitlisted,
			&i.Dei,
			&i.LastRun,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSections = `-- name: ListSections :many
SELECT term, course_key, sequence, section_id, meeting_type, label, days,
       start_time, end_time, building, room, enrollment_kind, instructor, email,
       seats_taken, seats_available
FROM sections
WHERE term = $1 AND course_key = $2
ORDER BY sequence
`

type ListSectionsParams struct {
	Term      string `json:"term"`
	CourseKey int64  `json:"course_key"`
}

func (q *Queries) ListSections(ctx context.Context, arg ListSectionsParams) ([]Section, error) {
	rows, err := q.db.Query(ctx, listSections, arg.Term, arg.CourseKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Section
	for rows.Next() {
		var i Section
		if err := rows.Scan(
			&i.Term,
			&i.CourseKey,
			&i.Sequence,
			&i.SectionID,
			&i.MeetingType,
			&i.Label,
			&i.Days,
			&i.StartTime,
			&i.EndTime,
			&i.Building,
			&i.Room,
			&i.EnrollmentKind,
			&i.Instructor,
			&i.Email,
			&i.SeatsTaken,
			&i.SeatsAvailable,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSeatSnapshots = `-- name: ListSeatSnapshots :many
SELECT term, course_key, stamp, run_id, taken, available
FROM seat_snapshots
WHERE term = $1 AND course_key = $2
ORDER BY stamp
`

type ListSeatSnapshotsParams struct {
	Term      string `json:"term"`
	CourseKey int64  `json:"course_key"`
}

func (q *Queries) ListSeatSnapshots(ctx context.Context, arg ListSeatSnapshotsParams) ([]SeatSnapshot, error) {
	rows, err := q.db.Query(ctx, listSeatSnapshots, arg.Term, arg.CourseKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SeatSnapshot
	for rows.Next() {
		var i SeatSnapshot
		if err := rows.Scan(
			&i.Term,
			&i.CourseKey,
			&i.Stamp,
			&i.RunID,
			&i.Taken,
			&i.Available,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getInstructor = `-- name: GetInstructor :one
SELECT term, name, email, courses
FROM instructors
WHERE term = $1 AND name = $2
`

type GetInstructorParams struct {
	Term string `json:"term"`
	Name string `json:"name"`
}

func (q *Queries) GetInstructor(ctx context.Context, arg GetInstructorParams) (Instructor, error) {
	row := q.db.QueryRow(ctx, getInstructor, arg.Term, arg.Name)
	var i Instructor
	err := row.Scan(
		&i.Term,
		&i.Name,
		&i.Email,
		&i.Courses,
	)
	return i, err
}

const countScrapeRuns = `-- name: CountScrapeRuns :one
SELECT COUNT(*) FROM scrape_runs WHERE term = $1
`

func (q *Queries) CountScrapeRuns(ctx context.Context, term string) (int64, error) {
	row := q.db.QueryRow(ctx, countScrapeRuns, term)
	var count int64
	err := row.Scan(&count)
	return count, err
}
