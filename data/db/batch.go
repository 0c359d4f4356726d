package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrBatchAlreadyClosed = errors.New("batch already closed")
)

const upsertCourses = `-- name: UpsertCourses :batchexec
INSERT INTO courses (term, course_key, code, department, number, title, units,
                     first_label, restrictions, waitlisted, dei, last_run)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (term, course_key) DO UPDATE SET
    code = EXCLUDED.code,
    department = EXCLUDED.department,
    number = EXCLUDED.number,
    title = EXCLUDED.title,
    units = EXCLUDED.units,
    first_label = EXCLUDED.first_label,
    restrictions = EXCLUDED.restrictions,
    waitlisted = EXCLUDED.waitlisted,
    dei = EXCLUDED.dei,
    last_run = EXCLUDED.last_run
`

type UpsertCoursesBatchResults struct {
	br     pgx.BatchResults
	tot    int
	closed bool
}

type UpsertCoursesParams = Course

func (q *Queries) UpsertCourses(ctx context.Context, arg []UpsertCoursesParams) *UpsertCoursesBatchResults {
	batch := &pgx.Batch{}
	for _, a := range arg {
		vals := []interface{}{
			a.Term,
			a.CourseKey,
			a.Code,
			a.Department,
			a.Number,
			a.Title,
			a.Units,
			a.FirstLabel,
			a.Restrictions,
			a.Waitlisted,
			a.Dei,
			a.LastRun,
		}
		batch.Queue(upsertCourses, vals...)
	}
	br := q.db.SendBatch(ctx, batch)
	return &UpsertCoursesBatchResults{br, len(arg), false}
}

func (b *UpsertCoursesBatchResults) Exec(f func(int, error)) {
	defer b.br.Close()
	for t := 0; t < b.tot; t++ {
		if b.closed {
			if f != nil {
				f(t, ErrBatchAlreadyClosed)
			}
			continue
		}
		_, err := b.br.Exec()
		if f != nil {
			f(t, err)
		}
	}
}

func (b *UpsertCoursesBatchResults) Close() error {
	b.closed = true
	return b.br.Close()
}

const insertExams = `-- name: InsertExams :batchexec
INSERT INTO exams (term, course_key, kind, exam_date, exam_day, start_time, end_time, building, room)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertExamsBatchResults struct {
	br     pgx.BatchResults
	tot    int
	closed bool
}

type InsertExamsParams = Exam

func (q *Queries) InsertExams(ctx context.Context, arg []InsertExamsParams) *InsertExamsBatchResults {
	batch := &pgx.Batch{}
	for _, a := range arg {
		vals := []interface{}{
			a.Term,
			a.CourseKey,
			a.Kind,
			a.ExamDate,
			a.ExamDay,
			a.StartTime,
			a.EndTime,
			a.Building,
			a.Room,
		}
		batch.Queue(insertExams, vals...)
	}
	br := q.db.SendBatch(ctx, batch)
	return &InsertExamsBatchResults{br, len(arg), false}
}

func (b *InsertExamsBatchResults) Exec(f func(int, error)) {
	defer b.br.Close()
	for t := 0; t < b.tot; t++ {
		if b.closed {
			if f != nil {
				f(t, ErrBatchAlreadyClosed)
			}
			continue
		}
		_, err := b.br.Exec()
		if f != nil {
			f(t, err)
		}
	}
}

func (b *InsertExamsBatchResults) Close() error {
	b.closed = true
	return b.br.Close()
}

const upsertInstructors = `-- name: UpsertInstructors :batchexec
INSERT INTO instructors (term, name, email, courses)
VALUES ($1, $2, $3, $4)
ON CONFLICT (term, name) DO UPDATE SET
    email = CASE WHEN instructors.email = 'No Email' THEN EXCLUDED.email ELSE instructors.email END,
    courses = instructors.courses || ARRAY(
        SELECT c FROM UNNEST(EXCLUDED.courses) AS c WHERE c <> ALL(instructors.courses)
    )
`

type UpsertInstructorsBatchResults struct {
	br     pgx.BatchResults
	tot    int
	closed bool
}

type UpsertInstructorsParams = Instructor

func (q *Queries) UpsertInstructors(ctx context.Context, arg []UpsertInstructorsParams) *UpsertInstructorsBatchResults {
	batch := &pgx.Batch{}
	for _, a := range arg {
		vals := []interface{}{
			a.Term,
			a.Name,
			a.Email,
			a.Courses,
		}
		batch.Queue(upsertInstructors, vals...)
	}
	br := q.db.SendBatch(ctx, batch)
	return &UpsertInstructorsBatchResults{br, len(arg), false}
}

func (b *UpsertInstructorsBatchResults) Exec(f func(int, error)) {
	defer b.br.Close()
	for t := 0; t < b.tot; t++ {
		if b.closed {
			if f != nil {
				f(t, ErrBatchAlreadyClosed)
			}
			continue
		}
		_, err := b.br.Exec()
		if f != nil {
			f(t, err)
		}
	}
}

func (b *UpsertInstructorsBatchResults) Close() error {
	b.closed = true
	return b.br.Close()
}
