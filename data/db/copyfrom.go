package db

import (
	"context"
)

// iteratorForInsertSections implements pgx.CopyFromSource.
type iteratorForInsertSections struct {
	rows                 []InsertSectionsParams
	skippedFirstNextCall bool
}

func (r *iteratorForInsertSections) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForInsertSections) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].Term,
		r.rows[0].CourseKey,
		r.rows[0].Sequence,
		r.rows[0].SectionID,
		r.rows[0].MeetingType,
		r.rows[0].Label,
		r.rows[0].Days,
		r.rows[0].StartTime,
		r.rows[0].EndTime,
		r.rows[0].Building,
		r.rows[0].Room,
		r.rows[0].EnrollmentKind,
		r.rows[0].Instructor,
		r.rows[0].Email,
		r.rows[0].SeatsTaken,
		r.rows[0].SeatsAvailable,
	}, nil
}

func (r iteratorForInsertSections) Err() error {
	return nil
}

func (q *Queries) InsertSections(ctx context.Context, arg []InsertSectionsParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"sections"}, []string{"term", "course_key", "sequence", "section_id", "meeting_type", "label", "days", "start_time", "end_time", "building", "room", "enrollment_kind", "instructor", "email", "seats_taken", "seats_available"}, &iteratorForInsertSections{rows: arg})
}

// iteratorForInsertSeatSnapshots implements pgx.CopyFromSource.
type iteratorForInsertSeatSnapshots struct {
	rows                 []InsertSeatSnapshotsParams
	skippedFirstNextCall bool
}

func (r *iteratorForInsertSeatSnapshots) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForInsertSeatSnapshots) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].Term,
		r.rows[0].CourseKey,
		r.rows[0].Stamp,
		r.rows[0].RunID,
		r.rows[0].Taken,
		r.rows[0].Available,
	}, nil
}

func (r iteratorForInsertSeatSnapshots) Err() error {
	return nil
}

func (q *Queries) InsertSeatSnapshots(ctx context.Context, arg []InsertSeatSnapshotsParams) (int64, error) {
	return q.db.CopyFrom(ctx, []string{"seat_snapshots"}, []string{"term", "course_key", "stamp", "run_id", "taken", "available"}, &iteratorForInsertSeatSnapshots{rows: arg})
}

type InsertSectionsParams = Section

type InsertSeatSnapshotsParams = SeatSnapshot
