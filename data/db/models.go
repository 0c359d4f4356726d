package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type ScrapeRun struct {
	ID          pgtype.UUID        `json:"id"`
	Term        string             `json:"term"`
	StartedAt   pgtype.Timestamptz `json:"started_at"`
	Stamp       int64              `json:"stamp"`
	Courses     int32              `json:"courses"`
	Instructors int32              `json:"instructors"`
}

type Course struct {
	Term         string      `json:"term"`
	CourseKey    int64       `json:"course_key"`
	Code         string      `json:"code"`
	Department   string      `json:"department"`
	Number       string      `json:"number"`
	Title        string      `json:"title"`
	Units        string      `json:"units"`
	FirstLabel   string      `json:"first_label"`
	Restrictions []string    `json:"restrictions"`
	Waitlisted   bool        `json:"waitlisted"`
	Dei          bool        `json:"dei"`
	LastRun      pgtype.UUID `json:"last_run"`
}

type Exam struct {
	Term      string      `json:"term"`
	CourseKey int64       `json:"course_key"`
	Kind      string      `json:"kind"`
	ExamDate  string      `json:"exam_date"`
	ExamDay   string      `json:"exam_day"`
	StartTime pgtype.Time `json:"start_time"`
	EndTime   pgtype.Time `json:"end_time"`
	Building  string      `json:"building"`
	Room      string      `json:"room"`
}

type Section struct {
	Term           string      `json:"term"`
	CourseKey      int64       `json:"course_key"`
	Sequence       int32       `json:"sequence"`
	SectionID      string      `json:"section_id"`
	MeetingType    string      `json:"meeting_type"`
	Label          string      `json:"label"`
	Days           []string    `json:"days"`
	StartTime      pgtype.Time `json:"start_time"`
	EndTime        pgtype.Time `json:"end_time"`
	Building       string      `json:"building"`
	Room           string      `json:"room"`
	EnrollmentKind string      `json:"enrollment_kind"`
	Instructor     string      `json:"instructor"`
	Email          string      `json:"email"`
	SeatsTaken     pgtype.Int4 `json:"seats_taken"`
	SeatsAvailable pgtype.Int4 `json:"seats_available"`
}

type SeatSnapshot struct {
	Term      string      `json:"term"`
	CourseKey int64       `json:"course_key"`
	Stamp     int64       `json:"stamp"`
	RunID     pgtype.UUID `json:"run_id"`
	Taken     int32       `json:"taken"`
	Available int32       `json:"available"`
}

type Instructor struct {
	Term    string   `json:"term"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Courses []string `json:"courses"`
}
