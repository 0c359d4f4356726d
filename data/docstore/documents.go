package docstore

import (
	"github.com/Pjt727/soc/collection/schedule"
)

type sectionDoc struct {
	Sequence       int      `bson:"sequence"`
	ID             string   `bson:"id"`
	MeetingType    string   `bson:"meeting_type"`
	Label          string   `bson:"label"`
	Days           []string `bson:"days"`
	Start          string   `bson:"start"`
	End            string   `bson:"end"`
	Building       string   `bson:"building"`
	Room           string   `bson:"room"`
	EnrollmentKind string   `bson:"enrollment_kind"`
	Instructor     string   `bson:"instructor"`
	Email          string   `bson:"email"`
	SeatsTaken     *int     `bson:"seats_taken,omitempty"`
	SeatsAvailable *int     `bson:"seats_available,omitempty"`
}

type examDoc struct {
	Date     string `bson:"date"`
	Day      string `bson:"day"`
	Start    string `bson:"start"`
	End      string `bson:"end"`
	Building string `bson:"building"`
	Room     string `bson:"room"`
}

// courseDoc is the part of a course document replaced on every run, seat
// snapshots are pushed separately
type courseDoc struct {
	Term         string       `bson:"term"`
	Key          string       `bson:"key"`
	Code         string       `bson:"code"`
	Department   string       `bson:"department"`
	Number       string       `bson:"number"`
	Title        string       `bson:"title"`
	Units        string       `bson:"units"`
	Restrictions []string     `bson:"restrictions"`
	Waitlisted   bool         `bson:"waitlisted"`
	DEI          bool         `bson:"dei"`
	Sections     []sectionDoc `bson:"sections"`
	Final        *examDoc     `bson:"final,omitempty"`
	Midterm      *examDoc     `bson:"midterm,omitempty"`
	LastRun      string       `bson:"last_run"`
}

type snapshotDoc struct {
	Stamp     int64  `bson:"stamp"`
	Run       string `bson:"run"`
	Taken     int    `bson:"taken"`
	Available int    `bson:"available"`
}

type runDoc struct {
	ID          string `bson:"_id"`
	Term        string `bson:"term"`
	Stamp       int64  `bson:"stamp"`
	Courses     int    `bson:"courses"`
	Instructors int    `bson:"instructors"`
}

func courseID(term string, key schedule.Key) string {
	return term + "/" + key.String()
}

func instructorID(term string, name string) string {
	return term + "/" + name
}

func toExamDoc(exam *schedule.ExamRecord) *examDoc {
	if exam == nil {
		return nil
	}
	return &examDoc{
		Date:     exam.Date,
		Day:      exam.Day,
		Start:    exam.Start.String(),
		End:      exam.End.String(),
		Building: exam.Building,
		Room:     exam.Room,
	}
}

func toCourseDoc(run *schedule.Run, course schedule.Course) courseDoc {
	doc := courseDoc{
		Term:       run.Term,
		Key:        course.Key.String(),
		Code:       course.Code,
		Department: course.Header.Department,
		Number:     course.Header.Number,
		Title:      course.Header.Title,
		Units:      course.Header.Units,
		Waitlisted: course.Waitlisted,
		DEI:        course.DEI,
		Final:      toExamDoc(course.Final),
		Midterm:    toExamDoc(course.Midterm),
		LastRun:    run.ID.String(),
	}
	for _, restriction := range course.Restrictions {
		doc.Restrictions = append(doc.Restrictions, restriction.Description)
	}
	for _, section := range course.Sections {
		days := make([]string, len(section.Days))
		for i, day := range section.Days {
			days[i] = string(day)
		}
		sd := sectionDoc{
			Sequence:       section.Index,
			ID:             section.ID,
			MeetingType:    section.MeetingType,
			Label:          section.Label,
			Days:           days,
			Start:          section.Start.String(),
			End:            section.End.String(),
			Building:       section.Building,
			Room:           section.Room,
			EnrollmentKind: section.Enrollment.Kind.String(),
			Instructor:     section.Instructor().Name(),
			Email:          section.Email,
		}
		if section.Enrollment.HasSeats() {
			taken, available := section.Enrollment.Seats.Taken, section.Enrollment.Seats.Available
			sd.SeatsTaken, sd.SeatsAvailable = &taken, &available
		}
		doc.Sections = append(doc.Sections, sd)
	}
	return doc
}
