package schedule

import "strings"

type ExamKind string

const (
	Final   ExamKind = "final"
	Midterm ExamKind = "midterm"
)

type ExamRecord struct {
	Kind     ExamKind
	Date     string
	Day      string
	Start    Clock
	End      Clock
	Building string
	Room     string
}

// ParseExam reads "****FI 12/10/2016 Sa 8:00a-10:59a CENTR 115".
func ParseExam(text string) (ExamRecord, error) {
	kind := Midterm
	if strings.Contains(text, "FI") {
		kind = Final
	}

	fields := strings.Split(text, " ")
	if len(fields) < 4 {
		return ExamRecord{}, grammarGap("exam row", text)
	}
	exam := ExamRecord{
		Kind:     kind,
		Date:     fields[1],
		Day:      fields[2],
		Building: Blank,
		Room:     Blank,
	}

	var err error
	if exam.Start, exam.End, err = ParseTimeRange(fields[3]); err != nil {
		return ExamRecord{}, err
	}
	if len(fields) > 4 && fields[4] != TBA {
		exam.Building = fields[4]
	}
	if len(fields) > 5 && fields[5] != TBA {
		exam.Room = fields[5]
	}
	return exam, nil
}
