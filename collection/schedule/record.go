package schedule

// SeatSnapshot is one timestamped enrollment reading.
type SeatSnapshot struct {
	// YYYYMMDDhhmm of the scrape
	Timestamp int64
	Seats     Seats
	Valid     bool
}

// CourseRecord is everything parsed out of one course group.
type CourseRecord struct {
	Key      Key
	Header   CourseHeader
	Sections []MeetingSection
	Final    *ExamRecord
	Midterm  *ExamRecord
	Snapshot SeatSnapshot
}

func (r CourseRecord) FirstLabel() string {
	if len(r.Sections) == 0 {
		return ""
	}
	return r.Sections[0].Label
}

// ParseGroup turns one segmented group into a record. Any text that does not
// fit the header, section or exam layouts is returned as ErrGrammarGap.
func ParseGroup(run *Run, group Group) (CourseRecord, error) {
	var record CourseRecord
	var firstExam *ExamRecord
	hasHeader := false

	for _, token := range group {
		switch token.Kind {
		case RowHeader:
			header, err := ParseHeader(token.Text)
			if err != nil {
				return record, err
			}
			record.Header = header
			hasHeader = true

		case RowSection:
			section, err := ParseSection(run, len(record.Sections)+1, token)
			if err != nil {
				return record, err
			}
			record.Sections = append(record.Sections, section)
			if section.Enrollment.HasSeats() {
				record.Snapshot = SeatSnapshot{
					Timestamp: run.Timestamp(),
					Seats:     section.Enrollment.Seats,
					Valid:     true,
				}
			}

		case RowExam:
			exam, err := ParseExam(token.Text)
			if err != nil {
				return record, err
			}
			if firstExam == nil {
				first := exam
				firstExam = &first
			}
			if exam.Kind == Final {
				record.Final = &exam
			} else {
				record.Midterm = &exam
			}
		}
	}

	if !hasHeader {
		return record, grammarGap("course group without a header", serialize(group))
	}
	record.Key = IdentityKey(record.Header, firstExam, record.FirstLabel())
	return record, nil
}
