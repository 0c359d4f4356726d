package schedule

import (
	"strings"
)

// MeetingSection is one schedulable meeting of a course, built once and not
// modified afterwards.
type MeetingSection struct {
	// 1 based, in order of appearance within the course
	Index       int
	ID          string
	MeetingType string
	Label       string
	Days        []Day
	Start       Clock
	End         Clock
	Building    string
	Room        string
	Enrollment  Enrollment
	Email       string
}

func (s MeetingSection) Instructor() Instructor { return s.Enrollment.Instructor }

// sectionCursor walks the space separated fields of a section row.
type sectionCursor struct {
	fields []string
	raw    string
}

func (c *sectionCursor) peek() string {
	if len(c.fields) == 0 {
		return ""
	}
	return c.fields[0]
}

func (c *sectionCursor) next() (string, error) {
	if len(c.fields) == 0 {
		return "", grammarGap("section row ended early", c.raw)
	}
	field := c.fields[0]
	c.fields = c.fields[1:]
	return field, nil
}

func (c *sectionCursor) rest() string {
	return strings.Join(c.fields, " ")
}

// ParseSection reads one section row left to right, each field removing
// itself from the front of the row:
//
//	....123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30
//	....DI A01 TBA TBA TBA Staff 10 30
//
// The identifier is present only when the first digit sits right after the
// row marker. Days, time, building and room fall back to Blank or TBA.
func ParseSection(run *Run, index int, token Token) (MeetingSection, error) {
	text := token.Text
	section := MeetingSection{Index: index, ID: Blank}

	loc := firstDigit.FindStringIndex(text)
	if loc == nil {
		return section, grammarGap("section row", text)
	}
	cursor := sectionCursor{fields: strings.Split(text, " "), raw: text}
	if loc[0] == len(SectionMarker) {
		section.ID = strings.TrimSpace(text[len(SectionMarker):min(len(text), len(SectionMarker)+6)])
		cursor.fields = cursor.fields[1:]
	} else {
		cursor.fields[0] = strings.TrimPrefix(cursor.fields[0], SectionMarker)
	}

	var err error
	if section.MeetingType, err = cursor.next(); err != nil {
		return section, err
	}
	if section.Label, err = cursor.next(); err != nil {
		return section, err
	}

	// a TBA day is left in place, the time check reads the same placeholder
	if days := cursor.peek(); days != TBA {
		if section.Days, err = SplitDays(days); err != nil {
			return section, err
		}
		cursor.next()
	}

	if timeRange := cursor.peek(); timeRange != TBA && timeRange != "" {
		if section.Start, section.End, err = ParseTimeRange(timeRange); err != nil {
			return section, err
		}
		cursor.next()
	}

	// with both building and room TBA one placeholder is left over
	if len(cursor.fields) > 1 && cursor.fields[0] == TBA && cursor.fields[1] == TBA {
		cursor.fields = cursor.fields[1:]
	}

	section.Building = Blank
	if building := cursor.peek(); building != TBA {
		if section.Building, err = cursor.next(); err != nil {
			return section, err
		}
	}

	room, err := cursor.next()
	if err != nil {
		return section, err
	}
	section.Room = room
	if room == TBA {
		section.Room = Blank
	}

	for cursor.peek() == TBA {
		cursor.next()
	}
	if section.Enrollment, err = ParseEnrollment(cursor.rest()); err != nil {
		return section, err
	}

	section.Email = resolveEmail(run, section.Enrollment.Instructor, token.Email)
	return section, nil
}

func resolveEmail(run *Run, instructor Instructor, rowEmail string) string {
	if instructor.IsPerson() && run != nil {
		if email, ok := run.emailFor(instructor.Name()); ok {
			return email
		}
	}
	if rowEmail != "" {
		return rowEmail
	}
	return NoEmail
}
