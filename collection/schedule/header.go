package schedule

import (
	"regexp"
	"strings"
)

const NoRestrictions = "No Restrictions"

var firstDigit = regexp.MustCompile(`\d+`)

type CourseHeader struct {
	Department   string
	Number       string
	Title        string
	Units        string
	Restrictions string
}

// Code is the department and number, e.g. "CSE 8A".
func (h CourseHeader) Code() string {
	return h.Department + " " + h.Number
}

// String rebuilds the header row the way the extractor emits it.
func (h CourseHeader) String() string {
	var b strings.Builder
	b.WriteString(h.Department)
	b.WriteString(" ")
	if h.Restrictions != NoRestrictions && h.Restrictions != "" {
		b.WriteString(h.Restrictions)
		b.WriteString(" ")
	}
	b.WriteString(h.Number)
	b.WriteString(" ")
	b.WriteString(h.Title)
	b.WriteString(" ( ")
	b.WriteString(h.Units)
	b.WriteString(" Units)")
	return b.String()
}

// ParseHeader reads "<DEPT> [<RESTRICTIONS>] <NUMBER> <TITLE> ( <UNITS> Units)".
// Boundaries come from the first space, the first digit and the "( " marker,
// a header that is shaped differently yields odd fields rather than an error.
// Only a header with no digit at all is rejected.
func ParseHeader(text string) (CourseHeader, error) {
	var header CourseHeader
	loc := firstDigit.FindStringIndex(text)
	if loc == nil {
		return header, grammarGap("course header", text)
	}
	numLoc := loc[0]

	department, _, _ := strings.Cut(text, " ")
	number, _, _ := strings.Cut(text[numLoc:], " ")

	before, after, _ := strings.Cut(text, "( ")
	titleStart := min(numLoc+len(number)+1, len(before))
	title := strings.TrimSpace(before[titleStart:])

	units, _, _ := strings.Cut(after, ")")
	units = strings.TrimSuffix(strings.TrimSpace(units), " Units")

	restrictions := NoRestrictions
	if numLoc != len(department)+1 && numLoc-1 > len(department)+1 {
		restrictions = strings.TrimSpace(text[len(department)+1 : numLoc-1])
	}

	header = CourseHeader{
		Department:   department,
		Number:       number,
		Title:        title,
		Units:        units,
		Restrictions: restrictions,
	}
	return header, nil
}
