package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Restriction struct {
	Code        string
	Description string
}

// Course is a parsed record with the fields derived while grouping.
type Course struct {
	CourseRecord
	Code         string
	Restrictions []Restriction
	Waitlisted   bool
	DEI          bool
}

type InstructorEntry struct {
	Name    string
	Email   string
	Courses []string
}

// Catalog is what one run hands to the store.
type Catalog struct {
	Term string
	// course code -> first section label -> offering
	Courses     map[string]map[string]Course
	Instructors map[string]*InstructorEntry
}

// Offerings lists every course ordered by code then first section label.
func (c Catalog) Offerings() []Course {
	var offerings []Course
	for _, byLabel := range c.Courses {
		for _, course := range byLabel {
			offerings = append(offerings, course)
		}
	}
	slices.SortFunc(offerings, func(a, b Course) int {
		return cmp.Or(
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.FirstLabel(), b.FirstLabel()),
		)
	})
	return offerings
}

// InstructorNames in sorted order.
func (c Catalog) InstructorNames() []string {
	names := make([]string, 0, len(c.Instructors))
	for name := range c.Instructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ExpandRestrictions looks every space separated code up in the restriction table.
func ExpandRestrictions(codes string) ([]Restriction, error) {
	if codes == NoRestrictions || strings.TrimSpace(codes) == "" {
		return nil, nil
	}
	var restrictions []Restriction
	for _, code := range strings.Fields(codes) {
		description, ok := restrictionDescriptions[code]
		if !ok {
			return nil, fmt.Errorf("%w `%s` in `%s`", ErrUnknownRestriction, code, codes)
		}
		restrictions = append(restrictions, Restriction{Code: code, Description: description})
	}
	return restrictions, nil
}

// Waitlisted is false as soon as one section still has an open seat.
func Waitlisted(sections []MeetingSection) bool {
	for _, section := range sections {
		if section.Enrollment.HasSeats() && section.Enrollment.Seats.Open() {
			return false
		}
	}
	return true
}

// GroupRecords builds the course and instructor mappings out of records that
// already passed the collision check.
func GroupRecords(term string, records []CourseRecord) (Catalog, error) {
	catalog := Catalog{
		Term:        term,
		Courses:     make(map[string]map[string]Course),
		Instructors: make(map[string]*InstructorEntry),
	}

	for _, record := range records {
		restrictions, err := ExpandRestrictions(record.Header.Restrictions)
		if err != nil {
			return catalog, fmt.Errorf("course %s: %w", record.Header.Code(), err)
		}
		code := record.Header.Code()
		course := Course{
			CourseRecord: record,
			Code:         code,
			Restrictions: restrictions,
			Waitlisted:   Waitlisted(record.Sections),
			DEI:          IsDEI(code),
		}

		byLabel, ok := catalog.Courses[code]
		if !ok {
			byLabel = make(map[string]Course)
			catalog.Courses[code] = byLabel
		}
		if existing, taken := byLabel[record.FirstLabel()]; taken {
			return catalog, fmt.Errorf(
				"%w: offering %s %s produced keys %s and %s",
				ErrKeyCollision,
				code,
				record.FirstLabel(),
				existing.Key,
				record.Key,
			)
		}
		byLabel[record.FirstLabel()] = course

		for _, section := range record.Sections {
			indexInstructor(catalog.Instructors, section, code)
		}
	}
	return catalog, nil
}

func indexInstructor(index map[string]*InstructorEntry, section MeetingSection, code string) {
	instructor := section.Instructor()
	if !instructor.IsPerson() {
		return
	}
	name := instructor.Name()
	entry, ok := index[name]
	if !ok {
		entry = &InstructorEntry{Name: name, Email: NoEmail}
		index[name] = entry
	}
	if entry.Email == NoEmail && section.Email != NoEmail && section.Email != "" {
		entry.Email = section.Email
	}
	if !slices.Contains(entry.Courses, code) {
		entry.Courses = append(entry.Courses, code)
	}
}
