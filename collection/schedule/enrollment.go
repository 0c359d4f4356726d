package schedule

import (
	"math"
	"strconv"
	"strings"
)

const (
	StaffName = "Staff"
	NoEmail   = "No Email"

	// Unlimited is the seat count recorded for sections without an enrollment cap.
	Unlimited = math.MaxInt32
)

type Instructor struct {
	Last   string
	First  string
	Middle string
}

var (
	StaffInstructor      = Instructor{Last: StaffName, First: Blank, Middle: Blank}
	UnassignedInstructor = Instructor{Last: Blank, First: Blank, Middle: Blank}
)

func (i Instructor) IsStaff() bool { return i == StaffInstructor }

// IsPerson is false for the staff and unassigned sentinels.
func (i Instructor) IsPerson() bool {
	return i != StaffInstructor && i != UnassignedInstructor && i.Last != Blank && i.Last != ""
}

// Name renders the instructor the way the schedule prints it: "Last, First Middle".
func (i Instructor) Name() string {
	switch {
	case i.IsStaff():
		return StaffName
	case !i.IsPerson():
		return Blank
	}
	name := i.Last
	if i.First != Blank {
		name += ", " + i.First
	}
	if i.Middle != Blank {
		name += " " + i.Middle
	}
	return name
}

// ParseInstructor reads "Last, First [Middle]". A bare "Staff" is the staff sentinel.
func ParseInstructor(s string) Instructor {
	s = strings.TrimSpace(s)
	if s == StaffName {
		return StaffInstructor
	}
	instructor := UnassignedInstructor
	last, rest, _ := strings.Cut(s, ",")
	if last = strings.TrimSpace(last); last != "" {
		instructor.Last = last
	}
	names := strings.Fields(rest)
	if len(names) > 0 {
		instructor.First = names[0]
	}
	if len(names) > 1 {
		instructor.Middle = names[1]
	}
	return instructor
}

type Seats struct {
	Taken     int
	Available int
}

func (s Seats) IsUnlimited() bool {
	return s.Taken == Unlimited && s.Available == Unlimited
}

// Open is true when there is room left without going through the waitlist.
func (s Seats) Open() bool {
	return s.IsUnlimited() || s.Taken < s.Available
}

type EnrollmentKind int

const (
	// nothing followed the room
	EnrollmentUnlisted EnrollmentKind = iota
	EnrollmentWaitlisted
	EnrollmentUnlimited
	EnrollmentNamedWithSeats
	EnrollmentStaffOnly
	EnrollmentNamedNoSeats
	EnrollmentSeatsNoName
)

var enrollmentKindNames = map[EnrollmentKind]string{
	EnrollmentUnlisted:       "unlisted",
	EnrollmentWaitlisted:     "waitlisted",
	EnrollmentUnlimited:      "unlimited",
	EnrollmentNamedWithSeats: "named-with-seats",
	EnrollmentStaffOnly:      "staff-only",
	EnrollmentNamedNoSeats:   "named-no-seats",
	EnrollmentSeatsNoName:    "seats-no-name",
}

func (k EnrollmentKind) String() string { return enrollmentKindNames[k] }

func (k EnrollmentKind) HasSeats() bool {
	switch k {
	case EnrollmentWaitlisted, EnrollmentUnlimited, EnrollmentNamedWithSeats, EnrollmentSeatsNoName:
		return true
	}
	return false
}

// Enrollment is what the tail of a section row says about who teaches it and
// how full it is. Seats is only meaningful when Kind.HasSeats().
type Enrollment struct {
	Kind       EnrollmentKind
	Instructor Instructor
	Seats      Seats
}

func (e Enrollment) HasSeats() bool { return e.Kind.HasSeats() }

// ParseEnrollment applies the enrollment grammar to whatever follows the room.
// The checks run in a fixed order, a waitlisted row also contains digits so
// "FULL" has to be tried before the generic name-then-seats layout.
//
//	Smith, John FULL Waitlist(5) 30   waitlisted, taken = 5 + 30
//	Staff Unlim                       unlimited
//	Smith, John 5 30                  named with seats
//	Staff                             staff only
//	Smith, John                       named, no seats
//	12 30                             seats, no name
func ParseEnrollment(text string) (Enrollment, error) {
	text = strings.TrimSpace(text)
	numLoc := firstDigit.FindStringIndex(text)
	digitAt := 0
	if numLoc != nil {
		digitAt = numLoc[0]
	}

	switch {
	case strings.Contains(text, "FULL"):
		return parseWaitlisted(text)

	case strings.Contains(text, "Unlim"):
		instructor := UnassignedInstructor
		if strings.Contains(text, StaffName+" ") {
			instructor = StaffInstructor
		} else if at := strings.Index(text, "Unlim"); at > 0 {
			instructor = ParseInstructor(text[:at-1])
		}
		return Enrollment{
			Kind:       EnrollmentUnlimited,
			Instructor: instructor,
			Seats:      Seats{Taken: Unlimited, Available: Unlimited},
		}, nil

	case digitAt != 0:
		seats, err := parseSeatPair(text[digitAt:])
		if err != nil {
			return Enrollment{}, err
		}
		return Enrollment{
			Kind:       EnrollmentNamedWithSeats,
			Instructor: ParseInstructor(text[:digitAt]),
			Seats:      seats,
		}, nil

	case text == StaffName:
		return Enrollment{Kind: EnrollmentStaffOnly, Instructor: StaffInstructor}, nil

	case strings.Contains(text, ","):
		return Enrollment{Kind: EnrollmentNamedNoSeats, Instructor: ParseInstructor(text)}, nil

	case text != "":
		seats, err := parseSeatPair(text)
		if err != nil {
			return Enrollment{}, err
		}
		return Enrollment{Kind: EnrollmentSeatsNoName, Instructor: UnassignedInstructor, Seats: seats}, nil
	}

	return Enrollment{Kind: EnrollmentUnlisted, Instructor: UnassignedInstructor}, nil
}

// "Smith, John FULL Waitlist(5) 30": the parenthesized count is how far over
// the cap the waitlist goes, both numbers are counted as taken.
func parseWaitlisted(text string) (Enrollment, error) {
	at := strings.Index(text, "FULL")
	instructor := UnassignedInstructor
	if at != 0 {
		if strings.Contains(text, StaffName) {
			instructor = StaffInstructor
		} else {
			instructor = ParseInstructor(text[:at-1])
		}
	}

	rest := text[at:]
	open := strings.Index(rest, "(")
	closing := strings.Index(rest, ")")
	if open < 0 || closing < open {
		return Enrollment{}, grammarGap("waitlisted enrollment", text)
	}
	over, ok := seatCount(rest[open+1 : closing])
	if !ok {
		return Enrollment{}, grammarGap("waitlisted enrollment", text)
	}
	available, ok := seatCount(rest[closing+1:])
	if !ok || over+available >= Unlimited {
		return Enrollment{}, grammarGap("waitlisted enrollment", text)
	}

	return Enrollment{
		Kind:       EnrollmentWaitlisted,
		Instructor: instructor,
		Seats:      Seats{Taken: over + available, Available: available},
	}, nil
}

// seatCount reads a non negative count that stays below Unlimited, so it can
// never be mistaken for an uncapped section or overflow a 32 bit column.
func seatCount(field string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil || n < 0 || n >= Unlimited {
		return 0, false
	}
	return n, true
}

func parseSeatPair(text string) (Seats, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Seats{}, grammarGap("seat counts", text)
	}
	taken, ok := seatCount(fields[0])
	if !ok {
		return Seats{}, grammarGap("seat counts", text)
	}
	available, ok := seatCount(fields[1])
	if !ok {
		return Seats{}, grammarGap("seat counts", text)
	}
	return Seats{Taken: taken, Available: available}, nil
}
