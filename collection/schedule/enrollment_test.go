package schedule

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEnrollment(t *testing.T) {
	smith := Instructor{Last: "Smith", First: "John", Middle: Blank}
	tests := []struct {
		name string
		text string
		want Enrollment
	}{
		{
			name: "waitlisted with a name",
			text: "Smith, John FULL Waitlist(5) 30",
			want: Enrollment{Kind: EnrollmentWaitlisted, Instructor: smith, Seats: Seats{Taken: 35, Available: 30}},
		},
		{
			name: "waitlisted staff",
			text: "Staff FULL Waitlist(2) 40",
			want: Enrollment{Kind: EnrollmentWaitlisted, Instructor: StaffInstructor, Seats: Seats{Taken: 42, Available: 40}},
		},
		{
			name: "waitlisted without instructor",
			text: "FULL Waitlist(3) 20",
			want: Enrollment{Kind: EnrollmentWaitlisted, Instructor: UnassignedInstructor, Seats: Seats{Taken: 23, Available: 20}},
		},
		{
			name: "unlimited staff",
			text: "Staff Unlim",
			want: Enrollment{Kind: EnrollmentUnlimited, Instructor: StaffInstructor, Seats: Seats{Taken: Unlimited, Available: Unlimited}},
		},
		{
			name: "unlimited with middle name",
			text: "Doe, Jane Anne Unlim",
			want: Enrollment{
				Kind:       EnrollmentUnlimited,
				Instructor: Instructor{Last: "Doe", First: "Jane", Middle: "Anne"},
				Seats:      Seats{Taken: Unlimited, Available: Unlimited},
			},
		},
		{
			name: "name with seats",
			text: "Smith, John 5 30",
			want: Enrollment{Kind: EnrollmentNamedWithSeats, Instructor: smith, Seats: Seats{Taken: 5, Available: 30}},
		},
		{
			name: "staff with seats",
			text: "Staff 10 30",
			want: Enrollment{Kind: EnrollmentNamedWithSeats, Instructor: StaffInstructor, Seats: Seats{Taken: 10, Available: 30}},
		},
		{
			name: "staff only",
			text: "Staff",
			want: Enrollment{Kind: EnrollmentStaffOnly, Instructor: StaffInstructor},
		},
		{
			name: "name without seats",
			text: "Smith, John",
			want: Enrollment{Kind: EnrollmentNamedNoSeats, Instructor: smith},
		},
		{
			name: "seats without name",
			text: "12 30",
			want: Enrollment{Kind: EnrollmentSeatsNoName, Instructor: UnassignedInstructor, Seats: Seats{Taken: 12, Available: 30}},
		},
		{
			name: "nothing",
			text: "",
			want: Enrollment{Kind: EnrollmentUnlisted, Instructor: UnassignedInstructor},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseEnrollment(test.text)
			if err != nil {
				t.Fatalf("ParseEnrollment(%q) returned error %v", test.text, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseEnrollment(%q) mismatch (-want +got):\n%s", test.text, diff)
			}
		})
	}
}

func TestParseEnrollmentGrammarGaps(t *testing.T) {
	for _, text := range []string{
		"Room Pending",
		"Smith, John 5",
		"Smith, John 5 30 2",
		"Smith, John FULL",
		"Smith, John FULL Waitlist(x) 30",
		"12 thirty",
		"Smith, John 5 2147483648",
		"Smith, John 2147483647 30",
		"Smith, John FULL Waitlist(2147483000) 2000",
	} {
		_, err := ParseEnrollment(text)
		if !errors.Is(err, ErrGrammarGap) {
			t.Errorf("ParseEnrollment(%q): expected grammar gap got %v", text, err)
		}
	}
}

func TestEnrollmentKindHasSeats(t *testing.T) {
	withSeats := []EnrollmentKind{EnrollmentWaitlisted, EnrollmentUnlimited, EnrollmentNamedWithSeats, EnrollmentSeatsNoName}
	withoutSeats := []EnrollmentKind{EnrollmentUnlisted, EnrollmentStaffOnly, EnrollmentNamedNoSeats}
	for _, kind := range withSeats {
		if !kind.HasSeats() {
			t.Errorf("%s should carry seats", kind)
		}
	}
	for _, kind := range withoutSeats {
		if kind.HasSeats() {
			t.Errorf("%s should not carry seats", kind)
		}
	}
}

func TestInstructorName(t *testing.T) {
	tests := []struct {
		instructor Instructor
		want       string
	}{
		{Instructor{Last: "Smith", First: "John", Middle: Blank}, "Smith, John"},
		{Instructor{Last: "Doe", First: "Jane", Middle: "Anne"}, "Doe, Jane Anne"},
		{StaffInstructor, StaffName},
		{UnassignedInstructor, Blank},
	}
	for _, test := range tests {
		if got := test.instructor.Name(); got != test.want {
			t.Errorf("got %q want %q", got, test.want)
		}
	}
}
