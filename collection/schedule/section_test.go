package schedule

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testRun() *Run {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRun("FA24", time.Date(2024, time.October, 18, 9, 30, 0, 0, time.UTC), logger)
}

func clock(t *testing.T, hm string, am bool) Clock {
	t.Helper()
	c, err := NormalizeClock(hm, am)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestParseSection(t *testing.T) {
	run := testRun()
	run.AddEmails(map[string]string{"Smith, John": "jsmith@ucsd.edu"})

	tests := []struct {
		name  string
		token Token
		want  MeetingSection
	}{
		{
			name:  "lecture with id and seats",
			token: SectionToken("123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30", ""),
			want: MeetingSection{
				Index:       1,
				ID:          "123456",
				MeetingType: "LE",
				Label:       "A00",
				Days:        []Day{Monday, Wednesday, Friday},
				Start:       clock(t, "10:00", true),
				End:         clock(t, "10:50", true),
				Building:    "CENTR",
				Room:        "115",
				Enrollment: Enrollment{
					Kind:       EnrollmentNamedWithSeats,
					Instructor: Instructor{Last: "Smith", First: "John", Middle: Blank},
					Seats:      Seats{Taken: 5, Available: 30},
				},
				Email: "jsmith@ucsd.edu",
			},
		},
		{
			name:  "lecture without id",
			token: SectionToken("LE A00 TuTh 2:00p-3:20p WLH 2005 Smith, John", ""),
			want: MeetingSection{
				Index:       1,
				ID:          Blank,
				MeetingType: "LE",
				Label:       "A00",
				Days:        []Day{Tuesday, Thursday},
				Start:       clock(t, "2:00", false),
				End:         clock(t, "3:20", false),
				Building:    "WLH",
				Room:        "2005",
				Enrollment: Enrollment{
					Kind:       EnrollmentNamedNoSeats,
					Instructor: Instructor{Last: "Smith", First: "John", Middle: Blank},
				},
				Email: "jsmith@ucsd.edu",
			},
		},
		{
			name:  "time given but no room",
			token: SectionToken("234567 DI A01 F 12:00p-12:50p TBA TBA Staff 12 30", "ignored@ucsd.edu"),
			want: MeetingSection{
				Index:       1,
				ID:          "234567",
				MeetingType: "DI",
				Label:       "A01",
				Days:        []Day{Friday},
				Start:       clock(t, "12:00", false),
				End:         clock(t, "12:50", false),
				Building:    Blank,
				Room:        Blank,
				Enrollment: Enrollment{
					Kind:       EnrollmentNamedWithSeats,
					Instructor: StaffInstructor,
					Seats:      Seats{Taken: 12, Available: 30},
				},
				Email: "ignored@ucsd.edu",
			},
		},
		{
			name:  "everything to be arranged",
			token: SectionToken("345678 IN 001 TBA TBA TBA Staff Unlim", ""),
			want: MeetingSection{
				Index:       1,
				ID:          "345678",
				MeetingType: "IN",
				Label:       "001",
				Building:    Blank,
				Room:        Blank,
				Enrollment: Enrollment{
					Kind:       EnrollmentUnlimited,
					Instructor: StaffInstructor,
					Seats:      Seats{Taken: Unlimited, Available: Unlimited},
				},
				Email: NoEmail,
			},
		},
		{
			name:  "anonymous discussion",
			token: SectionToken("456789 DI A02 W 4:00p-4:50p CENTR 212 12 30", ""),
			want: MeetingSection{
				Index:       1,
				ID:          "456789",
				MeetingType: "DI",
				Label:       "A02",
				Days:        []Day{Wednesday},
				Start:       clock(t, "4:00", false),
				End:         clock(t, "4:50", false),
				Building:    "CENTR",
				Room:        "212",
				Enrollment: Enrollment{
					Kind:       EnrollmentSeatsNoName,
					Instructor: UnassignedInstructor,
					Seats:      Seats{Taken: 12, Available: 30},
				},
				Email: NoEmail,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseSection(run, 1, test.token)
			if err != nil {
				t.Fatalf("ParseSection(%q) returned error %v", test.token.Text, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseSection(%q) mismatch (-want +got):\n%s", test.token.Text, diff)
			}
		})
	}
}

func TestParseSectionGrammarGap(t *testing.T) {
	run := testRun()
	for _, text := range []string{
		"LE A00 MWF 10:00a-10:50a CENTR 115 Seminar Room Pending",
		"LE",
		"LE A00 MWF",
		"no digits here",
	} {
		_, err := ParseSection(run, 1, SectionToken(text, ""))
		if !errors.Is(err, ErrGrammarGap) {
			t.Errorf("ParseSection(%q): expected grammar gap got %v", text, err)
		}
	}
}

func TestParseExam(t *testing.T) {
	tests := []struct {
		token Token
		want  ExamRecord
	}{
		{
			token: ExamToken("FI 12/10/2024 Tu 8:00a-10:59a CENTR 115"),
			want: ExamRecord{
				Kind:     Final,
				Date:     "12/10/2024",
				Day:      "Tu",
				Start:    clock(t, "8:00", true),
				End:      clock(t, "10:59", true),
				Building: "CENTR",
				Room:     "115",
			},
		},
		{
			token: ExamToken("MI 10/25/2024 F 7:00p-8:50p TBA TBA"),
			want: ExamRecord{
				Kind:     Midterm,
				Date:     "10/25/2024",
				Day:      "F",
				Start:    clock(t, "7:00", false),
				End:      clock(t, "8:50", false),
				Building: Blank,
				Room:     Blank,
			},
		},
		{
			token: ExamToken("MI 10/25/2024 F TBA"),
			want: ExamRecord{
				Kind:     Midterm,
				Date:     "10/25/2024",
				Day:      "F",
				Building: Blank,
				Room:     Blank,
			},
		},
	}
	for _, test := range tests {
		got, err := ParseExam(test.token.Text)
		if err != nil {
			t.Errorf("ParseExam(%q) returned error %v", test.token.Text, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseExam(%q) mismatch (-want +got):\n%s", test.token.Text, diff)
		}
	}

	if _, err := ParseExam(ExamToken("FI 12/10/2024").Text); !errors.Is(err, ErrGrammarGap) {
		t.Errorf("expected grammar gap for a short exam row, got %v", err)
	}
}
