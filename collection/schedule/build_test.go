package schedule

import (
	"errors"
	"slices"
	"testing"
)

func twoCoursePages() [][]Token {
	return [][]Token{
		{
			Sentinel(),
			HeaderToken("CSE", "100 Advanced Data Structures ( 4 Units)"),
			SectionToken("123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30", "jsmith@ucsd.edu"),
			ExamToken("FI 12/10/2024 Tu 8:00a-10:59a CENTR 115"),
			Sentinel(),
			HeaderToken("CSE", "8A Introduction to Programming ( 4 Units)"),
		},
		{
			SectionToken("654321 DI B01 Tu 1:00p-1:50p WLH 2001 Staff Unlim", ""),
			ExamToken("FI 12/09/2024 M 3:00p-5:59p WLH 2001"),
		},
	}
}

func TestBuildTwoCourses(t *testing.T) {
	run := testRun()
	catalog, err := Build(run, twoCoursePages())
	if err != nil {
		t.Fatal(err)
	}

	a, ok := catalog.Courses["CSE 100"]["A00"]
	if !ok {
		t.Fatalf("missing CSE 100, got %v", catalog.Courses)
	}
	lecture := a.Sections[0]
	if lecture.Instructor() != (Instructor{Last: "Smith", First: "John", Middle: Blank}) {
		t.Errorf("unexpected instructor %+v", lecture.Instructor())
	}
	if lecture.Enrollment.Seats != (Seats{Taken: 5, Available: 30}) {
		t.Errorf("unexpected seats %+v", lecture.Enrollment.Seats)
	}
	if a.Waitlisted {
		t.Error("CSE 100 should not be waitlisted")
	}
	if a.Final == nil || a.Final.Room != "115" {
		t.Errorf("unexpected final %+v", a.Final)
	}
	if !a.Snapshot.Valid || a.Snapshot.Timestamp != 202410180930 {
		t.Errorf("unexpected snapshot %+v", a.Snapshot)
	}

	b, ok := catalog.Courses["CSE 8A"]["B01"]
	if !ok {
		t.Fatalf("missing CSE 8A, got %v", catalog.Courses)
	}
	discussion := b.Sections[0]
	if !discussion.Instructor().IsStaff() {
		t.Errorf("expected staff, got %+v", discussion.Instructor())
	}
	if !discussion.Enrollment.Seats.IsUnlimited() {
		t.Errorf("expected unlimited seats, got %+v", discussion.Enrollment.Seats)
	}

	entry, ok := catalog.Instructors["Smith, John"]
	if !ok || entry.Email != "jsmith@ucsd.edu" || !slices.Equal(entry.Courses, []string{"CSE 100"}) {
		t.Errorf("unexpected instructor entry %+v", entry)
	}
	if _, ok := catalog.Instructors[StaffName]; ok {
		t.Error("staff should not be indexed")
	}
}

func TestBuildCollision(t *testing.T) {
	run := testRun()
	pages := twoCoursePages()
	// the same CSE 100 listing printed twice
	pages = append(pages, pages[0][:4])

	_, err := Build(run, pages)
	var collision *CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected a collision error, got %v", err)
	}
	if len(collision.Keys) != 1 || !slices.Equal(collision.Offenders, []string{"CSE 100", "CSE 100"}) {
		t.Errorf("unexpected collision %+v", collision)
	}
}

func TestBuildGrammarGap(t *testing.T) {
	run := testRun()
	pages := [][]Token{{
		Sentinel(),
		HeaderToken("CSE", "100 Advanced Data Structures ( 4 Units)"),
		SectionToken("123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 thirty", ""),
		ExamToken("FI 12/10/2024 Tu 8:00a-10:59a CENTR 115"),
	}}
	if _, err := Build(run, pages); !errors.Is(err, ErrGrammarGap) {
		t.Errorf("expected grammar gap, got %v", err)
	}
}
