package schedule

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func courseGroup(header string, section string, exam string) Group {
	dept, rest, _ := strings.Cut(header, " ")
	return Group{
		HeaderToken(dept, rest),
		SectionToken(section, ""),
		ExamToken(exam),
	}
}

func TestIdentityKeyDeterministic(t *testing.T) {
	run := testRun()
	a := courseGroup(
		"CSE 100 Advanced Data Structures ( 4 Units)",
		"123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30",
		"FI 12/10/2024 Tu 8:00a-10:59a CENTR 115",
	)
	sameMaterial := courseGroup(
		"CSE 100 Advanced Data Structures ( 4 Units)",
		"123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30",
		"FI 12/10/2024 Tu 8:00a-10:59a CENTR 115",
	)
	otherSeats := courseGroup(
		"CSE 100 Advanced Data Structures ( 4 Units)",
		"123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 29 30",
		"FI 12/10/2024 Tu 8:00a-10:59a CENTR 115",
	)
	otherLabel := courseGroup(
		"CSE 100 Advanced Data Structures ( 4 Units)",
		"123456 LE B00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30",
		"FI 12/10/2024 Tu 8:00a-10:59a CENTR 115",
	)
	otherExam := courseGroup(
		"CSE 100 Advanced Data Structures ( 4 Units)",
		"123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30",
		"FI 12/11/2024 W 8:00a-10:59a CENTR 115",
	)

	key := func(g Group) Key {
		record, err := ParseGroup(run, g)
		if err != nil {
			t.Fatal(err)
		}
		return record.Key
	}

	if key(a) != key(sameMaterial) {
		t.Error("identical key material gave different keys")
	}
	if key(a) != key(otherSeats) {
		t.Error("seat counts changed the key")
	}
	if key(a) == key(otherLabel) {
		t.Error("first section label did not change the key")
	}
	if key(a) == key(otherExam) {
		t.Error("exam did not change the key")
	}
}

func TestCheckCollisions(t *testing.T) {
	records := []CourseRecord{
		{Key: 1, Header: CourseHeader{Department: "CSE", Number: "100"}},
		{Key: 2, Header: CourseHeader{Department: "CSE", Number: "101"}},
		{Key: 1, Header: CourseHeader{Department: "CSE", Number: "100"}},
		{Key: 3, Header: CourseHeader{Department: "BILD", Number: "1"}},
	}
	err := CheckCollisions(nil, records)
	if !errors.Is(err, ErrKeyCollision) {
		t.Fatalf("expected a collision, got %v", err)
	}
	var collision *CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected a *CollisionError, got %T", err)
	}
	if !collision.HasKey(1) || len(collision.Keys) != 1 {
		t.Errorf("unexpected keys %v", collision.Keys)
	}
	if collision.Total != 4 || collision.Unique != 3 {
		t.Errorf("got total %d unique %d", collision.Total, collision.Unique)
	}
	if !slices.Equal(collision.Offenders, []string{"CSE 100", "CSE 100"}) {
		t.Errorf("unexpected offenders %v", collision.Offenders)
	}

	if err := CheckCollisions(nil, records[:2]); err != nil {
		t.Errorf("expected no collision, got %v", err)
	}
}
