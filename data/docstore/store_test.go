package docstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Pjt727/soc/collection/schedule"
)

func testCatalog(t *testing.T) (*schedule.Run, schedule.Catalog) {
	t.Helper()
	return testTermCatalog(t, "FA24", "jsmith@ucsd.edu")
}

func testTermCatalog(t *testing.T, term string, email string) (*schedule.Run, schedule.Catalog) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	run := schedule.NewRun(term, time.Date(2024, 10, 18, 9, 30, 0, 0, time.UTC), logger)
	pages := [][]schedule.Token{{
		schedule.Sentinel(),
		schedule.HeaderToken("CSE", "100 Advanced Data Structures ( 4 Units)"),
		schedule.SectionToken("123456 LE A00 MWF 10:00a-10:50a CENTR 115 Smith, John 5 30", email),
		schedule.SectionToken("123457 DI A01 TBA TBA TBA Staff", ""),
		schedule.ExamToken("FI 12/10/2024 Tu 8:00a-10:59a CENTR 115"),
	}}
	catalog, err := schedule.Build(run, pages)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return run, catalog
}

func TestCourseDocument(t *testing.T) {
	run, catalog := testCatalog(t)
	course := catalog.Courses["CSE 100"]["A00"]
	doc := toCourseDoc(run, course)

	if doc.Code != "CSE 100" || doc.Key != course.Key.String() || doc.LastRun != run.ID.String() {
		t.Errorf("unexpected course fields %+v", doc)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}
	lecture := doc.Sections[0]
	if lecture.Start != "10:00" || lecture.End != "10:50" {
		t.Errorf("unexpected lecture time %s-%s", lecture.Start, lecture.End)
	}
	if lecture.SeatsTaken == nil || *lecture.SeatsTaken != 5 {
		t.Errorf("unexpected lecture seats %v", lecture.SeatsTaken)
	}
	if doc.Sections[1].SeatsTaken != nil {
		t.Error("staff only section should not carry seats")
	}
	if doc.Final == nil || doc.Final.Start != "8:00" || doc.Midterm != nil {
		t.Errorf("unexpected exams final=%+v midterm=%+v", doc.Final, doc.Midterm)
	}
}

func TestCourseWritesPushSnapshot(t *testing.T) {
	run, catalog := testCatalog(t)
	writes := courseWrites(run, catalog)
	if len(writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(writes))
	}
	model, ok := writes[0].(*mongo.UpdateOneModel)
	if !ok {
		t.Fatalf("unexpected write model %T", writes[0])
	}
	if model.Upsert == nil || !*model.Upsert {
		t.Error("course write must upsert")
	}
	key := catalog.Courses["CSE 100"]["A00"].Key
	if filter := model.Filter.(bson.D); filter[0].Value != "FA24/"+key.String() {
		t.Errorf("unexpected filter %v", model.Filter)
	}
	update := model.Update.(bson.M)
	pushed, ok := update["$push"].(bson.M)["snapshots"].(snapshotDoc)
	if !ok {
		t.Fatalf("snapshot not pushed: %v", update)
	}
	if pushed.Stamp != 202410180930 || pushed.Taken != 5 || pushed.Available != 30 {
		t.Errorf("unexpected snapshot %+v", pushed)
	}
}

func TestInstructorWrites(t *testing.T) {
	run, catalog := testCatalog(t)
	writes := instructorWrites(run, catalog)
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(writes))
	}
	update := writes[0].(*mongo.UpdateOneModel).Update.(bson.M)
	insert := update["$setOnInsert"].(bson.M)
	if insert["email"] != "jsmith@ucsd.edu" || insert["name"] != "Smith, John" {
		t.Errorf("unexpected insert fields %v", insert)
	}

	replace := writes[1].(*mongo.UpdateOneModel)
	filter := replace.Filter.(bson.D)
	if len(filter) != 2 || filter[1].Key != "email" || filter[1].Value != schedule.NoEmail {
		t.Errorf("email should only replace the placeholder, filter %v", filter)
	}
	set := replace.Update.(bson.M)["$set"].(bson.M)
	if set["email"] != "jsmith@ucsd.edu" {
		t.Errorf("unexpected email update %v", set)
	}
}

func TestInstructorWritesWithoutEmail(t *testing.T) {
	run, catalog := testTermCatalog(t, "FA24", "")
	writes := instructorWrites(run, catalog)
	if len(writes) != 1 {
		t.Fatalf("got %d writes, want only the upsert", len(writes))
	}
	insert := writes[0].(*mongo.UpdateOneModel).Update.(bson.M)["$setOnInsert"].(bson.M)
	if insert["email"] != schedule.NoEmail {
		t.Errorf("email = %v, want %q", insert["email"], schedule.NoEmail)
	}
}

func TestStoreAgainstMongo(t *testing.T) {
	ctx := context.Background()
	store, err := Connect(ctx)
	if errors.Is(err, ErrNotConfigured) {
		t.Skip("MONGO_URI not set")
	}
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer store.Close(ctx)

	run, catalog := testCatalog(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := store.SaveCatalog(ctx, logger, run, catalog); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	key := catalog.Courses["CSE 100"]["A00"].Key
	var saved struct {
		Code      string        `bson:"code"`
		Snapshots []snapshotDoc `bson:"snapshots"`
	}
	err = store.courses.FindOne(ctx, bson.D{{Key: "_id", Value: courseID("FA24", key)}}).Decode(&saved)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if saved.Code != "CSE 100" || len(saved.Snapshots) == 0 {
		t.Errorf("unexpected document %+v", saved)
	}
}

func TestStoreUpgradesPlaceholderEmail(t *testing.T) {
	ctx := context.Background()
	store, err := Connect(ctx)
	if errors.Is(err, ErrNotConfigured) {
		t.Skip("MONGO_URI not set")
	}
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer store.Close(ctx)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	term := "T" + time.Now().Format("150405.000000")
	for _, email := range []string{"", "jsmith@ucsd.edu", "other@ucsd.edu"} {
		run, catalog := testTermCatalog(t, term, email)
		if err := store.SaveCatalog(ctx, logger, run, catalog); err != nil {
			t.Fatalf("SaveCatalog(%q): %v", email, err)
		}
	}

	var saved struct {
		Email string `bson:"email"`
	}
	err = store.instructors.FindOne(ctx, bson.D{{Key: "_id", Value: instructorID(term, "Smith, John")}}).Decode(&saved)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if saved.Email != "jsmith@ucsd.edu" {
		t.Errorf("email = %q, want the first real address", saved.Email)
	}
}
