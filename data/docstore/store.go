// Package docstore saves catalogs to MongoDB, one document per course offering
// and one per instructor.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pjt727/soc/collection/schedule"
)

var ErrNotConfigured = errors.New("MONGO_URI is not set")

type Store struct {
	client      *mongo.Client
	runs        *mongo.Collection
	courses     *mongo.Collection
	instructors *mongo.Collection
}

// Connect uses MONGO_URI and MONGO_DATABASE (default "soc")
func Connect(ctx context.Context) (*Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, ErrNotConfigured
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "soc"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to data base: %w", err)
	}
	db := client.Database(database)
	store := &Store{
		client:      client,
		runs:        db.Collection("runs"),
		courses:     db.Collection("courses"),
		instructors: db.Collection("instructors"),
	}

	if indexName, err := store.courses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "term", Value: 1}, {Key: "code", Value: 1}},
	}); err != nil {
		return nil, fmt.Errorf("creating course code index %s: %w", indexName, err)
	}
	return store, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// courseWrites replaces each course's parsed fields and pushes this run's seat
// snapshot so repeated runs build up a history
func courseWrites(run *schedule.Run, catalog schedule.Catalog) []mongo.WriteModel {
	var writes []mongo.WriteModel
	for _, course := range catalog.Offerings() {
		update := bson.M{"$set": toCourseDoc(run, course)}
		if course.Snapshot.Valid {
			update["$push"] = bson.M{"snapshots": snapshotDoc{
				Stamp:     course.Snapshot.Timestamp,
				Run:       run.ID.String(),
				Taken:     course.Snapshot.Seats.Taken,
				Available: course.Snapshot.Seats.Available,
			}}
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: courseID(run.Term, course.Key)}}).
			SetUpdate(update).
			SetUpsert(true))
	}
	return writes
}

// instructorWrites adds new course codes to each instructor. An address
// already stored is kept unless it is the "No Email" placeholder, which a
// real address from a later run replaces.
func instructorWrites(run *schedule.Run, catalog schedule.Catalog) []mongo.WriteModel {
	var writes []mongo.WriteModel
	for _, name := range catalog.InstructorNames() {
		entry := catalog.Instructors[name]
		id := instructorID(run.Term, name)
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: id}}).
			SetUpdate(bson.M{
				"$setOnInsert": bson.M{"term": run.Term, "name": entry.Name, "email": entry.Email},
				"$addToSet":    bson.M{"courses": bson.M{"$each": entry.Courses}},
			}).
			SetUpsert(true))
		if entry.Email == schedule.NoEmail {
			continue
		}
		// runs after the upsert because the bulk write is ordered
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.D{
				{Key: "_id", Value: id},
				{Key: "email", Value: schedule.NoEmail},
			}).
			SetUpdate(bson.M{"$set": bson.M{"email": entry.Email}}))
	}
	return writes
}

func (s *Store) SaveCatalog(
	ctx context.Context,
	logger *slog.Logger,
	run *schedule.Run,
	catalog schedule.Catalog,
) error {
	if _, err := s.runs.InsertOne(ctx, runDoc{
		ID:          run.ID.String(),
		Term:        run.Term,
		Stamp:       run.Timestamp(),
		Courses:     len(catalog.Offerings()),
		Instructors: len(catalog.Instructors),
	}); err != nil {
		logger.Error("Error inserting run document", "error", err)
		return fmt.Errorf("inserting run: %w", err)
	}

	ordered := options.BulkWrite().SetOrdered(true)
	if writes := courseWrites(run, catalog); len(writes) != 0 {
		result, err := s.courses.BulkWrite(ctx, writes, ordered)
		if err != nil {
			logger.Error("Error writing course documents", "error", err)
			return fmt.Errorf("writing courses: %w", err)
		}
		logger.Info("Saved course documents",
			"upserted", result.UpsertedCount,
			"modified", result.ModifiedCount,
		)
	}
	if writes := instructorWrites(run, catalog); len(writes) != 0 {
		if _, err := s.instructors.BulkWrite(ctx, writes, ordered); err != nil {
			logger.Error("Error writing instructor documents", "error", err)
			return fmt.Errorf("writing instructors: %w", err)
		}
	}
	return nil
}
