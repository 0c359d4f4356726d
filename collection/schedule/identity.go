package schedule

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strconv"

	logginghelpers "github.com/Pjt727/soc/data/logging-helpers"
)

// Key identifies one offering across scrapes. Seat counts are not part of it
// so re-scraping the same offering reproduces the same key.
type Key uint64

func (k Key) String() string { return strconv.FormatUint(uint64(k), 10) }

// fields are separated with the ascii unit separator
const keySeparator = "\x1f"

// IdentityKey hashes the header, the first exam seen in the group and the
// first section's label.
func IdentityKey(header CourseHeader, firstExam *ExamRecord, firstLabel string) Key {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte(keySeparator))
		}
	}
	write(header.Department, header.Number, header.Title, header.Units, header.Restrictions)
	if firstExam != nil {
		write(
			string(firstExam.Kind),
			firstExam.Date,
			firstExam.Day,
			firstExam.Start.String(),
			firstExam.End.String(),
			firstExam.Building,
			firstExam.Room,
		)
	} else {
		write("no exam")
	}
	write(firstLabel)
	return Key(h.Sum64())
}

// CheckCollisions must see the whole batch. Any key that shows up twice is
// returned as a *CollisionError.
func CheckCollisions(logger *slog.Logger, records []CourseRecord) error {
	seen := make(map[Key]int, len(records))
	var duplicates []Key
	for _, record := range records {
		seen[record.Key]++
		if seen[record.Key] == 2 {
			duplicates = append(duplicates, record.Key)
		}
	}

	if logger != nil {
		logger.Info("identity key diagnostics", "keys", len(records), "unique", len(seen))
	}
	if len(duplicates) == 0 {
		return nil
	}

	collision := &CollisionError{
		Total:  len(records),
		Unique: len(seen),
		Keys:   duplicates,
	}
	for _, record := range records {
		if seen[record.Key] > 1 {
			collision.Offenders = append(collision.Offenders, record.Header.Code())
		}
	}
	if logger != nil {
		logger.Log(context.Background(), logginghelpers.LevelBrokenProcess, "identity keys collided",
			"keys", duplicates,
			"courses", collision.Offenders,
		)
	}
	return collision
}
