package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// the page text did not fit any known layout, the run must not continue
	ErrGrammarGap = errors.New("unparseable schedule text")

	// two course records produced the same identity key
	ErrKeyCollision = errors.New("identity key collision")

	ErrUnknownRestriction = errors.New("unknown restriction code")
)

func grammarGap(stage string, raw string) error {
	return fmt.Errorf("%w in %s: `%s`", ErrGrammarGap, stage, raw)
}

// CollisionError lists every key that was seen more than once in a batch
// along with the course codes of all records that share one of those keys.
type CollisionError struct {
	Total     int
	Unique    int
	Keys      []Key
	Offenders []string
}

func (e *CollisionError) Error() string {
	keys := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		keys[i] = k.String()
	}
	return fmt.Sprintf(
		"%s: %d keys but %d unique, duplicated [%s] from courses [%s]",
		ErrKeyCollision,
		e.Total,
		e.Unique,
		strings.Join(keys, ", "),
		strings.Join(e.Offenders, ", "),
	)
}

func (e *CollisionError) Unwrap() error { return ErrKeyCollision }

func (e *CollisionError) HasKey(k Key) bool {
	return slices.Contains(e.Keys, k)
}
