package schedule

import (
	"fmt"
	"iter"
	"log/slog"
	"regexp"
	"strings"
)

const cancelledMarker = "Cancelled"

// a real listing always carries at least one six digit section id somewhere
var sixDigitID = regexp.MustCompile(`\D(\d{6})\D`)

// DropReason explains why the segmenter skipped a group.
type DropReason string

const (
	DropCancelled DropReason = "cancelled"
	DropTooShort  DropReason = "too short"
	DropNoID      DropReason = "no six digit id"
)

// Segment flattens the pages in order and yields one group per course listing.
// Each group begins after a sentinel token and excludes it.
// Tokens before the first sentinel, cancelled listings, groups of fewer than
// three tokens and groups without a six digit id are skipped silently,
// only a debug line is written for each.
func Segment(logger *slog.Logger, pages [][]Token) iter.Seq[Group] {
	return func(yield func(Group) bool) {
		var current Group
		started := false
		emit := func() bool {
			if !started {
				return true
			}
			if reason, drop := dropReason(current); drop {
				if logger != nil {
					logger.Debug("dropping course group", "reason", reason, "tokens", len(current))
				}
				return true
			}
			return yield(current)
		}

		for _, page := range pages {
			for _, token := range page {
				if token.Kind != RowSentinel {
					if started {
						current = append(current, token)
					}
					continue
				}
				if !emit() {
					return
				}
				current = nil
				started = true
			}
		}
		emit()
	}
}

func dropReason(g Group) (DropReason, bool) {
	for _, token := range g {
		if strings.Contains(token.Text, cancelledMarker) {
			return DropCancelled, true
		}
	}
	if len(g) < 3 {
		return DropTooShort, true
	}
	if !sixDigitID.MatchString(serialize(g)) {
		return DropNoID, true
	}
	return "", false
}

func serialize(g Group) string {
	return fmt.Sprintf("%q", g.Texts())
}
