package schedule

import (
	"log/slog"
	"maps"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Run carries everything that belongs to one scrape of one term.
// A Run is not safe for concurrent use, callers merge e-mails before Build.
type Run struct {
	ID      uuid.UUID
	Term    string
	Started time.Time
	Logger  *slog.Logger

	// instructor display name ("Last, First") -> e-mail
	emails map[string]string
}

func NewRun(term string, started time.Time, logger *slog.Logger) *Run {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Run{
		ID:      id,
		Term:    term,
		Started: started,
		Logger:  logger.With(slog.String("run", id.String()), slog.String("term", term)),
		emails:  map[string]string{},
	}
}

// Timestamp is the scrape time as YYYYMMDDhhmm, the key used for seat snapshots.
func (r *Run) Timestamp() int64 {
	stamp, _ := strconv.ParseInt(r.Started.Format("200601021504"), 10, 64)
	return stamp
}

// AddEmails merges the e-mail side channel of one page, earlier entries win.
func (r *Run) AddEmails(emails map[string]string) {
	for name, email := range emails {
		if _, ok := r.emails[name]; ok || email == "" {
			continue
		}
		r.emails[name] = email
	}
}

func (r *Run) Emails() map[string]string {
	return maps.Clone(r.emails)
}

func (r *Run) emailFor(name string) (string, bool) {
	email, ok := r.emails[name]
	return email, ok
}
