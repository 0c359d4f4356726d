package logginghelpers

import "log/slog"

const (
	// Level Debug -4
	LevelReportIO slog.Level = -2
	// Level Info 0
	// Level Warn 4
	// Level Error 8
	LevelBrokenProcess slog.Level = 12
)

var levelNames = map[slog.Level]string{
	LevelReportIO:      "REPORT_IO",
	LevelBrokenProcess: "BROKEN_PROCESS",
}

// ParseLevel accepts the standard slog names plus the custom ones
func ParseLevel(name string) (slog.Level, error) {
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	var level slog.Level
	err := level.UnmarshalText([]byte(name))
	return level, err
}

// ReplaceLevelNames is a slog.HandlerOptions.ReplaceAttr that prints the
// custom levels by name instead of as offsets like "ERROR+4"
func ReplaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	if name, ok := levelNames[level]; ok {
		a.Value = slog.StringValue(name)
	}
	return a
}
