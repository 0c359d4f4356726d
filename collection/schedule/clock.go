package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	Blank = "Blank"
	TBA   = "TBA"
)

type Day string

const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "R"
	Friday    Day = "F"
	Saturday  Day = "S"
)

const maxDays = 5

var dayPattern = regexp.MustCompile(`[A-Z][^A-Z]*`)

var dayCodes = map[string]Day{
	"M":  Monday,
	"T":  Tuesday,
	"Tu": Tuesday,
	"W":  Wednesday,
	"R":  Thursday,
	"Th": Thursday,
	"F":  Friday,
	"S":  Saturday,
	"Sa": Saturday,
}

// SplitDays breaks a day string such as "MWF" or "TuTh" into day codes, a new
// day starts at every capital letter. "TBA" has no days.
// Only the first five days are kept.
func SplitDays(s string) ([]Day, error) {
	if s == TBA || s == "" {
		return nil, nil
	}
	matches := dayPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil, grammarGap("days", s)
	}
	days := make([]Day, 0, min(len(matches), maxDays))
	for _, m := range matches[:min(len(matches), maxDays)] {
		day, ok := dayCodes[m]
		if !ok {
			return nil, grammarGap("days", s)
		}
		days = append(days, day)
	}
	return days, nil
}

// DaySlots pads days out to the five fixed slots, unused slots are Blank.
func DaySlots(days []Day) [maxDays]string {
	var slots [maxDays]string
	for i := range slots {
		slots[i] = Blank
		if i < len(days) {
			slots[i] = string(days[i])
		}
	}
	return slots
}

// Clock is a 24 hour time of day. The zero value is TBA.
type Clock struct {
	Hour   int
	Minute int
	Valid  bool
}

func (c Clock) String() string {
	if !c.Valid {
		return TBA
	}
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// Minutes since midnight, -1 when TBA.
func (c Clock) Minutes() int {
	if !c.Valid {
		return -1
	}
	return c.Hour*60 + c.Minute
}

// NormalizeClock converts a 12 hour "H:MM" reading into 24 hour time.
// In the afternoon every hour except 12 moves up by 12, morning hours are kept
// as they are.
func NormalizeClock(hm string, am bool) (Clock, error) {
	hourStr, minuteStr, ok := strings.Cut(hm, ":")
	if !ok {
		return Clock{}, grammarGap("time", hm)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 12 {
		return Clock{}, grammarGap("time", hm)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, grammarGap("time", hm)
	}
	if !am && hour != 12 {
		hour += 12
	}
	return Clock{Hour: hour, Minute: minute, Valid: true}, nil
}

// ParseTimeRange reads "10:00a-10:50a". "TBA" gives two TBA clocks.
// The am/pm flag is the last character of each side, anything but "a" is pm.
func ParseTimeRange(s string) (start Clock, end Clock, err error) {
	if s == TBA {
		return Clock{}, Clock{}, nil
	}
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok || len(startStr) < 2 || len(endStr) < 2 {
		return Clock{}, Clock{}, grammarGap("time range", s)
	}
	start, err = NormalizeClock(startStr[:len(startStr)-1], startStr[len(startStr)-1] == 'a')
	if err != nil {
		return Clock{}, Clock{}, err
	}
	end, err = NormalizeClock(endStr[:len(endStr)-1], endStr[len(endStr)-1] == 'a')
	if err != nil {
		return Clock{}, Clock{}, err
	}
	return start, end, nil
}
