// Package timeslot reads the start time out of free-text booking slots such as
// "6:00 AM - 7:00 AM".
package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Only the first match is used, so for a range this is the start time.
var clockPattern = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(AM|PM)`)

// Clock is a 24-hour wall clock time
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Parse extracts the first h[:mm] AM|PM occurrence in s.
// The minute is not range checked.
func Parse(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return Clock{}, false
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil {
			return Clock{}, false
		}
	}

	switch strings.ToUpper(m[3]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return Clock{Hour: hour, Minute: minute}, true
}
