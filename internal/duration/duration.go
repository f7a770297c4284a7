// Package duration parses and formats the "H:MM" durations entered in
// activity tables.
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is matched by every parse failure.
var ErrFormat = errors.New("invalid duration format")

// FormatError reports why a duration text was rejected.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s (expected H:MM)", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

const (
	maxHours   = 23
	maxMinutes = 59
)

// Parse converts "H:MM" or "HH:MM" into a duration. Hours must be within
// 0-23 and minutes within 0-59; surrounding whitespace on either part is
// ignored.
func Parse(text string) (time.Duration, error) {
	if strings.TrimSpace(text) == "" {
		return 0, &FormatError{Input: text, Reason: "empty"}
	}
	if !strings.Contains(text, ":") {
		return 0, &FormatError{Input: text, Reason: "missing ':' separator"}
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Input: text, Reason: "expected exactly one ':'"}
	}

	hours, err := parsePart(text, parts[0], "hours", maxHours)
	if err != nil {
		return 0, err
	}
	minutes, err := parsePart(text, parts[1], "minutes", maxMinutes)
	if err != nil {
		return 0, err
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

func parsePart(input, part, field string, limit int) (int, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return 0, &FormatError{Input: input, Reason: field + " cannot be empty"}
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, &FormatError{Input: input, Reason: field + " must be digits"}
		}
	}
	n, err := strconv.Atoi(part)
	if err != nil || n > limit {
		return 0, &FormatError{Input: input, Reason: fmt.Sprintf("%s must be between 0 and %d", field, limit)}
	}
	return n, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) time.Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders d as "HH:MM", truncating seconds. Hours are not wrapped at
// 24. Negative values keep their sign: -90m renders as "-01:30".
func Format(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}

// Minutes returns the minutes component of d (0-59).
func Minutes(d time.Duration) int {
	return int(int64(d/time.Second) / 60 % 60)
}

// DayTimes returns "H:MM" suggestions in 15-minute steps from 0:00 up to
// maxHours:45.
func DayTimes(maxHours int) []string {
	if maxHours < 0 {
		return nil
	}
	times := make([]string, 0, (maxHours+1)*4)
	for h := 0; h <= maxHours; h++ {
		for _, m := range []int{0, 15, 30, 45} {
			times = append(times, fmt.Sprintf("%d:%02d", h, m))
		}
	}
	return times
}
