package constants

import "time"

const (
	// Day is the length of the planning horizon.
	Day = 24 * time.Hour

	// SplitThreshold is the duration at which a rest-eligible task is split.
	SplitThreshold = 5 * time.Hour
	// SplitChunk is the largest piece a split produces.
	SplitChunk = 4 * time.Hour

	// Rest band boundaries
	ShortTaskLimit  = 30 * time.Minute
	MediumTaskLimit = 2 * time.Hour
	HalvedTaskLimit = 3 * time.Hour

	// Break lengths
	ShortBreak  = 5 * time.Minute
	MediumBreak = 10 * time.Minute
	HalfBreak   = 15 * time.Minute
	LongBreak   = 20 * time.Minute

	// LeadBlock is the fixed first work block of a long task.
	LeadBlock = time.Hour
	// Nudge rebalances halves when the minute count is odd.
	Nudge = 30 * time.Second

	// DurationSuggestionStep is the spacing of TUI duration suggestions.
	DurationSuggestionStep = 15 * time.Minute
	// DurationSuggestionHours is the last hour offered as a suggestion.
	DurationSuggestionHours = 23

	// Summary labels
	LabelWithRest    = "Time With Rest"
	LabelWithoutRest = "Total Time Without Rest"
	LabelTotal       = "Total Time"
	LabelRemainder   = "Reminder Time"
	LabelStatus      = "Status"

	StatusFits    = "Yes"
	StatusOverrun = "No"
)
