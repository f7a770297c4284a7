package constants

// TUI states. The first five are the tabs, in display order.
const (
	StateWithRest SessionState = iota
	StateWithoutRest
	StateJoint
	StateReport
	StateSettings
	StateEditing
	StateEditSettings
	StateConfirm
	StateWarning
)

// TabCount is the number of tab states.
const TabCount = 5
