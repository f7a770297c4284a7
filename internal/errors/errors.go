package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayfit/internal/logger"
)

// Hinter is implemented by errors that carry a suggested next step for the
// user.
type Hinter interface {
	Hint() string
}

type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }
func (h *hinted) Hint() string  { return h.hint }

// WithHint attaches a suggestion shown below the error message.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}

// HintOf returns the first hint found in err's chain.
func HintOf(err error) string {
	var h Hinter
	if stderrors.As(err, &h) {
		return h.Hint()
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix and
// any hint on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := HintOf(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
