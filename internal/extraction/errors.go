package extraction

import (
	"errors"
	"fmt"
)

// RefusalError means the model answered but the reply cannot be used:
// it is too short to be an evaluation or it declines the task.
type RefusalError struct {
	Reason string
	// Phrase is the refusal phrase that matched, if any.
	Phrase string
}

func (e *RefusalError) Error() string {
	if e.Phrase != "" {
		return fmt.Sprintf("model declined to evaluate: %s (%q)", e.Reason, e.Phrase)
	}
	return fmt.Sprintf("model declined to evaluate: %s", e.Reason)
}

// IsRefusal reports whether err is or wraps a *RefusalError.
func IsRefusal(err error) bool {
	var target *RefusalError
	return errors.As(err, &target)
}
