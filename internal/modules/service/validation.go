package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ValidationError marks malformed or out-of-range input. Handlers map it to
// a 400 response; it is never retried.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with a fixed message.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

const (
	minDescriptionLen = 3
	maxDescriptionLen = 500
	minNameLen        = 2
	maxNameLen        = 100
	maxHoursPerDay    = 24
)

func validateClient(client string) error {
	client = strings.TrimSpace(client)
	if len(client) < minNameLen || len(client) > maxNameLen {
		return invalidf("client must be between %d and %d characters", minNameLen, maxNameLen)
	}
	return nil
}

func validateActivities(activities []ActivityInput) error {
	if len(activities) == 0 {
		return invalidf("at least one activity is required")
	}
	for i, a := range activities {
		if err := validateActivity(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateActivity(i int, a ActivityInput) error {
	desc := strings.TrimSpace(a.Description)
	if len(desc) < minDescriptionLen || len(desc) > maxDescriptionLen {
		return invalidf("activity %d: description must be between %d and %d characters", i+1, minDescriptionLen, maxDescriptionLen)
	}
	cat := strings.TrimSpace(a.Category)
	if len(cat) < minNameLen || len(cat) > maxNameLen {
		return invalidf("activity %d: category must be between %d and %d characters", i+1, minNameLen, maxNameLen)
	}
	if a.Hours <= 0 || a.Hours > maxHoursPerDay {
		return invalidf("activity %d: hours must be greater than 0 and at most %d", i+1, maxHoursPerDay)
	}
	if !isQuarterHours(a.Hours) {
		return invalidf("activity %d: hours must be a multiple of 0.25", i+1)
	}
	return nil
}

// isQuarterHours reports whether h is a whole number of 15-minute blocks.
// Quarter values are exact in binary floating point, so the comparison is
// safe.
func isQuarterHours(h float64) bool {
	q := h * 4
	return q == math.Trunc(q)
}
