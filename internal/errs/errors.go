package errs

import "fmt"

// ConfigurationError indicates a missing or invalid characteristic, criterion, or column spec.
// It signals a programming or configuration mistake; retrying will not help.
type ConfigurationError struct {
	What   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "configuration error"
	}
	if e.What == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.What, e.Reason)
}

// InvalidInputError indicates a malformed sample passed to the statistics functions.
// Index is the offending position in the sample, or -1 when not applicable.
type InvalidInputError struct {
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return "invalid input"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("invalid input at %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Config is a shorthand constructor for ConfigurationError.
func Config(what, reason string) error {
	return &ConfigurationError{What: what, Reason: reason}
}
