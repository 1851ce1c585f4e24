package render

import (
	"fmt"
	"strings"
)

// MissingConfigurationError reports a required schema key absent from the
// caller-supplied configuration.
type MissingConfigurationError struct {
	Format string
	Key    string
	Doc    string
}

func (e *MissingConfigurationError) Error() string {
	msg := fmt.Sprintf("the %s backend requires the configuration item %q", e.Format, e.Key)
	if e.Doc != "" {
		msg += " (" + e.Doc + ")"
	}
	return msg
}

// InvalidConfigurationTypeError reports a configuration value that could not
// be coerced to its schema-declared type.
type InvalidConfigurationTypeError struct {
	Key     string
	Coercer string
	Value   any
	Err     error
}

func (e *InvalidConfigurationTypeError) Error() string {
	return fmt.Sprintf("configuration value %q (%v) could not be converted to %s: %v",
		e.Key, e.Value, e.Coercer, e.Err)
}

func (e *InvalidConfigurationTypeError) Unwrap() error { return e.Err }

// UnknownFormatError reports a render request for a backend name that is not
// registered. Available always lists the valid names.
type UnknownFormatError struct {
	Format    string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("format %q not found, available formats: %s",
		e.Format, strings.Join(e.Available, ", "))
}

// UnsupportedEventCountError reports a violation of a backend's structural
// event cardinality limit. This is a property of the target solver, not of
// the event data.
type UnsupportedEventCountError struct {
	Format string
	Want   int
	Got    int
}

func (e *UnsupportedEventCountError) Error() string {
	return fmt.Sprintf("the %s backend requires exactly %d event(s), got %d",
		e.Format, e.Want, e.Got)
}
