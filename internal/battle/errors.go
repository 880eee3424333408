package battle

import "errors"

// Code is a machine-readable reason attached to rejected or no-op outcomes.
type Code string

const (
	// CodeNone marks a resolved action.
	CodeNone Code = ""
	// CodeInvalidAction covers wrong phase, dead or out-of-turn actors, missing
	// resources and malformed targets. Nothing is mutated.
	CodeInvalidAction Code = "INVALID_ACTION"
	// CodeInvalidTarget covers actions whose target cannot be affected, such as
	// healing a fallen ally. Costs are still paid.
	CodeInvalidTarget Code = "INVALID_TARGET"
	// CodeConfiguration marks a session that could not be created.
	CodeConfiguration Code = "CONFIGURATION"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("invalid battle configuration")

// ConfigurationError reports a malformed session setup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return ErrConfiguration.Error() + ": " + e.Reason
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Code returns CodeConfiguration.
func (e *ConfigurationError) Code() Code {
	return CodeConfiguration
}
