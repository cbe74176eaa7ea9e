package model

import "fmt"

// ConfigurationError reports malformed or out-of-range scheduling parameters.
// It is raised before any constraint compilation or solver interaction.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid scheduling parameters: %v: %v", e.Field, e.Reason)
}

// ExtractionError reports a solver assignment that does not cover every
// decision variable of the grid.
type ExtractionError struct {
	Expected int
	Reported int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("assignment covers %v of %v grid variables", e.Reported, e.Expected)
}
