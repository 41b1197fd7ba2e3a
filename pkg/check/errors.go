package check

import "fmt"

// ValidationError reports a value that failed to satisfy a type. Context is
// the path to the offending location: "argument 0", "return value",
// "argument 1[3]", "return value key"...
type ValidationError struct {
	Context string
	Msg     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Context, e.Msg)
}

func newValidationError(context, format string, a ...any) *ValidationError {
	return &ValidationError{Context: context, Msg: fmt.Sprintf(format, a...)}
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Want, Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d", e.Want, e.Got)
}
