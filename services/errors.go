package services

import "errors"

// BusinessRuleError marks an anticipated rule violation: the operation is a
// no-op and the message is shown to the actor as-is. Controllers translate
// these into a feedback response instead of a hard failure.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func businessErr(msg string) error { return &BusinessRuleError{Message: msg} }

// IsBusinessRule reports whether err is an anticipated rule violation.
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// ValidationError rejects malformed input before any state mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
