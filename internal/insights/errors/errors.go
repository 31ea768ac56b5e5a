package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no user identity reached the service.
	// It is never absorbed by a fallback.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrReasoningUnavailable covers an unreachable or rejecting reasoning
	// service, including a missing API credential.
	ErrReasoningUnavailable = errors.New("reasoning service unavailable")

	// ErrReasoningFailed covers calls that reached the service but produced
	// no usable text.
	ErrReasoningFailed = errors.New("reasoning service failed")

	// ErrUnparsableResponse means no JSON payload could be recovered from the
	// raw model output.
	ErrUnparsableResponse = errors.New("response does not contain parsable JSON")
)

type SchemaMismatchError struct {
	Msg string
}

func (e *SchemaMismatchError) Error() string {
	return e.Msg
}

func NewSchemaMismatchError(format string, args ...interface{}) error {
	return &SchemaMismatchError{Msg: fmt.Sprintf(format, args...)}
}

func IsSchemaMismatch(err error) bool {
	var schemaErr *SchemaMismatchError
	return errors.As(err, &schemaErr)
}

// AggregationError indicates malformed transaction or category data coming
// from the persistence collaborator. It is surfaced to the caller, never
// recovered through a fallback.
type AggregationError struct {
	Msg string
}

func (e *AggregationError) Error() string {
	return e.Msg
}

func NewAggregationError(format string, args ...interface{}) error {
	return &AggregationError{Msg: fmt.Sprintf(format, args...)}
}

func IsAggregationError(err error) bool {
	var aggErr *AggregationError
	return errors.As(err, &aggErr)
}

// IsRecoverable reports whether an AI-path failure may be absorbed by the
// matching local fallback. Everything from the generate call up to schema
// validation is recoverable; authentication and input faults are not.
func IsRecoverable(err error) bool {
	if errors.Is(err, ErrReasoningUnavailable) || errors.Is(err, ErrReasoningFailed) || errors.Is(err, ErrUnparsableResponse) {
		return true
	}
	return IsSchemaMismatch(err)
}
