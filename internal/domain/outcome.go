package domain

import "errors"

// FailureReason classifies why a fail-soft operation degraded to an empty result.
type FailureReason string

const (
	FailureNone              FailureReason = ""
	FailureStoreUnconfigured FailureReason = "store_unconfigured"
	FailureAnchorNotFound    FailureReason = "anchor_not_found"
	FailureReadFailed        FailureReason = "read_failed"
	FailureWriteFailed       FailureReason = "write_failed"
	FailureInvalidInput      FailureReason = "invalid_input"
)

// Outcome is the side channel of a fail-soft operation. A zero Outcome means success.
type Outcome struct {
	Reason FailureReason
	Err    error
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return o.Reason == FailureNone }

// Failed builds an Outcome for reason and err.
func Failed(reason FailureReason, err error) Outcome {
	return Outcome{Reason: reason, Err: err}
}

// ReadFailure classifies a store read error as anchor_not_found or read_failed.
func ReadFailure(err error) Outcome {
	if errors.Is(err, ErrNotFound) {
		return Failed(FailureAnchorNotFound, err)
	}
	return Failed(FailureReadFailed, err)
}
