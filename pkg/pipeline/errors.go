package pipeline

import "errors"

var (
	// ErrInvalidInput is returned for an empty or malformed frame sequence.
	// Fatal for that video only.
	ErrInvalidInput = errors.New("pipeline: invalid input")

	// ErrModelContract is returned when the scoring model output does not
	// match the window geometry. Fatal and never retried: it signals an
	// incompatible model, not a transient failure.
	ErrModelContract = errors.New("pipeline: model contract violation")

	// ErrDecode is returned when frame decoding fails. Fatal for that
	// video only.
	ErrDecode = errors.New("pipeline: decode failed")

	// ErrTransport is returned when publishing or flushing scene events
	// fails. Surfaced to the caller; retry policy belongs to the transport
	// layer.
	ErrTransport = errors.New("pipeline: event transport failed")
)
