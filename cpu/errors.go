package cpu

import "errors"

// Error kinds the boundary finder and trace driver distinguish, per the
// error handling design's local/terminal severities.
var (
	errTruncated     = errors.New("truncated trace: not enough samples to form an instruction")
	errUnpredictable = errors.New("unpredictable cycle count: LIC absent and required flags unknown")
)

// ErrTruncated and ErrUnpredictable re-export the two Boundary error
// sentinels so callers outside the package (the trace driver) can match
// them with errors.Is.
var (
	ErrTruncated     = errTruncated
	ErrUnpredictable = errUnpredictable
)
