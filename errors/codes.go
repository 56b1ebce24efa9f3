package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Annotation errors
const (
	// ErrCodeMalformedMarker indicates marker text that does not follow the
	// (markerType=..:markerInfo=..:markerSpeaker=..) shape.
	ErrCodeMalformedMarker ErrorCode = "MALFORMED_MARKER"
	// ErrCodeUnknownMarkerKind indicates a marker kind missing from a vocabulary.
	ErrCodeUnknownMarkerKind ErrorCode = "UNKNOWN_MARKER_KIND"
	// ErrCodeDetectorFailed indicates a detector pass failed before applying markers.
	ErrCodeDetectorFailed ErrorCode = "DETECTOR_FAILED"
	// ErrCodePipelineInvalid indicates an unknown detector or a dependency cycle.
	ErrCodePipelineInvalid ErrorCode = "PIPELINE_INVALID"
)

// Resource and availability errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:  true,
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
