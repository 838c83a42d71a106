// Package errors provides standardized error handling for the resolution pipeline.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAddressParseFailed    ErrorCode = "ADDRESS_PARSE_FAILED"
	ErrCodeAddressCodeFailed     ErrorCode = "ADDRESS_CODE_FAILED"
	ErrCodeRegistryLookupFailed  ErrorCode = "REGISTRY_LOOKUP_FAILED"
	ErrCodeSelectionOutOfRange   ErrorCode = "SELECTION_OUT_OF_RANGE"
	ErrCodeInternalFailure       ErrorCode = "INTERNAL_FAILURE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewAddressParseFailedError signals that no address could be extracted
// from the listing text. Not retryable: the input itself is unusable.
func NewAddressParseFailedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAddressParseFailed,
		Message:   "주소를 찾을 수 없습니다.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAddressCodeFailedError signals that administrative codes could not be
// resolved for the extracted address.
func NewAddressCodeFailedError(address string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAddressCodeFailed,
		Message:   fmt.Sprintf("주소를 파싱할 수 없습니다: %s", address),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryLookupFailedError wraps an upstream registry failure or an
// empty result set. Retryable: upstream outages are usually transient.
func NewRegistryLookupFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryLookupFailed,
		Message:   "건축물대장 정보를 조회할 수 없습니다.",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSelectionOutOfRangeError signals a supplied building/unit index that
// exceeds the candidate count.
func NewSelectionOutOfRangeError(kind string, index, count int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSelectionOutOfRange,
		Message:   fmt.Sprintf("선택한 %s 인덱스(%d)가 범위를 벗어났습니다.", kind, index),
		Details:   fmt.Sprintf("candidates: %d", count),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalFailureError wraps an unexpected error with diagnostic detail
// for operator visibility.
func NewInternalFailureError(detail string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalFailure,
		Message:   "오류 발생",
		Details:   detail,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
