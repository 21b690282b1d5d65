package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Virtual tree errors
	ErrTreeNotFound ErrorCode = "TREE_NOT_FOUND"
	ErrTreeConflict ErrorCode = "TREE_CONFLICT"
	ErrTreeForeign  ErrorCode = "TREE_FOREIGN"
	ErrTreeInvalid  ErrorCode = "TREE_INVALID"
	ErrTreeApply    ErrorCode = "TREE_APPLY"

	// Profile errors
	ErrProfileLoad    ErrorCode = "PROFILE_LOAD"
	ErrProfileSave    ErrorCode = "PROFILE_SAVE"
	ErrModNotFound    ErrorCode = "MOD_NOT_FOUND"
	ErrProcessLaunch  ErrorCode = "PROCESS_LAUNCH"
	ErrSettingUnknown ErrorCode = "SETTING_UNKNOWN"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// ZoiError represents a structured error with code and details
type ZoiError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ZoiError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ZoiError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ZoiError) Is(target error) bool {
	var targetErr *ZoiError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ZoiError with the given code and message
func New(code ErrorCode, message string) *ZoiError {
	return &ZoiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ZoiError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ZoiError {
	return &ZoiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ZoiError
func Wrap(err error, code ErrorCode, message string) *ZoiError {
	if err == nil {
		return nil
	}
	return &ZoiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ZoiError {
	if err == nil {
		return nil
	}
	return &ZoiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ZoiError) WithDetail(key string, value interface{}) *ZoiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var zoiErr *ZoiError
	if errors.As(err, &zoiErr) {
		return zoiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ZoiError
func GetErrorCode(err error) ErrorCode {
	var zoiErr *ZoiError
	if errors.As(err, &zoiErr) {
		return zoiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ZoiError
func GetErrorDetails(err error) map[string]interface{} {
	var zoiErr *ZoiError
	if errors.As(err, &zoiErr) {
		return zoiErr.Details
	}
	return nil
}
