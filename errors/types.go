package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Manifest errors
	ErrCodeManifestNotFound   ErrorCode = "MANIFEST_NOT_FOUND"
	ErrCodeManifestInvalid    ErrorCode = "MANIFEST_INVALID"
	ErrCodeManifestValidation ErrorCode = "MANIFEST_VALIDATION"

	// Hook lookup errors
	ErrCodeHookNotFound ErrorCode = "HOOK_NOT_FOUND"
	ErrCodeRepoNotFound ErrorCode = "REPO_NOT_FOUND"

	// Hooks file errors
	ErrCodeHooksFileNotFound ErrorCode = "HOOKS_FILE_NOT_FOUND"
	ErrCodeHooksFileInvalid  ErrorCode = "HOOKS_FILE_INVALID"

	// Pattern errors
	ErrCodePatternInvalid ErrorCode = "PATTERN_INVALID"

	// Settings errors
	ErrCodeSettingsNotFound ErrorCode = "SETTINGS_NOT_FOUND"
	ErrCodeSettingsInvalid  ErrorCode = "SETTINGS_INVALID"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Git errors
	ErrCodeGitNotInstalled  ErrorCode = "GIT_NOT_INSTALLED"
	ErrCodeGitNotRepository ErrorCode = "GIT_NOT_REPOSITORY"
	ErrCodeHookInstall      ErrorCode = "HOOK_INSTALL_FAILED"

	// State errors
	ErrCodeStateInvalid ErrorCode = "STATE_INVALID"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// HookmanError represents a structured error with context
type HookmanError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *HookmanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HookmanError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *HookmanError) WithDetail(key string, value interface{}) *HookmanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *HookmanError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new HookmanError
func New(code ErrorCode, message string) *HookmanError {
	return &HookmanError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HookmanError
func Wrap(err error, code ErrorCode, message string) *HookmanError {
	return &HookmanError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific HookmanError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	hookmanErr, ok := err.(*HookmanError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return hookmanErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	hookmanErr, ok := err.(*HookmanError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return hookmanErr.Code
}
