package cli

import (
	"fmt"
	"os"

	"github.com/hooktools/hookman/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeManifestNotFound:
		fmt.Fprintf(os.Stderr, "❌ No manifest found. Run 'hookman sample --write' to create a .pre-commit-config.yaml.\n")
		return err

	case errors.ErrCodeManifestInvalid:
		fmt.Fprintf(os.Stderr, "❌ The manifest is not parseable YAML: %v\n", err)
		fmt.Fprintf(os.Stderr, "Check indentation and quoting near the reported line.\n")
		return err

	case errors.ErrCodeManifestValidation:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'hookman validate --verbose' for full details.\n")
		return err

	case errors.ErrCodeHookNotFound:
		if hookmanErr, ok := err.(*errors.HookmanError); ok {
			fmt.Fprintf(os.Stderr, "❌ Hook '%s' not found in the manifest\n", hookmanErr.Details["hook"])
			fmt.Fprintf(os.Stderr, "Run 'hookman list --hooks' to see available hooks.\n")
		}
		return err

	case errors.ErrCodeHooksFileNotFound:
		fmt.Fprintf(os.Stderr, "❌ No .pre-commit-hooks.yaml found. Hook source repositories must publish one.\n")
		return err

	case errors.ErrCodeGitNotRepository:
		fmt.Fprintf(os.Stderr, "❌ Not a git repository. Run this command inside a git repository.\n")
		return err

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(os.Stderr, "❌ Required command not found. Make sure git is installed and on PATH.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if hookmanErr, ok := err.(*errors.HookmanError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookmanErr.ToJSON())
			}
		}
		return err
	}
}
