// Package errors provides typed errors with exit codes for projctl.
//
// # Error Types
//
// ProjctlError wraps an error with an exit code:
//
//	type ProjctlError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitProjectNotFound = 2  // Project key is not registered
//	ExitStoreError      = 3  // Project store failure
//	ExitEditorError     = 4  // External editor could not be launched
//	ExitConfigError     = 5  // Configuration error
//	ExitCreateFailed    = 6  // Project creation job failed
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
