package cli

import (
	"github.com/Gitmaxd/ai-init/internal/installer"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unexpected error or a usage error.
	ExitGeneralError = 1

	// ExitInvalidName indicates the project name failed validation.
	ExitInvalidName = 2

	// ExitTargetError indicates the target directory is non-empty or unusable.
	ExitTargetError = 3

	// ExitTemplateError indicates the template tree is missing or unreadable.
	ExitTemplateError = 4

	// ExitWriteError indicates a directory or file could not be written.
	ExitWriteError = 5
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch installer.KindOf(err) {
	case installer.KindInvalidName:
		return ExitInvalidName
	case installer.KindDirectoryNotEmpty, installer.KindInvalidTarget:
		return ExitTargetError
	case installer.KindTemplateNotFound:
		return ExitTemplateError
	case installer.KindDirectoryCreateFailed, installer.KindFileCopyFailed:
		return ExitWriteError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitInvalidName:
		return "Invalid Name"
	case ExitTargetError:
		return "Target Error"
	case ExitTemplateError:
		return "Template Error"
	case ExitWriteError:
		return "Write Error"
	default:
		return "Unknown"
	}
}
