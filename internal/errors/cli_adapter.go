package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if ie, ok := err.(*InformerError); ok {
		return a.exitCodeFromInformer(ie)
	}

	return 1
}

// exitCodeFromInformer maps InformerError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromInformer(err *InformerError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage or data
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryIngest, CategoryNetwork, CategoryPayment:
		return 8 // External system error
	case CategorySlug, CategoryRender, CategoryPublish, CategoryFileSystem:
		return 11 // Generation error
	case CategoryStorage, CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if ie, ok := err.(*InformerError); ok {
		return a.formatInformer(ie)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatInformer formats an InformerError for display.
func (a *CLIErrorAdapter) formatInformer(err *InformerError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if ie, ok := err.(*InformerError); ok {
		return ie.Category == CategoryInternal ||
			ie.Category == CategoryRuntime ||
			ie.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if ie, ok := err.(*InformerError); ok {
		level := a.slogLevelFromSeverity(ie.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(ie.Category)),
		}
		if ie.Retryable {
			attrs = append(attrs, slog.Bool("retryable", true))
		}

		a.logger.LogAttrs(nil, level, ie.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts InformerError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityFatal, SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
