package errors

// ErrorCategory says which part of the pipeline failed.
type ErrorCategory string

const (
	// CategoryConfig covers config file, flag and option errors.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// CategoryDiscovery covers failures while enumerating or parsing source pages.
	CategoryDiscovery  ErrorCategory = "discovery"
	CategoryFileSystem ErrorCategory = "filesystem"

	// CategoryTransform covers errors raised by transform hooks.
	CategoryTransform ErrorCategory = "transform"

	// CategoryRuntime covers the serve loop, watcher and publisher.
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity decides whether an error stops a build.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext holds structured details reported alongside the message.
type ErrorContext map[string]any
