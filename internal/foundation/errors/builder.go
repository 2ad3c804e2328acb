package errors

// ErrorBuilder assembles a ClassifiedError. Severity defaults to error.
type ErrorBuilder struct {
	err ClassifiedError
}

func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, severity: SeverityError, message: message}}
}

// WrapError classifies err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.err.context == nil {
		b.err.context = make(ErrorContext)
	}
	b.err.context[key] = value
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }
func (b *ErrorBuilder) Info() *ErrorBuilder    { return b.WithSeverity(SeverityInfo) }

// Build returns the error. The builder may be reused; later changes do not affect it.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = b.err.Context()
	return &e
}

// ConfigError is a fatal configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError is a fatal invalid-input error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// NotFoundError is a lookup miss.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message).Info()
}

func TransformError(message string) *ErrorBuilder {
	return NewError(CategoryTransform, message)
}

func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
