package errors

// ErrorBuilder assembles a ClassifiedError step by step:
//
//	errors.ExtractionError("cannot resolve embed source").
//		WithCause(err).
//		WithRange(start, end).
//		Build()
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError starts an error of category with SeverityError.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{category: category, severity: SeverityError, message: message, context: make(ErrorContext)}
}

// WrapError starts an error of category caused by err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// WithDocument records the document the error belongs to.
func (b *ErrorBuilder) WithDocument(name string) *ErrorBuilder {
	return b.WithContext("document", name)
}

// WithRange records a [start,end) byte range of the document text.
func (b *ErrorBuilder) WithRange(start, end int) *ErrorBuilder {
	return b.WithContext("start", start).WithContext("end", end)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Settings that cannot be used; always fatal for the command.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// Input that fails a precondition.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// ExtractionError is scoped to a single embed and never aborts a pass.
func ExtractionError(message string) *ErrorBuilder {
	return NewError(CategoryExtraction, message).Warning()
}

func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

func RenderError(message string) *ErrorBuilder {
	return NewError(CategoryRender, message)
}

func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
