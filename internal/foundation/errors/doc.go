// Package errors provides the classified error primitives used across imgcaptions.
//
// A ClassifiedError carries a category (what kind of failure), a severity (how
// much of the current operation it affects) and free-form context. Errors are
// constructed through the fluent ErrorBuilder:
//
//	err := errors.ExtractionError("embed has no source").
//		WithCause(extract.ErrNoSource).
//		WithRange(span.Start, span.End).
//		Build()
package errors
