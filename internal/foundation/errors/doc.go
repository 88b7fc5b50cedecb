// Package errors provides the classified error primitives used across the
// index pipeline.
//
// A ClassifiedError carries a category, a severity and structured context.
// Errors are created through the fluent ErrorBuilder:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "read source document").
//		WithContext("path", path).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
