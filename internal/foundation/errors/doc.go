// Package errors provides the classified error type used across figref.
//
// Domain failures inside a filter run (unrecognized shapes, dangling references,
// duplicate labels) never become errors: they degrade to leaving the tree
// unchanged. ClassifiedError covers the boundary instead: reading the
// document, loading configuration and writing results.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "open input").
//		WithContext("path", path).
//		Build()
package errors
