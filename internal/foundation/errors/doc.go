// Package errors provides the classified error type shared by the loader,
// pipeline, writer, dev server and CLI.
//
// Fatal errors abort a build; everything else is reported and the caller
// carries on with a default. The CLI adapter turns a category into an exit
// code, the HTTP adapter into a status code and JSON body.
//
//	err := errors.WrapError(cause, errors.CategoryDiscovery, "failed to parse frontmatter").
//		WithContext("file", rel).
//		Fatal().
//		Build()
package errors
