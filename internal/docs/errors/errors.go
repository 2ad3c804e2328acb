// Package errors provides sentinel errors for page discovery.
package errors

import "errors"

var (
	// ErrSourceDirNotFound indicates the configured source directory does not exist.
	ErrSourceDirNotFound = errors.New("source directory not found")

	// ErrDocsDirWalkFailed indicates filesystem traversal of the source directory failed.
	ErrDocsDirWalkFailed = errors.New("source directory walk failed")

	// ErrFileReadFailed indicates reading a discovered markdown file failed.
	ErrFileReadFailed = errors.New("markdown file read failed")

	// ErrFrontmatterInvalid indicates a page carries a frontmatter block that does not parse.
	ErrFrontmatterInvalid = errors.New("invalid frontmatter")

	// ErrInvalidPattern indicates a discovery or ignore glob does not compile.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)
