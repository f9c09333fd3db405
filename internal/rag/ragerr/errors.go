// Package ragerr defines the error taxonomy shared by the ingestion and
// conversation paths. Handlers map these onto HTTP status codes.
package ragerr

import "errors"

var (
	// ErrUnsupportedFormat: no extraction strategy matches the media type
	// or filename extension. Client error, never retried.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailure: the underlying parser failed.
	ErrExtractionFailure = errors.New("extraction failed")

	// ErrIndexingFailure: embedding or vector-store write failed partway.
	// The document keeps its pre-call status.
	ErrIndexingFailure = errors.New("indexing failed")

	// ErrNotFound: the referenced document or session does not exist.
	// Distinct from empty search results, which are a success.
	ErrNotFound = errors.New("not found")

	// ErrGenerationFailure: the language-model backend was unreachable,
	// errored, or returned an unusable shape (including empty text).
	ErrGenerationFailure = errors.New("generation failed")

	// ErrSizeLimitExceeded: a streamed upload crossed the configured cap.
	// The partial file is removed before this is returned.
	ErrSizeLimitExceeded = errors.New("upload size limit exceeded")
)
