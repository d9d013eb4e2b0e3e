package laborcrawl

import "context"

// ExtractionClient sends judgment text to a semantic extraction backend
// and returns its raw output for parsing.
//
// Exactly one backend implementation is selected at process start.
// Every failure mode (timeout, HTTP error, content-safety rejection,
// input too short to be meaningful) surfaces as an error with an
// application code (EUNAVAILABLE, EUNPROCESSABLE, EINVALID); the caller
// treats any error as "no record for this case" and continues.
type ExtractionClient interface {
	Extract(ctx context.Context, text string) (string, error)
}
