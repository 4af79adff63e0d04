package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the intake pipeline
var (
	// ErrEmptyInput is returned when a text handed to the similarity
	// scorer is blank after trimming
	ErrEmptyInput = goerr.New("input text is empty")

	// ErrUnparsableScore is returned when the model reply contains no
	// usable similarity score
	ErrUnparsableScore = goerr.New("similarity score is unparsable")

	// ErrMalformedPayload is returned when assistant output is not a
	// single well-formed incident object
	ErrMalformedPayload = goerr.New("incident payload is malformed")

	// ErrMissingField is returned when a required payload field is
	// absent; the field name is attached as an error value
	ErrMissingField = goerr.New("incident payload is missing a required field")

	// ErrUpstreamModel is returned when the language model collaborator
	// fails or returns an unusable response
	ErrUpstreamModel = goerr.New("upstream model request failed")
)

// Context keys for error values
const (
	FieldNameKey = "field_name"
	RawReplyKey  = "raw_reply"
)
