package domain

import "errors"

var (
	// ErrMalformedPayload marks a payload that could not be decoded at all.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrIncompletePayload marks a payload missing the sections a normalizer requires.
	ErrIncompletePayload = errors.New("incomplete payload")
)
