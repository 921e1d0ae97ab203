package keyforms

import "errors"

var (
	// ErrInvalidRule reports a malformed entry in a morphology table.
	ErrInvalidRule = errors.New("invalid morphology rule")
	// ErrUnknownStemmer reports an unknown stemmer kind or algorithm in the registry.
	ErrUnknownStemmer = errors.New("unknown stemmer")
	// ErrNoLanguages reports a registry without any language entry.
	ErrNoLanguages = errors.New("no languages registered")
)
