package dxf

import "errors"

var (
	// ErrMalformedStream is returned when the tagged-group stream itself
	// is broken: a non-numeric group code, a truncated final record, or
	// unreadable bytes. It aborts the whole parse.
	ErrMalformedStream = errors.New("malformed DXF group stream")

	// errMalformedNumber marks a numeric group value that failed to
	// parse. It is contained to the entity being assembled: the entity
	// is discarded and parsing continues.
	errMalformedNumber = errors.New("malformed numeric value")
)
