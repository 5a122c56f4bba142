// Package errs defines sentinel errors shared across fitsync packages.
//
// All errors are defined as package-level variables to support errors.Is
// checks. Callers wrap them with fmt.Errorf("%w: ...") to add context.
package errs

import "errors"

// FIT encoder errors. These indicate programming-contract violations and
// abort encoding of the current file; there is no partial recovery.
var (
	// ErrInvalidFieldWidth indicates a field width outside {1, 2, 4} bytes.
	ErrInvalidFieldWidth = errors.New("invalid field width")

	// ErrValueOverflow indicates a value that cannot be represented in its
	// declared field width. Values must fail rather than silently wrap,
	// since truncation would corrupt a value the consumer will trust.
	ErrValueOverflow = errors.New("value overflows field width")

	// ErrUnboundSlot indicates a data message written for a local slot with
	// no prior definition message.
	ErrUnboundSlot = errors.New("local slot has no definition")

	// ErrEncoderFinalized indicates a write or a second Finish call on an
	// encoder whose file has already been finalized. The header patch is
	// not idempotent against further writes, so this is fatal.
	ErrEncoderFinalized = errors.New("encoder already finalized")

	// ErrInvalidLocalSlot indicates a local slot outside the 6-bit range
	// that the message header byte can carry.
	ErrInvalidLocalSlot = errors.New("invalid local slot")

	// ErrFieldCountMismatch indicates a data message whose value count does
	// not match its bound definition.
	ErrFieldCountMismatch = errors.New("value count does not match definition")

	// ErrInvalidHeaderSize indicates a file header shorter than the fixed
	// 12-byte layout.
	ErrInvalidHeaderSize = errors.New("invalid file header size")

	// ErrInvalidTypeTag indicates a file header whose type tag is not ".FIT".
	ErrInvalidTypeTag = errors.New("invalid file type tag")
)

// API client errors.
var (
	// ErrAPIStatus indicates a non-zero status in a Withings API envelope.
	ErrAPIStatus = errors.New("api returned non-zero status")

	// ErrUploadRejected indicates the upload sink refused the FIT payload.
	ErrUploadRejected = errors.New("upload rejected")

	// ErrMissingToken indicates a client was constructed without the
	// pre-established access token it requires.
	ErrMissingToken = errors.New("missing access token")
)
