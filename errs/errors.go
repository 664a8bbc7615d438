package errs

import "errors"

// Sentinel errors for conditions that don't carry a peer-visible code, or
// that wrap a code with additional local context via errors.Is/As.
var (
	// ErrUnknownBehavior is returned when a CategoryDef's behavior_id does
	// not match any of the nine defined behaviors (spec.md §4.5). Decoding
	// fails closed rather than guessing at the payload layout.
	ErrUnknownBehavior = errors.New("category: unknown behavior id")

	// ErrCategoryNotFound is returned when a pixel's category id has no
	// corresponding CategoryDef (an inconsistent Page).
	ErrCategoryNotFound = errors.New("category: id not present in category defs")

	// ErrOutOfBounds describes a pixel coordinate outside the page's
	// width/height. Page.CategoryAt does not return it; it reports such a
	// coordinate as category 0.
	ErrOutOfBounds = errors.New("category: coordinate out of bounds")

	// ErrSessionMismatch describes a frame whose session_id does not match
	// the receiving session's id. Session does not return it: it counts
	// mismatches internally rather than treating a single one as fatal
	// (spec.md §4.4).
	ErrSessionMismatch = errors.New("session: session_id mismatch")

	// ErrSequenceGap describes an inbound frame whose sequence number is not
	// exactly the expected next value. Session reports such a gap as
	// ProtocolError instead.
	ErrSequenceGap = errors.New("session: sequence gap")

	// ErrSessionClosed is returned when an operation is attempted on a
	// session that has already transitioned to Closed.
	ErrSessionClosed = errors.New("session: closed")

	// ErrCompressionCapability describes a request to emit a compressed
	// frame for a session that did not negotiate the compression
	// capability. Session.EncodeRenderFrame panics in that case rather than
	// returning this error: it is a programming error, not a runtime branch
	// the peer could trip (spec.md §4.4).
	ErrCompressionCapability = errors.New("frame: compression not negotiated")

	// ErrInvalidURL is returned when a Navigate behavior's url field does
	// not parse as a pixnet:// URL (spec.md §6.3).
	ErrInvalidURL = errors.New("category: invalid pixnet:// url")
)
