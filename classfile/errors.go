package classfile

import (
	"errors"
	"fmt"

	"github.com/coffee-is-power/jerris/internal/stream"
)

// Sentinel errors for common conditions.
var (
	// ErrInvalidMagic indicates the file does not start with 0xCAFEBABE.
	ErrInvalidMagic = errors.New("classfile: invalid magic number")

	// ErrUnexpectedEOF indicates the stream ended before a declared
	// length was satisfied.
	ErrUnexpectedEOF = stream.ErrUnexpectedEOF
)

// AccessFlagsError reports an access flag word containing bits outside
// its vocabulary. The decode is exact-match: unknown bits fail the
// parse instead of being masked off.
type AccessFlagsError struct {
	Kind  string // "class", "field" or "method"
	Flags uint16 // the offending flag word
}

func (e *AccessFlagsError) Error() string {
	return fmt.Sprintf("classfile: unrecognized %s access flags %#06x", e.Kind, e.Flags)
}

// ParseError locates a parse failure within the class file.
type ParseError struct {
	Offset  int    // byte offset at which the failure was observed
	Message string // what was being read
	Err     error  // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classfile: parse error at offset 0x%x: %s: %v",
			e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("classfile: parse error at offset 0x%x: %s",
		e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
