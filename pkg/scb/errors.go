package scb

import "errors"

var (
	// ErrLengthOverflow is returned when a replacement encodes to more
	// bytes than the one-byte length field can declare. Writing a
	// truncated length would corrupt every frame after this one, so the
	// run stops before touching the buffer.
	ErrLengthOverflow = errors.New("scb: encoded length exceeds one byte")

	// ErrSlotOverflow is returned in strict mode when a replacement
	// encodes to more bytes than the frame originally declared.
	ErrSlotOverflow = errors.New("scb: replacement exceeds frame length")
)
