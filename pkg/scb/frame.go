package scb

// Frame layout constants. A frame is a marker byte, a one-byte declared
// length, three reserved zero bytes, then the payload terminated by the
// first zero byte. The declared length counts the payload plus its
// terminator.
const (
	// Marker is the byte that opens every string frame.
	Marker = 0x04

	// MaxFrameLength is the largest value the one-byte length field can
	// hold: payload plus terminator.
	MaxFrameLength = 0xFF

	headerSize = 5
)

// Match describes one recognized frame inside a buffer.
type Match struct {
	// Start is the offset of the marker byte.
	Start int

	// PayloadStart is the offset of the first payload byte.
	PayloadStart int

	// Terminator is the offset of the zero byte ending the payload.
	Terminator int

	// Length is the declared length: payload bytes plus terminator.
	Length int
}

// Payload returns the payload bytes of the match, excluding the terminator.
func (m Match) Payload(buf []byte) []byte {
	return buf[m.PayloadStart:m.Terminator]
}

// FindFrame reports whether a valid frame starts at off in buf.
//
// Recognition is purely local. The marker and reserved bytes must match
// exactly, and the declared length is re-verified against the observed
// terminator on every attempt, so a coincidental marker sequence that
// fails the length check is rejected. A byte run that passes every check
// is indistinguishable from a real frame; callers accept that as a
// documented property of the format, which carries no index or checksum.
//
// On failure the caller retries at off+1: frame boundaries are not
// otherwise discoverable.
func FindFrame(buf []byte, off int) (Match, bool) {
	if off < 0 || off+headerSize >= len(buf) {
		return Match{}, false
	}
	if buf[off] != Marker {
		return Match{}, false
	}
	if buf[off+2] != 0 || buf[off+3] != 0 || buf[off+4] != 0 {
		return Match{}, false
	}

	declared := int(buf[off+1])
	payloadStart := off + headerSize
	term := payloadStart
	for term < len(buf) && buf[term] != 0 {
		term++
	}
	if term == len(buf) {
		return Match{}, false
	}
	if term-payloadStart+1 != declared {
		return Match{}, false
	}

	return Match{
		Start:        off,
		PayloadStart: payloadStart,
		Terminator:   term,
		Length:       declared,
	}, true
}
