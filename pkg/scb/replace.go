package scb

import (
	"fmt"

	"github.com/tlforge/scbtext/pkg/log"
	"github.com/tlforge/scbtext/pkg/sjis"
)

// Report summarizes a replacement run.
type Report struct {
	// Applied counts translations written into the buffer.
	Applied int

	// Remaining counts translations left unconsumed when the scan ended.
	Remaining int

	// Overflows counts applied translations that exceeded the frame's
	// original declared length.
	Overflows int
}

// ReplacerOption configures a Replacer.
type ReplacerOption func(*Replacer)

// Strict makes length overflows fatal: a replacement longer than the
// frame's original declared length aborts the run instead of logging a
// warning.
func Strict() ReplacerOption {
	return func(r *Replacer) {
		r.strict = true
	}
}

// Replacer writes translations back into buffers by position.
type Replacer struct {
	logger log.Logger
	strict bool
}

// NewReplacer creates a Replacer. A nil logger disables logging.
func NewReplacer(logger log.Logger, opts ...ReplacerOption) *Replacer {
	r := &Replacer{logger: log.NewNoopLogger()}
	if logger != nil {
		r.logger = logger
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replace scans buf exactly as Extract does and pairs frames with
// translations by position: the N-th decodable frame corresponds to the
// N-th record. A frame is only rewritten when its payload equals the
// current record's original text; otherwise the scan moves on without
// consuming the record, so a stale translation file shifts nothing out
// of order.
//
// Matched frames are spliced: the payload bytes are replaced by the
// encoded translation, the length byte is updated, and the terminator
// and all following bytes are preserved. If every record holds its
// original text unchanged, the output buffer is byte-identical to the
// input.
//
// Replace never mutates buf. The returned Report counts applied and
// remaining records; Remaining > 0 is not an error.
func (r *Replacer) Replace(buf []byte, records []Record) ([]byte, Report, error) {
	out := append([]byte(nil), buf...)
	var rep Report

	next := 0
	pos := 0
	for next < len(records) {
		m, ok := FindFrame(out, pos)
		if !ok {
			if pos+headerSize >= len(out) {
				break
			}
			pos++
			continue
		}

		text, err := sjis.Decode(m.Payload(out))
		if err != nil {
			pos++
			continue
		}

		if text != records[next].Original {
			pos++
			continue
		}

		encoded, err := sjis.Encode(records[next].Translation)
		if err != nil {
			return nil, rep, fmt.Errorf("scb: record %d: %w", next, err)
		}

		newLen := len(encoded) + 1
		if newLen > MaxFrameLength {
			return nil, rep, fmt.Errorf("scb: record %d at offset 0x%X: %d bytes: %w",
				next, m.Start, newLen, ErrLengthOverflow)
		}
		if newLen > m.Length {
			if r.strict {
				return nil, rep, fmt.Errorf("scb: record %d at offset 0x%X: %d > %d bytes: %w",
					next, m.Start, newLen, m.Length, ErrSlotOverflow)
			}
			r.logger.Warn("replacement exceeds original frame length",
				log.Hex("offset", m.Start),
				log.Int("declared", m.Length),
				log.Int("encoded", newLen))
			rep.Overflows++
		}

		out[m.Start+1] = byte(newLen)
		out = splice(out, m.PayloadStart, m.Terminator, encoded)

		rep.Applied++
		next++
		pos = m.PayloadStart + newLen
	}

	rep.Remaining = len(records) - next
	if rep.Remaining > 0 {
		r.logger.Warn("not all translations were applied",
			log.Int("remaining", rep.Remaining))
	}
	return out, rep, nil
}

// splice replaces buf[start:end] with repl, shifting the tail. The byte
// at end (the frame terminator) and everything after it are preserved.
func splice(buf []byte, start, end int, repl []byte) []byte {
	out := make([]byte, 0, len(buf)-(end-start)+len(repl))
	out = append(out, buf[:start]...)
	out = append(out, repl...)
	out = append(out, buf[end:]...)
	return out
}
