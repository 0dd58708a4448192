// Package scb locates and rewrites Shift JIS string frames in SCB
// binary buffers.
//
// A frame is a 0x04 marker, a one-byte length covering the payload and
// its zero terminator, three reserved zero bytes, and the payload. The
// format carries no index, so frames are found by scanning: on a failed
// match the cursor advances one byte and tries again.
//
// Extraction and replacement walk the buffer with the same scan, which
// is what makes positional pairing sound: the N-th extracted record is
// the N-th frame the replacement walk will see.
//
// Usage:
//
//	ext := scb.NewExtractor(logger)
//	records := ext.Extract(buf)
//
//	// ... fill in records[i].Translation ...
//
//	rep := scb.NewReplacer(logger)
//	out, report, err := rep.Replace(buf, records)
//	if err != nil {
//		return err
//	}
//	if report.Remaining > 0 {
//		// stale records: the buffer and the translations diverged
//	}
package scb
