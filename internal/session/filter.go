package session

import (
	"bytes"
	"regexp"
	"unicode/utf8"

	"github.com/tlforge/scbtext/pkg/scb"
	"github.com/tlforge/scbtext/pkg/sjis"
)

// Character classes for the Japanese-text filter: hiragana, katakana,
// CJK unified ideographs and the compatibility block; the half-width
// kana block; control characters excluding tab, LF and CR.
var (
	japaneseRE = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}]`)
	halfKanaRE = regexp.MustCompile(`[\x{FF61}-\x{FF9F}]`)
	controlRE  = regexp.MustCompile(`[\x00-\x08\x0B-\x0C\x0E-\x1F\x7F]`)

	// ASCII-led strings with no CJK punctuation, full-width forms or
	// whitespace are engine identifiers, not dialogue.
	asciiLedRE = regexp.MustCompile(`^[A-Za-z][^\x{3000}-\x{303F}\x{FF00}-\x{FFEF}\s]+$`)
)

// keepRecord reports whether a record looks like translatable dialogue
// rather than script plumbing. Selection only: kept records are passed
// through unmodified so positional pairing with the binary still holds.
func keepRecord(text string) bool {
	if utf8.RuneCountInString(text) <= 1 {
		return false
	}
	if !japaneseRE.MatchString(text) {
		return false
	}
	if controlRE.MatchString(text) || halfKanaRE.MatchString(text) {
		return false
	}
	if asciiLedRE.MatchString(text) {
		return false
	}
	// Strings whose encoding carries a 0x80 trail byte render as
	// garbage in the target engine.
	if encoded, err := sjis.Encode(text); err == nil && bytes.Contains(encoded, []byte{0x80}) {
		return false
	}
	return true
}

func filterRecords(records []scb.Record) []scb.Record {
	kept := records[:0:0]
	for _, rec := range records {
		if keepRecord(rec.Original) {
			kept = append(kept, rec)
		}
	}
	return kept
}
