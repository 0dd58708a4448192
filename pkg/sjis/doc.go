// Package sjis converts between UTF-8 and the Shift-JIS (cp932) encoding
// used by SCB script payloads.
//
// Both directions allocate a fresh coder per call, so the functions are
// safe for concurrent use across files.
//
// Decode reports an error for undecodable input rather than substituting
// replacement runes; Encode reports an error for runes the encoding
// cannot represent rather than dropping them.
package sjis
