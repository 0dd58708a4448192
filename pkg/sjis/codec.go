package sjis

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// ErrInvalidSequence indicates that input bytes are not valid Shift-JIS.
var ErrInvalidSequence = errors.New("sjis: invalid byte sequence")

// Decode converts Shift-JIS encoded bytes to a UTF-8 string.
//
// The underlying transform substitutes U+FFFD for undecodable bytes
// instead of failing, so Decode checks the result and reports
// ErrInvalidSequence when any byte could not be transcoded. No Shift-JIS
// sequence maps to U+FFFD, so the check cannot misfire on valid input.
func Decode(b []byte) (string, error) {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("sjis: decode: %w", err)
	}
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", ErrInvalidSequence
	}
	return string(decoded), nil
}

// Encode converts a UTF-8 string to Shift-JIS encoded bytes.
// Runes with no Shift-JIS representation cause an error; they are
// never dropped or substituted.
func Encode(s string) ([]byte, error) {
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("sjis: encode %q: %w", s, err)
	}
	return encoded, nil
}
