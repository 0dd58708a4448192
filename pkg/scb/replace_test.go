package scb

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReplaceRoundTripIdentity(t *testing.T) {
	// Untouched records carry their original text, so applying them
	// writes every frame back byte for byte.
	buf := concat(
		[]byte{0x10, 0x20},
		buildFrame(mustEncode(t, "こんにちは")),
		[]byte{0x33},
		buildFrame([]byte("start")),
		buildFrame(mustEncode(t, "テスト")),
	)

	records := NewExtractor(nil).Extract(buf)
	if len(records) != 3 {
		t.Fatalf("Extract() returned %d records, want 3", len(records))
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 3 || rep.Remaining != 0 || rep.Overflows != 0 {
		t.Fatalf("Replace() report = %+v, want 3 applied", rep)
	}
	if !bytes.Equal(out, buf) {
		t.Errorf("Replace() output differs from input:\n got %X\nwant %X", out, buf)
	}
}

func TestReplacePositionalPairing(t *testing.T) {
	// Two records with identical originals land on the first and third
	// frames; the middle frame matches neither slot and is untouched.
	buf := concat(
		buildFrame([]byte("AAA")),
		buildFrame([]byte("BBB")),
		buildFrame([]byte("AAA")),
	)
	records := []Record{
		{Original: "AAA", Translation: "111"},
		{Original: "AAA", Translation: "222"},
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 2 || rep.Remaining != 0 {
		t.Fatalf("Replace() report = %+v, want 2 applied", rep)
	}

	want := concat(
		buildFrame([]byte("111")),
		buildFrame([]byte("BBB")),
		buildFrame([]byte("222")),
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceSkipsCoincidentalDuplicate(t *testing.T) {
	// A frame repeating earlier text sits between the second and third
	// slots. Equality gating walks past it, so the third translation
	// lands on the third genuine frame, not the duplicate.
	buf := concat(
		buildFrame([]byte("AAA")),
		buildFrame([]byte("BBB")),
		buildFrame([]byte("AAA")),
		buildFrame([]byte("CCC")),
	)
	records := []Record{
		{Original: "AAA", Translation: "111"},
		{Original: "BBB", Translation: "222"},
		{Original: "CCC", Translation: "333"},
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 3 || rep.Remaining != 0 {
		t.Fatalf("Replace() report = %+v, want 3 applied", rep)
	}

	want := concat(
		buildFrame([]byte("111")),
		buildFrame([]byte("222")),
		buildFrame([]byte("AAA")),
		buildFrame([]byte("333")),
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceStaleRecordsNotConsumed(t *testing.T) {
	// The first record names a string that only appears after a frame
	// it does not match. The mismatching frame is skipped without
	// consuming the record, and the record for the skipped frame can
	// never apply because the cursor has moved past it.
	buf := concat(
		buildFrame([]byte("BBB")),
		buildFrame([]byte("AAA")),
	)
	records := []Record{
		{Original: "AAA", Translation: "111"},
		{Original: "BBB", Translation: "222"},
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 1 || rep.Remaining != 1 {
		t.Fatalf("Replace() report = %+v, want 1 applied 1 remaining", rep)
	}

	want := concat(
		buildFrame([]byte("BBB")),
		buildFrame([]byte("111")),
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceGrowsFrame(t *testing.T) {
	// A longer replacement splices in, updates the length byte, keeps
	// the terminator, and shifts the tail so the next frame is still
	// found and rewritten.
	buf := concat(
		buildFrame([]byte("ABC")),
		buildFrame([]byte("XY")),
	)
	records := []Record{
		{Original: "ABC", Translation: "ABCDEFGHIJ"},
		{Original: "XY", Translation: "Z"},
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 2 || rep.Remaining != 0 || rep.Overflows != 1 {
		t.Fatalf("Replace() report = %+v, want 2 applied 1 overflow", rep)
	}

	want := concat(
		[]byte{0x04, 0x0B, 0x00, 0x00, 0x00},
		[]byte("ABCDEFGHIJ"),
		[]byte{0x00},
		[]byte{0x04, 0x02, 0x00, 0x00, 0x00},
		[]byte("Z"),
		[]byte{0x00},
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceShrinksFrame(t *testing.T) {
	buf := concat(buildFrame([]byte("HELLO")), []byte{0xAA})
	records := []Record{{Original: "HELLO", Translation: "HI"}}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 1 || rep.Overflows != 0 {
		t.Fatalf("Replace() report = %+v, want 1 applied", rep)
	}

	want := concat(buildFrame([]byte("HI")), []byte{0xAA})
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceEmptyTranslation(t *testing.T) {
	buf := concat(buildFrame([]byte("ABC")), []byte{0x7F})
	records := []Record{{Original: "ABC", Translation: ""}}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 1 {
		t.Fatalf("Replace() report = %+v, want 1 applied", rep)
	}

	want := concat(buildFrame(nil), []byte{0x7F})
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceStrictSlotOverflow(t *testing.T) {
	buf := buildFrame([]byte("ABC"))
	records := []Record{{Original: "ABC", Translation: "ABCDEFGHIJ"}}

	out, _, err := NewReplacer(nil, Strict()).Replace(buf, records)
	if !errors.Is(err, ErrSlotOverflow) {
		t.Fatalf("Replace() error = %v, want ErrSlotOverflow", err)
	}
	if out != nil {
		t.Errorf("Replace() returned a buffer alongside the error")
	}
}

func TestReplaceLengthOverflow(t *testing.T) {
	buf := buildFrame([]byte("A"))

	// 254 payload bytes plus the terminator is exactly the largest
	// declarable length.
	records := []Record{{Original: "A", Translation: strings.Repeat("A", 254)}}
	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v at the length limit", err)
	}
	if rep.Applied != 1 || rep.Overflows != 1 {
		t.Fatalf("Replace() report = %+v, want 1 applied 1 overflow", rep)
	}
	if out[1] != 0xFF {
		t.Errorf("length byte = 0x%02X, want 0xFF", out[1])
	}
	if len(out) != headerSize+254+1 {
		t.Errorf("output length = %d, want %d", len(out), headerSize+254+1)
	}

	// One more byte cannot be declared, and that holds even outside
	// strict mode.
	records = []Record{{Original: "A", Translation: strings.Repeat("A", 255)}}
	out, _, err = NewReplacer(nil).Replace(buf, records)
	if !errors.Is(err, ErrLengthOverflow) {
		t.Fatalf("Replace() error = %v, want ErrLengthOverflow", err)
	}
	if out != nil {
		t.Errorf("Replace() returned a buffer alongside the error")
	}
}

func TestReplaceSkipsUndecodableWithoutConsuming(t *testing.T) {
	// The first frame is shaped correctly but does not decode. It must
	// not consume the record meant for the frame after it.
	buf := concat(
		buildFrame([]byte{0x82}),
		buildFrame([]byte("OK")),
	)
	records := []Record{{Original: "OK", Translation: "GO"}}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 1 || rep.Remaining != 0 {
		t.Fatalf("Replace() report = %+v, want 1 applied", rep)
	}

	want := concat(
		buildFrame([]byte{0x82}),
		buildFrame([]byte("GO")),
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}

func TestReplaceEncodeFailure(t *testing.T) {
	buf := buildFrame([]byte("A"))
	records := []Record{{Original: "A", Translation: "😀"}}

	out, _, err := NewReplacer(nil).Replace(buf, records)
	if err == nil {
		t.Fatal("Replace() succeeded with an unencodable translation")
	}
	if !strings.Contains(err.Error(), "record 0") {
		t.Errorf("Replace() error = %v, want record index in message", err)
	}
	if out != nil {
		t.Errorf("Replace() returned a buffer alongside the error")
	}
}

func TestReplaceNoRecords(t *testing.T) {
	buf := buildFrame([]byte("ABC"))

	out, rep, err := NewReplacer(nil).Replace(buf, nil)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep != (Report{}) {
		t.Fatalf("Replace() report = %+v, want zero", rep)
	}
	if !bytes.Equal(out, buf) {
		t.Errorf("Replace() output differs from input with no records")
	}
}

func TestReplaceDoesNotMutateInput(t *testing.T) {
	buf := concat(buildFrame([]byte("ABC")), []byte{0x01, 0x02})
	orig := append([]byte(nil), buf...)
	records := []Record{{Original: "ABC", Translation: "LONGERSTRING"}}

	if _, _, err := NewReplacer(nil).Replace(buf, records); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if !bytes.Equal(buf, orig) {
		t.Errorf("Replace() mutated the input buffer")
	}
}

func TestReplaceJapanese(t *testing.T) {
	buf := concat(
		buildFrame(mustEncode(t, "はい")),
		buildFrame(mustEncode(t, "いいえ")),
	)
	records := []Record{
		{Original: "はい", Translation: "Yes"},
		{Original: "いいえ", Translation: "No"},
	}

	out, rep, err := NewReplacer(nil).Replace(buf, records)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rep.Applied != 2 || rep.Remaining != 0 {
		t.Fatalf("Replace() report = %+v, want 2 applied", rep)
	}

	want := concat(
		buildFrame([]byte("Yes")),
		buildFrame([]byte("No")),
	)
	if !bytes.Equal(out, want) {
		t.Errorf("Replace() output:\n got %X\nwant %X", out, want)
	}
}
