package scb_test

import (
	"fmt"

	"github.com/tlforge/scbtext/pkg/scb"
)

func ExampleExtractor_Extract() {
	buf := []byte{0x04, 0x06, 0x00, 0x00, 0x00, 'H', 'E', 'L', 'L', 'O', 0x00}

	records := scb.NewExtractor(nil).Extract(buf)
	for _, rec := range records {
		fmt.Println(rec.Original)
	}
	// Output:
	// HELLO
}

func ExampleReplacer_Replace() {
	buf := []byte{0x04, 0x06, 0x00, 0x00, 0x00, 'H', 'E', 'L', 'L', 'O', 0x00}
	records := []scb.Record{{Original: "HELLO", Translation: "WORLD"}}

	out, report, err := scb.NewReplacer(nil).Replace(buf, records)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("applied=%d payload=%s\n", report.Applied, out[5:10])
	// Output:
	// applied=1 payload=WORLD
}
