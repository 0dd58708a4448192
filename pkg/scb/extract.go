package scb

import (
	"github.com/tlforge/scbtext/pkg/log"
	"github.com/tlforge/scbtext/pkg/sjis"
)

// Record pairs an extracted string with its translation. Translation is
// seeded with the original text so an untouched record replaces a string
// with itself.
type Record struct {
	Original    string `json:"orig"`
	Translation string `json:"trans"`
}

// Extractor scans buffers for string frames and decodes their payloads.
type Extractor struct {
	logger log.Logger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(logger log.Logger) *Extractor {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Extractor{logger: logger}
}

// Extract walks buf from the beginning and returns every decodable frame
// payload in buffer order. Extraction never mutates buf, so running it
// twice yields identical records.
//
// A frame whose payload is not valid Shift JIS is skipped: the cursor
// advances one byte and no record is emitted. Bytes inside a skipped
// frame remain scannable, matching the replacement walk, which must see
// the same frame sequence for positional pairing to hold.
func (e *Extractor) Extract(buf []byte) []Record {
	var records []Record
	pos := 0
	for {
		m, ok := FindFrame(buf, pos)
		if !ok {
			if pos+headerSize >= len(buf) {
				break
			}
			pos++
			continue
		}

		text, err := sjis.Decode(m.Payload(buf))
		if err != nil {
			e.logger.Warn("failed to decode payload",
				log.Hex("offset", m.PayloadStart),
				log.Err(err))
			pos++
			continue
		}

		records = append(records, Record{Original: text, Translation: text})
		pos = m.Terminator + 1
	}
	return records
}
