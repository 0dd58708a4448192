package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tlforge/scbtext/pkg/log"
	"github.com/tlforge/scbtext/pkg/scb"
)

// ErrMissingCounterpart marks a translation file with no binary to
// apply it to.
var ErrMissingCounterpart = errors.New("session: binary counterpart not found")

// Config holds the directories and switches for a localization session.
// JSONDir and OutputDir mirror InputDir's relative layout.
type Config struct {
	InputDir  string
	JSONDir   string
	OutputDir string

	// Ext selects which files under InputDir are scanned.
	Ext string

	// FilterJapanese drops extracted records that do not look like
	// dialogue.
	FilterJapanese bool

	// Strict makes frame-length overflows fail the file instead of
	// logging a warning.
	Strict bool

	// Debounce delays watch-mode reprocessing after a burst of writes.
	Debounce time.Duration
}

// DefaultConfig returns a Config with the conventional directory
// layout next to the working directory.
func DefaultConfig() Config {
	return Config{
		InputDir:  "input_files",
		JSONDir:   "json_files",
		OutputDir: "output_files",
		Ext:       ".scb",
		Debounce:  defaultDebounce,
	}
}

// Session runs extraction, replacement and verification over the
// configured directory trees.
type Session struct {
	cfg       Config
	logger    log.Logger
	extractor *scb.Extractor
	replacer  *scb.Replacer
}

func New(cfg Config, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if cfg.Ext == "" {
		cfg.Ext = ".scb"
	}
	if !strings.HasPrefix(cfg.Ext, ".") {
		cfg.Ext = "." + cfg.Ext
	}
	var opts []scb.ReplacerOption
	if cfg.Strict {
		opts = append(opts, scb.Strict())
	}
	return &Session{
		cfg:       cfg,
		logger:    logger,
		extractor: scb.NewExtractor(logger),
		replacer:  scb.NewReplacer(logger, opts...),
	}
}

// ExtractSummary reports one extraction run.
type ExtractSummary struct {
	Files   int // binaries scanned
	Written int // translation files written
	Records int // records extracted, after filtering
	Skipped int // binaries skipped on error
}

// Extract scans every matching binary under InputDir and writes one
// translation file per binary that yielded records. A failing file is
// logged and skipped; it never aborts the run.
func (s *Session) Extract(ctx context.Context) (ExtractSummary, error) {
	var sum ExtractSummary
	err := s.walk(ctx, s.cfg.InputDir, s.cfg.Ext, func(rel string) {
		sum.Files++
		n, wrote, err := s.extractOne(rel)
		if err != nil {
			s.logger.Error("extraction failed", log.String("file", rel), log.Err(err))
			sum.Skipped++
			return
		}
		sum.Records += n
		if wrote {
			sum.Written++
		}
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w\n\nPlease verify:\n  - The --input-dir flag points to the correct directory\n  - The directory exists and is readable", err)
		}
		return sum, err
	}
	s.logger.Info("extraction complete",
		log.Int("files", sum.Files),
		log.Int("written", sum.Written),
		log.Int("records", sum.Records),
		log.Int("skipped", sum.Skipped))
	return sum, nil
}

func (s *Session) extractOne(rel string) (records int, wrote bool, err error) {
	buf, err := os.ReadFile(filepath.Join(s.cfg.InputDir, rel))
	if err != nil {
		return 0, false, err
	}
	recs := s.extractor.Extract(buf)
	if s.cfg.FilterJapanese {
		recs = filterRecords(recs)
	}
	if len(recs) == 0 {
		s.logger.Debug("no extractable strings", log.String("file", rel))
		return 0, false, nil
	}
	if err := saveRecords(filepath.Join(s.cfg.JSONDir, withExt(rel, ".json")), recs); err != nil {
		return 0, false, err
	}
	s.logger.Info("extracted", log.String("file", rel), log.Int("records", len(recs)))
	return len(recs), true, nil
}

// ReplaceSummary reports one replacement run.
type ReplaceSummary struct {
	Files     int // binaries rewritten
	Skipped   int // units skipped on error or missing counterpart
	Applied   int
	Remaining int
	Overflows int
}

// Replace applies every translation file under JSONDir to its binary
// counterpart and writes the result under OutputDir. A translation file
// without a counterpart is skipped with a warning. A failing unit never
// aborts the run.
func (s *Session) Replace(ctx context.Context) (ReplaceSummary, error) {
	var sum ReplaceSummary
	seen := make(map[string]struct{})
	err := s.walk(ctx, s.cfg.JSONDir, ".json", func(rel string) {
		seen[withExt(rel, s.cfg.Ext)] = struct{}{}
		rep, err := s.replaceOne(rel)
		switch {
		case errors.Is(err, ErrMissingCounterpart):
			s.logger.Warn("translation has no binary counterpart", log.String("file", rel))
			sum.Skipped++
		case err != nil:
			s.logger.Error("replacement failed", log.String("file", rel), log.Err(err))
			sum.Skipped++
		default:
			sum.Files++
			sum.Applied += rep.Applied
			sum.Remaining += rep.Remaining
			sum.Overflows += rep.Overflows
		}
	})
	if err != nil {
		return sum, err
	}
	s.noteUntranslated(ctx, seen)
	s.logger.Info("replacement complete",
		log.Int("files", sum.Files),
		log.Int("applied", sum.Applied),
		log.Int("remaining", sum.Remaining),
		log.Int("overflows", sum.Overflows),
		log.Int("skipped", sum.Skipped))
	return sum, nil
}

// replaceOne applies one translation file, named relative to JSONDir.
func (s *Session) replaceOne(rel string) (scb.Report, error) {
	binRel := withExt(rel, s.cfg.Ext)
	buf, err := os.ReadFile(filepath.Join(s.cfg.InputDir, binRel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return scb.Report{}, fmt.Errorf("%s: %w", binRel, ErrMissingCounterpart)
		}
		return scb.Report{}, err
	}
	records, err := loadRecords(filepath.Join(s.cfg.JSONDir, rel))
	if err != nil {
		return scb.Report{}, err
	}

	out, rep, err := s.replacer.Replace(buf, records)
	if err != nil {
		return rep, err
	}
	if err := writeFileAtomic(filepath.Join(s.cfg.OutputDir, binRel), out, 0o644); err != nil {
		return rep, err
	}
	s.logger.Info("rewrote",
		log.String("file", binRel),
		log.Int("applied", rep.Applied),
		log.Int("remaining", rep.Remaining))
	return rep, nil
}

// noteUntranslated logs binaries under InputDir that no translation
// file covers.
func (s *Session) noteUntranslated(ctx context.Context, seen map[string]struct{}) {
	_ = s.walk(ctx, s.cfg.InputDir, s.cfg.Ext, func(rel string) {
		if _, ok := seen[rel]; !ok {
			s.logger.Debug("no translations for binary", log.String("file", rel))
		}
	})
}

// VerifySummary reports one verification run.
type VerifySummary struct {
	Compared     int
	Identical    int
	Different    int
	MissingLeft  int // outputs with no input counterpart
	MissingRight int // inputs with no output counterpart
}

// Verify byte-compares each binary under InputDir with its counterpart
// under OutputDir and logs the differences. It is informational: diffs
// are expected after a replacement run and never fail the batch.
func (s *Session) Verify(ctx context.Context) (VerifySummary, error) {
	var sum VerifySummary
	err := s.walk(ctx, s.cfg.InputDir, s.cfg.Ext, func(rel string) {
		left, err := os.ReadFile(filepath.Join(s.cfg.InputDir, rel))
		if err != nil {
			s.logger.Error("read failed", log.String("file", rel), log.Err(err))
			return
		}
		right, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, rel))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("no output counterpart", log.String("file", rel))
				sum.MissingRight++
				return
			}
			s.logger.Error("read failed", log.String("file", rel), log.Err(err))
			return
		}

		sum.Compared++
		d := diffBuffers(rel, left, right)
		if d.Identical() {
			sum.Identical++
			return
		}
		sum.Different++
		s.logger.Info("files differ",
			log.String("file", rel),
			log.Int("input_size", d.LeftSize),
			log.Int("output_size", d.RightSize),
			log.Int("differing_bytes", d.TotalDiffs),
			log.Any("first_offsets", d.Offsets))
	})
	if err != nil {
		return sum, err
	}

	// Outputs with no input are worth a warning: they will never be
	// regenerated by a replacement run.
	werr := s.walk(ctx, s.cfg.OutputDir, s.cfg.Ext, func(rel string) {
		if _, err := os.Stat(filepath.Join(s.cfg.InputDir, rel)); errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("output has no input counterpart", log.String("file", rel))
			sum.MissingLeft++
		}
	})
	if werr != nil && !errors.Is(werr, fs.ErrNotExist) {
		return sum, werr
	}

	s.logger.Info("verification complete",
		log.Int("compared", sum.Compared),
		log.Int("identical", sum.Identical),
		log.Int("different", sum.Different),
		log.Int("missing_outputs", sum.MissingRight),
		log.Int("missing_inputs", sum.MissingLeft))
	return sum, nil
}

// walk visits every file under dir with the given extension, in lexical
// order, calling fn with the path relative to dir.
func (s *Session) walk(ctx context.Context, dir, ext string, fn func(rel string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ext {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return rerr
		}
		fn(rel)
		return nil
	})
}

func withExt(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}
