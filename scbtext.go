// Package scbtext extracts Shift JIS strings from SCB script binaries
// and re-injects edited translations without breaking the frame layout.
//
// Example usage:
//
//	cfg := scbtext.DefaultConfig()
//	cfg.InputDir = "game/scb"
//	s := scbtext.New(cfg, nil)
//	if _, err := s.Extract(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package scbtext

import (
	"github.com/tlforge/scbtext/internal/session"
	"github.com/tlforge/scbtext/pkg/log"
)

// Config holds the directories and switches for a localization session.
// Use DefaultConfig() to get a Config with the conventional layout.
type Config = session.Config

// Session runs extraction, replacement and verification over the
// configured directory trees.
type Session = session.Session

// ExtractSummary reports one extraction run.
type ExtractSummary = session.ExtractSummary

// ReplaceSummary reports one replacement run.
type ReplaceSummary = session.ReplaceSummary

// VerifySummary reports one verification run.
type VerifySummary = session.VerifySummary

// ErrMissingCounterpart marks a translation file with no binary to
// apply it to. Replace logs and skips these.
var ErrMissingCounterpart = session.ErrMissingCounterpart

// New builds a Session. A nil logger disables logging.
func New(cfg Config, logger log.Logger) *Session {
	return session.New(cfg, logger)
}

// DefaultConfig returns a Config with the conventional directory
// layout: input_files, json_files and output_files next to the
// working directory.
func DefaultConfig() Config {
	return session.DefaultConfig()
}
