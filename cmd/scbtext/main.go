package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tlforge/scbtext/internal/cliconfig"
	"github.com/tlforge/scbtext/internal/session"
	"github.com/tlforge/scbtext/pkg/log"
)

const helpBanner = `
 ____    ____  ____   _____  _____ __  __ _____
/ ___|  / ___|| __ ) |_   _|| ____|\ \/ /|_   _|
\___ \ | |    |  _ \   | |  |  _|   \  /   | |
 ___) || |___ | |_) |  | |  | |___  /  \   | |
|____/  \____||____/   |_|  |_____|/_/\_\  |_|
`

const helpDescription = `
Extract Shift JIS dialogue from SCB script binaries into editable JSON,
then write it back without breaking the frame structure.

Highlights:
  - Positional re-injection: lines land in the frames they came from.
  - Length bytes are recomputed; oversized lines are flagged, never truncated.
  - Configure via ~/.scbtext/config.toml, SCBTEXT_* env vars, or flags.
  - Run with no subcommand for the classic interactive mode.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  scbtext extract --input-dir game/scb --json-dir work/json
  scbtext replace --strict
  scbtext verify
  scbtext watch --debounce 2s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	// buildSession resolves the final configuration for the executing
	// command (file, then env, then flags) and wires the logger.
	buildSession := func(cmd *cobra.Command) (*session.Session, error) {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return nil, err
			}
		}
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		lvl, err := cliconfig.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger := log.NewZerologAdapter(lvl)
		logger.Debug("configuration", log.Any("config", cfg))

		return session.New(session.Config{
			InputDir:       cfg.InputDir,
			JSONDir:        cfg.JSONDir,
			OutputDir:      cfg.OutputDir,
			Ext:            cfg.Ext,
			FilterJapanese: cfg.FilterJapanese,
			Strict:         cfg.Strict,
			Debounce:       cfg.Debounce,
		}, logger), nil
	}

	root := &cobra.Command{
		Use:     "scbtext",
		Short:   "Extract and re-inject Shift JIS strings in SCB script binaries",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd)
			if err != nil {
				return err
			}
			mode, err := promptMode(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			switch mode {
			case modeExtract:
				_, err = s.Extract(ctx)
			case modeReplace:
				_, err = s.Replace(ctx)
			}
			return err
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(&cobra.Command{
		Use:   "extract",
		Short: "Extract strings from binaries into translation files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = s.Extract(ctx)
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "replace",
		Short: "Apply translations and write rewritten binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = s.Replace(ctx)
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Byte-compare rewritten binaries against the originals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = s.Verify(ctx)
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Re-apply translations as they change on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			if err := s.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	})

	// Flags
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.scbtext/config.toml)")
	root.PersistentFlags().StringVar(&cfg.InputDir, "input-dir", cfg.InputDir, "directory of original binaries")
	root.PersistentFlags().StringVar(&cfg.JSONDir, "json-dir", cfg.JSONDir, "directory of translation files")
	root.PersistentFlags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for rewritten binaries")
	root.PersistentFlags().StringVar(&cfg.Ext, "ext", cfg.Ext, "binary file extension to scan")
	root.PersistentFlags().BoolVar(&cfg.FilterJapanese, "filter-japanese", cfg.FilterJapanese, "extract only lines that look like Japanese dialogue")
	root.PersistentFlags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail a file when a translation exceeds its frame length")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "watch mode settle delay after a write burst")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scbtext:", err)
		os.Exit(1)
	}
}

const (
	modeExtract = "extract"
	modeReplace = "replace"
)

// promptMode reproduces the legacy tool's interactive mode selection.
func promptMode(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Select mode: [1] extract  [2] replace: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	switch strings.TrimSpace(line) {
	case "1":
		return modeExtract, nil
	case "2":
		return modeReplace, nil
	}
	return "", fmt.Errorf("unrecognized mode %q (expected 1 or 2)", strings.TrimSpace(line))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
