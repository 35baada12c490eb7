package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Someblueman/codesocratic/internal/socratic"
	"github.com/Someblueman/codesocratic/internal/syntax"
)

// version can be overridden at build time via -ldflags.
var version = "1.0.0"

var errAnalysisFailed = errors.New("some files could not be analyzed")

type cliFlags struct {
	configPath        string
	tone              string
	locale            string
	format            string
	language          string
	color             string
	jobs              int
	checkHandledAsync bool
	verbose           bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "codesocratic [flags] <file|dir>...",
		Short:         "Ask Socratic questions about your code",
		Long:          "codesocratic reads TypeScript, JavaScript and Rust sources and asks questions about risky patterns instead of issuing verdicts.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return run(cmd, args, flags)
		},
	}
	cmd.SetVersionTemplate("codesocratic v{{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "path to "+socratic.ConfigFileName+" (default: search upward from the working directory)")
	f.StringVar(&flags.tone, "tone", string(socratic.ToneFriendly), "summary tone (formal|friendly|roasting)")
	f.StringVar(&flags.locale, "locale", "id", "message language (id|en)")
	f.StringVar(&flags.format, "format", "json", "output format (json|text|markdown)")
	f.StringVar(&flags.language, "language", "", "force a grammar (typescript|tsx|rust) instead of detecting it per file")
	f.StringVar(&flags.color, "color", "auto", "colorize text output (auto|on|off)")
	f.IntVar(&flags.jobs, "jobs", 0, "number of files analyzed in parallel (0 = GOMAXPROCS)")
	f.BoolVar(&flags.checkHandledAsync, "check-handled-async", false, "skip fetch calls guarded by try/catch or .catch")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags cliFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	log := newLogger(cmd.ErrOrStderr(), flags.verbose)

	opts := socratic.DefaultOptions()
	opts.Logger = log
	format := "json"
	jobs := 0

	cfg, cfgPath, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		log.Debug("using config", "path", cfgPath)
		if err := cfg.Apply(&opts); err != nil {
			return fmt.Errorf("%s: %w", cfgPath, err)
		}
		if cfg.Format != "" {
			format = cfg.Format
		}
		if cfg.Jobs != nil {
			jobs = *cfg.Jobs
		}
	}

	changed := cmd.Flags().Changed
	if changed("tone") {
		opts.Tone = socratic.Tone(flags.tone)
	}
	if changed("locale") {
		opts.Locale = flags.locale
	}
	if changed("language") {
		lang, err := syntax.ParseLanguage(flags.language)
		if err != nil {
			return err
		}
		opts.Language = lang
	}
	if changed("check-handled-async") {
		opts.CheckHandledAsync = flags.checkHandledAsync
	}
	if changed("format") {
		format = flags.format
	}
	if changed("jobs") {
		if flags.jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
		jobs = flags.jobs
	}

	colorize, err := useColor(flags.color, out)
	if err != nil {
		return err
	}
	renderer, err := socratic.RendererFor(format, colorize)
	if err != nil {
		return err
	}

	idx, err := socratic.BuildFileIndex(ctx, args)
	if err != nil {
		return err
	}
	log.Debug("indexed files", "count", len(idx.Files))

	results, err := socratic.AnalyzeFiles(ctx, idx, opts, jobs)
	if err != nil {
		return err
	}
	if err := renderer.Render(out, results); err != nil {
		return err
	}

	for _, res := range results {
		if res.Result.Failed() {
			return errAnalysisFailed
		}
	}
	return nil
}

func loadConfig(explicit string) (socratic.Config, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := socratic.FindConfig(".")
		if err != nil || !ok {
			return socratic.Config{}, "", err
		}
		path = found
	}
	cfg, err := socratic.LoadConfig(path)
	if err != nil {
		return socratic.Config{}, "", err
	}
	return cfg, path, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (want auto|on|off)", mode)
	}
}
