package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"qrscan/internal/clip"
	"qrscan/internal/config"
	"qrscan/internal/content"
	"qrscan/internal/history"
	"qrscan/internal/i18n"
	"qrscan/internal/logger"
	"qrscan/internal/scan"
	"qrscan/internal/storage"
	"qrscan/internal/tui"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// uiModePipe is picked by auto mode when stdin is not a terminal.
const uiModePipe = "pipe"

type cliFlags struct {
	configPath   string
	expectedType string
	uiMode       string
	locale       string
	logStderr    bool
	initProject  bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("scanner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to config JSON/JSONC/YAML")
	fs.StringVar(&f.expectedType, "type", "", "Expected content type (url, whatsapp, youtube, email, phone, wifi, barcode, text)")
	fs.StringVar(&f.uiMode, "ui", "", "UI mode: auto, tui or line")
	fs.StringVar(&f.locale, "locale", "", "Message language (en, es)")
	fs.BoolVar(&f.logStderr, "log-stderr", false, "Log to stderr instead of the log file")
	fs.BoolVar(&f.initProject, "init", false, "Write ./.qrscan/config.json and exit")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

// applyFlags lets command-line values win over every config layer.
func applyFlags(cfg *config.Config, f cliFlags) error {
	if v := strings.TrimSpace(f.expectedType); v != "" {
		t, err := content.Parse(v)
		if err != nil {
			return fmt.Errorf("--type: %w", err)
		}
		cfg.Scanner.ExpectedType = string(t)
	}
	if v := strings.ToLower(strings.TrimSpace(f.uiMode)); v != "" {
		switch v {
		case config.UIModeAuto, config.UIModeTUI, config.UIModeLine:
			cfg.UI.Mode = v
		default:
			return fmt.Errorf("--ui: unknown mode %q", f.uiMode)
		}
	}
	if v := strings.TrimSpace(f.locale); v != "" {
		cfg.UI.Locale = v
	}
	return nil
}

// resolveUIMode turns auto into tui on a terminal and pipe otherwise.
func resolveUIMode(mode string, stdinIsTerminal bool) string {
	if mode != config.UIModeAuto {
		return mode
	}
	if stdinIsTerminal {
		return config.UIModeTUI
	}
	return uiModePipe
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.initProject {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve cwd failed: %v\n", err)
			return 1
		}
		path, err := config.InitProjectConfigScaffold(cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init project config failed: %v\n", err)
			return 1
		}
		fmt.Println(path)
		return 0
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return 1
	}
	if err := applyFlags(&cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	i18n.Init(cfg.UI.Locale)

	var logOut io.Writer = os.Stderr
	if !flags.logStderr {
		f, err := logger.OpenFile(cfg.LogPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log failed: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New(cfg.Log.Level, logOut)

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.BaseDir, cfg.Storage.DBFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init storage failed: %v\n", err)
		return 1
	}
	defer store.Close()

	if imported, err := storage.ImportLegacySnapshot(cfg.Storage.ImportLegacy, cfg.Storage.HistoryKey, store); err != nil {
		log.Warn().Err(err).Str("path", cfg.Storage.ImportLegacy).Msg("legacy history import failed")
	} else if imported {
		log.Info().Str("path", cfg.Storage.ImportLegacy).Msg("legacy history imported")
	}

	var torch scan.Torch
	if cfg.Scanner.Torch {
		torch = &scan.SoftTorch{}
	}
	session := scan.New(scan.Options{
		History: history.New(store, history.Options{
			Key:    cfg.Storage.HistoryKey,
			Limit:  cfg.Scanner.HistoryLimit,
			Logger: log,
		}),
		ExpectedType: cfg.ExpectedContentType(),
		Torch:        torch,
		Logger:       log,
	})
	adapter := clip.New(log)

	mode := resolveUIMode(cfg.UI.Mode, term.IsTerminal(int(os.Stdin.Fd())))
	log.Debug().Str("mode", mode).Str("backend", cfg.Storage.Backend).Msg("starting ui")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	interval := time.Duration(cfg.Scanner.IntervalMS) * time.Millisecond

	var device io.ReadCloser
	if cfg.Scanner.Device != "" {
		device, err = os.Open(cfg.Scanner.Device)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open scanner device failed: %v\n", err)
			return 1
		}
		defer device.Close()
		log.Info().Str("device", cfg.Scanner.Device).Msg("reading payloads from device")
	}

	switch mode {
	case config.UIModeTUI:
		opts := tui.Options{Session: session, Clipboard: adapter, Locale: i18n.Global()}
		if device != nil {
			opts.Events = deviceEvents(ctx, device, interval, log)
		}
		err = tui.Run(opts)
	case config.UIModeLine:
		err = runLine(session, adapter, cfg, log)
	default:
		var in io.Reader = os.Stdin
		if device != nil {
			in = device
		}
		err = runPipe(ctx, session, in, os.Stdout, interval, log)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanner failed: %v\n", err)
		return 1
	}
	return 0
}

func runLine(session *scan.Session, adapter *clip.Adapter, cfg config.Config, log zerolog.Logger) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve cwd: %w", err)
	}
	reader, err := newLineReader(cfg.HistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", err)
	}
	defer reader.Close()

	env := &lineEnv{
		session:    session,
		clip:       adapter,
		out:        os.Stdout,
		projectDir: cwd,
	}
	printStatus(env.out, session.Snapshot())
	return runLoop(reader, env, log)
}
