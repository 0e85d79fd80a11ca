package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"qrscan/internal/clip"
	"qrscan/internal/config"
	"qrscan/internal/content"
	"qrscan/internal/decoder"
	"qrscan/internal/history"
	"qrscan/internal/i18n"
	"qrscan/internal/scan"

	"github.com/rs/zerolog"
)

type lineEnv struct {
	session    *scan.Session
	clip       *clip.Adapter
	out        io.Writer
	projectDir string
}

// newLineReader prefers readline and falls back to plain stdin. The
// returned reader is never nil.
func newLineReader(historyPath string) (decoder.LineReader, error) {
	r, err := decoder.NewReadlineReader(historyPath)
	if err != nil {
		return decoder.NewBasicLineReader(os.Stdin, os.Stdout), err
	}
	return r, nil
}

func runLoop(reader decoder.LineReader, env *lineEnv, log zerolog.Logger) error {
	for {
		line, err := reader.ReadLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			if exit := handleCommand(input, env); exit {
				return nil
			}
			continue
		}
		outcome := env.session.OnDecoded(line)
		log.Debug().Str("outcome", outcome.String()).Msg("line decoded")
		printOutcome(env.out, env.session.Snapshot(), outcome)
	}
}

// handleCommand runs one slash command and reports whether to exit.
func handleCommand(input string, env *lineEnv) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}
	out := env.out
	s := env.session

	switch parts[0] {
	case "/exit", "/quit":
		return true
	case "/help":
		fmt.Fprintln(out, i18n.T("line.help"))
	case "/pause":
		s.Pause()
		printStatus(out, s.Snapshot())
	case "/resume":
		s.Resume()
		printStatus(out, s.Snapshot())
	case "/type", "/default":
		if len(parts) < 2 {
			fmt.Fprintf(out, "usage: %s <type>\n", parts[0])
			return false
		}
		t, err := content.Parse(parts[1])
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		s.SetExpectedType(t)
		fmt.Fprintln(out, i18n.T("line.expected", typeLabel(t)))
		if parts[0] == "/default" {
			if err := config.WriteExpectedType(env.projectDir, t); err != nil {
				fmt.Fprintf(out, "save default failed: %v\n", err)
				return false
			}
			fmt.Fprintln(out, i18n.T("line.saved_default", t))
		}
	case "/copy":
		raw, ok := copyTarget(parts[1:], s)
		if !ok {
			fmt.Fprintln(out, i18n.T("result.empty"))
			return false
		}
		if env.clip != nil && env.clip.CopyText(raw) {
			fmt.Fprintln(out, i18n.T("copy.ok"))
		} else {
			fmt.Fprintln(out, i18n.T("copy.failed"))
		}
	case "/open":
		cur := s.Snapshot().Current
		if cur == nil {
			fmt.Fprintln(out, i18n.T("result.empty"))
			return false
		}
		if link, ok := clip.ActionLink(cur.Raw, cur.Type); ok {
			fmt.Fprintln(out, link)
		} else {
			fmt.Fprintln(out, i18n.Global().Description(cur.Type))
		}
	case "/clear":
		s.ClearCurrent()
		fmt.Fprintln(out, i18n.T("result.empty"))
	case "/clear-history":
		s.ClearHistory()
		fmt.Fprintln(out, i18n.T("history.cleared"))
	case "/history":
		printHistory(out, s.History())
	case "/torch":
		if !s.Torch().Available() {
			fmt.Fprintln(out, i18n.T("line.torch_na"))
			return false
		}
		if err := s.ToggleTorch(); err != nil {
			fmt.Fprintf(out, "torch: %v\n", err)
			return false
		}
		if s.Torch().IsOn() {
			fmt.Fprintln(out, i18n.T("status.torch_on"))
		} else {
			fmt.Fprintln(out, i18n.T("status.torch_off"))
		}
	default:
		fmt.Fprintln(out, i18n.T("line.unknown_command", parts[0]))
	}
	return false
}

// copyTarget resolves /copy [n]: no argument means the current result,
// n is a 1-based history position.
func copyTarget(args []string, s *scan.Session) (string, bool) {
	if len(args) == 0 {
		cur := s.Snapshot().Current
		if cur == nil {
			return "", false
		}
		return cur.Raw, true
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return "", false
	}
	entries := s.History()
	if n > len(entries) {
		return "", false
	}
	return entries[n-1].Raw, true
}

func typeLabel(t content.ContentType) string {
	return i18n.Global().Label(t)
}

func printStatus(out io.Writer, st scan.State) {
	status := i18n.T("status.paused")
	if st.Active {
		status = i18n.T("status.scanning")
	}
	fmt.Fprintf(out, "%s · %s: %s\n", status, i18n.T("status.expected"), typeLabel(st.ExpectedType))
}

func printOutcome(out io.Writer, st scan.State, outcome scan.Outcome) {
	switch outcome {
	case scan.OutcomeAccepted:
		if st.Current == nil {
			return
		}
		fmt.Fprintln(out, i18n.T("line.accepted", typeLabel(st.Current.Type), st.Current.Raw))
		if link, ok := clip.ActionLink(st.Current.Raw, st.Current.Type); ok {
			fmt.Fprintf(out, "  %s\n", link)
		}
	case scan.OutcomeMismatch:
		fmt.Fprintln(out, i18n.T("line.mismatch", i18n.T("advisory.mismatch")))
	default:
		if !st.Active {
			fmt.Fprintln(out, i18n.T("line.ignored"))
		}
	}
}

func printHistory(out io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, i18n.T("line.history_empty"))
		return
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%2d. [%s] %s  %s\n", i+1, typeLabel(e.Type), e.ScannedAt.Local().Format(time.DateTime), e.Raw)
	}
}

// runPipe reads newline-terminated payloads from in at the decoder cadence.
// Each accepted code resumes the session so a batch of codes is read in one
// pass.
func runPipe(ctx context.Context, session *scan.Session, in io.Reader, out io.Writer, interval time.Duration, log zerolog.Logger) error {
	return session.Run(ctx, deviceEvents(ctx, in, interval, log), func(_ decoder.Event, outcome scan.Outcome) {
		printOutcome(out, session.Snapshot(), outcome)
		if outcome == scan.OutcomeAccepted {
			session.Resume()
		}
	})
}

// deviceEvents turns newline-terminated payloads from r into decoder events
// paced at interval. The channel closes at EOF or when ctx ends.
func deviceEvents(ctx context.Context, r io.Reader, interval time.Duration, log zerolog.Logger) <-chan decoder.Event {
	return decoder.NewLineSource(decoder.NewBasicLineReader(r, nil), interval, log).Run(ctx)
}
