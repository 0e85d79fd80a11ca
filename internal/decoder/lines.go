package decoder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
)

// LineReader reads one line of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type basicLineReader struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewBasicLineReader reads lines from in, echoing prompts to out when set.
func NewBasicLineReader(in io.Reader, out io.Writer) LineReader {
	return &basicLineReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (b *basicLineReader) ReadLine(prompt string) (string, error) {
	if b.out != nil && prompt != "" {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicLineReader) Close() error { return nil }

type readlineReader struct {
	instance *readline.Instance
}

// NewReadlineReader returns an interactive line editor keeping its history
// in historyPath.
func NewReadlineReader(historyPath string) (LineReader, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	return &readlineReader{instance: instance}, nil
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	line, err := r.instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *readlineReader) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// LineSource is a keyboard-wedge decoder: hardware scanners type the payload
// followed by Enter. Blank lines are decode noise and produce no event.
type LineSource struct {
	reader   LineReader
	throttle *Throttle
	log      zerolog.Logger
}

func NewLineSource(r LineReader, interval time.Duration, log zerolog.Logger) *LineSource {
	return &LineSource{
		reader:   r,
		throttle: NewThrottle(interval),
		log:      log,
	}
}

// Run starts reading on a new goroutine. The channel closes at end of input
// or when ctx is done.
func (s *LineSource) Run(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			line, err := s.reader.ReadLine("")
			if err != nil {
				if !errors.Is(err, io.EOF) {
					s.log.Warn().Err(err).Msg("decoder input failed")
				}
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := s.throttle.Wait(ctx); err != nil {
				return
			}
			select {
			case out <- Event{Text: line}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
