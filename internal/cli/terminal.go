package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/ytgrab/internal/model"
)

const (
	confirmQuestion = "Download? [y/N] "
	spinnerTick     = 100 * time.Millisecond
)

// terminalConfirmer asks the confirmation question on a terminal
type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func newTerminalConfirmer(in io.Reader, out io.Writer, yes bool) *terminalConfirmer {
	return &terminalConfirmer{in: bufio.NewReader(in), out: out, yes: yes}
}

type readResult struct {
	line string
	err  error
}

// Confirm prints the prompt and reads one line. EOF counts as no.
func (c *terminalConfirmer) Confirm(ctx context.Context, prompt model.Prompt) (bool, error) {
	fmt.Fprintln(c.out, prompt.Message())
	if c.yes {
		fmt.Fprintln(c.out, confirmQuestion+"y")
		return true, nil
	}
	fmt.Fprint(c.out, confirmQuestion)

	answer := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		answer <- readResult{line: line, err: err}
	}()

	select {
	case r := <-answer:
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return false, goerr.Wrap(r.err, "failed to read answer")
		}
		return isYes(r.line), nil
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false, ctx.Err()
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// spinner is the terminal counterpart of the GUI progress bar. It starts
// once bytes move and knows nothing about how many.
type spinner struct {
	out io.Writer

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func newSpinner(out io.Writer) *spinner {
	return &spinner{out: out}
}

func (s *spinner) onState(state model.State) {
	switch state {
	case model.StateDownloading, model.StateConverting:
		s.describe(state.String())
	}
}

func (s *spinner) describe(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar != nil {
		s.bar.Describe(text)
		return
	}

	s.bar = progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription(text),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionEnableColorCodes(true),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.bar, s.stop, s.done)
}

func (s *spinner) loop(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

// finish stops the spinner; calling it again is a no-op
func (s *spinner) finish() {
	s.mu.Lock()
	bar, stop, done := s.bar, s.stop, s.done
	s.bar, s.stop, s.done = nil, nil, nil
	s.mu.Unlock()

	if bar == nil {
		return
	}
	close(stop)
	<-done
	_ = bar.Finish()
}
