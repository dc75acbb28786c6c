// Package prompt collects package measurements from an operator at a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/muliwe/go-package-sorter/internal/measurement"
)

// Messages shown when an entry is rejected
const (
	MsgInvalidNumber = "Please enter a valid number."
	MsgNotPositive   = "Value must be positive."
)

// Labels for each reading, in the order they are asked for
const (
	LabelWidth  = "Enter width in cm: "
	LabelHeight = "Enter height in cm: "
	LabelLength = "Enter length in cm: "
	LabelMass   = "Enter mass in kg: "
)

// ErrInputClosed is returned when input ends before a valid value was entered
var ErrInputClosed = errors.New("input closed before a valid value was entered")

// Prompter asks for readings and retries until each one is valid
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	log     *slog.Logger

	start sync.Once
	lines chan line
}

// line is one read from input. The channel is closed after the last one.
type line struct {
	text string
	err  error
}

// New creates a Prompter reading answers from in and writing prompts to out.
// A nil logger discards debug output.
func New(in io.Reader, out io.Writer, log *slog.Logger) *Prompter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
		log:     log,
	}
}

// Number prints label and reads lines until one parses as a positive number
func (p *Prompter) Number(ctx context.Context, label string) (float64, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if _, err := fmt.Fprint(p.out, label); err != nil {
			return 0, fmt.Errorf("write prompt: %w", err)
		}

		text, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}

		v, err := measurement.ParseValue(text)
		if err == nil {
			return v, nil
		}

		p.log.Debug("rejected entry", "label", label, "input", text, "attempt", attempt, "error", err)

		msg := MsgInvalidNumber
		if errors.Is(err, measurement.ErrNotPositive) {
			msg = MsgNotPositive
		}
		if _, err := fmt.Fprintln(p.out, msg); err != nil {
			return 0, fmt.Errorf("write message: %w", err)
		}
	}
}

// readLine waits for the next line of input or for ctx to be done.
// Input is read on a separate goroutine so a blocked terminal read does not
// delay cancellation.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() {
		p.lines = make(chan line)
		go p.readLines()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, io.EOF)
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return l.text, nil
	}
}

func (p *Prompter) readLines() {
	defer close(p.lines)

	for p.scanner.Scan() {
		p.lines <- line{text: p.scanner.Text()}
	}
	if err := p.scanner.Err(); err != nil {
		p.lines <- line{err: err}
	}
}

// Measurements asks for width, height, length and mass in that order
func (p *Prompter) Measurements(ctx context.Context) (measurement.Measurements, error) {
	var m measurement.Measurements

	steps := []struct {
		label string
		dst   *float64
	}{
		{LabelWidth, &m.Width},
		{LabelHeight, &m.Height},
		{LabelLength, &m.Length},
		{LabelMass, &m.Mass},
	}

	for _, s := range steps {
		v, err := p.Number(ctx, s.label)
		if err != nil {
			return measurement.Measurements{}, err
		}
		*s.dst = v
	}

	return m, nil
}
