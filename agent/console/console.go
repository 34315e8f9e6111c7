// Package console runs the interactive butler conversation on a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

const (
	Greeting      = "🎩 Ask me about a guest you've come across at the party sir,\n I'm here to help you..."
	InputPrompt   = "🦇: "
	Confirmation  = "🎩 Will that be all sir?"
	ReplyPrefix   = "🎩 Alfred's Response: "
	FarewellMark  = "👋 "
	dividerLength = 30
)

var Partings = []string{
	"🎩 Tata for now sir.",
	"🎩 Good day Master Wayne.",
	"🎩 Enjoy yourself Master Wayne.",
	"🎩 Feel Free to summon me again for assistance.",
	"🎩 Always at your service sir.",
}

const (
	ansiWhite  = "\x1b[37m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

type Option func(*Printer)

// WithColor enables ANSI colours. Callers decide based on the terminal.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.color = enabled
	}
}

// WithFarewell replaces the random parting line picker.
func WithFarewell(pick func() string) Option {
	return func(p *Printer) {
		if pick != nil {
			p.farewell = pick
		}
	}
}

// Printer writes console lines with optional colour.
type Printer struct {
	out      io.Writer
	color    bool
	farewell func() string
}

func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{
		out:      out,
		farewell: randomParting,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *Printer) Line(s string) {
	fmt.Fprintln(p.out, p.paint(ansiWhite, s))
}

// Status prints a startup progress line.
func (p *Printer) Status(s string) {
	fmt.Fprintln(p.out, p.paint(ansiYellow, s))
}

func (p *Printer) Ready(s string) {
	fmt.Fprintln(p.out, p.paint(ansiGreen, s))
}

func (p *Printer) Divider() {
	p.Line(strings.Repeat("-", dividerLength))
}

func (p *Printer) Prompt() {
	fmt.Fprint(p.out, InputPrompt)
}

func (p *Printer) Farewell() {
	p.Line(FarewellMark + p.farewell())
	p.Divider()
}

func randomParting() string {
	return Partings[rand.IntN(len(Partings))]
}

// Run reads utterances from in until the user confirms they are done, input
// ends, or ctx is cancelled. Each utterance is handed to the dispatcher and
// its reply printed.
func Run(ctx context.Context, in io.Reader, p *Printer, dispatcher contractx.Dispatcher) error {
	if dispatcher == nil {
		return errors.New("dispatcher is required")
	}

	lines := scanLines(ctx, in)
	next := func() (string, bool) {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lines:
			return strings.TrimSpace(line), ok
		}
	}

	for {
		p.Line(Greeting)
		p.Prompt()
		text, ok := next()
		if !ok {
			fmt.Fprintln(p.out)
			p.Divider()
			p.Farewell()
			return nil
		}
		p.Divider()

		if isExit(text) {
			p.Line(Confirmation)
			p.Prompt()
			again, ok := next()
			if !ok {
				fmt.Fprintln(p.out)
				p.Divider()
				p.Farewell()
				return nil
			}
			if isYes(again) {
				p.Divider()
				p.Farewell()
				return nil
			}
			continue
		}
		if text == "" {
			continue
		}

		reply, err := dispatcher.HandleMessage(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				p.Divider()
				p.Farewell()
				return nil
			}
			log.Error().Err(err).Msg("dispatcher failed")
			reply = "My apologies sir, I could not complete that request."
		}
		fmt.Fprintln(p.out, ReplyPrefix+reply)
		p.Divider()
	}
}

func scanLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			log.Warn().Err(err).Msg("console input failed")
		}
	}()
	return lines
}

func isExit(s string) bool {
	s = strings.ToLower(s)
	return s == "exit" || s == "quit"
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "yes" || s == "y"
}
