package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alttpo/lexpr"
	"github.com/peterh/liner"
)

const continuationPrompt = "... "

// session accumulates input lines until they hold complete datums, then
// prints each datum in the output syntax.
type session struct {
	read   lexpr.ParseOptions
	print  lexpr.PrintOptions
	out    io.Writer
	logger *log.Logger

	buf strings.Builder
}

func (s *session) pending() bool { return s.buf.Len() > 0 }

func (s *session) reset() { s.buf.Reset() }

// feed adds one line of input. Datums are printed once the buffered text
// parses completely; text ending inside a datum stays buffered.
func (s *session) feed(line string) {
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')

	values, err := lexpr.NewParser(strings.NewReader(s.buf.String()), s.read).All()
	if lexpr.IsEOF(err) {
		return
	}
	s.reset()
	if err != nil {
		s.logger.Print(err)
		return
	}
	for _, v := range values {
		fmt.Fprintln(s.out, lexpr.ToString(v, s.print))
	}
}

func cmdREPL(args []string, out io.Writer, errOut io.Writer) int {
	logger := log.New(errOut, "lexpr: ", 0)
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var o options
	o.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: lexpr repl [-config <file>] [-from <dialect>] [-to <dialect>]")
		return 2
	}
	cfg, popts, wopts, err := o.resolve()
	if err != nil {
		logger.Print(err)
		return 2
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := cfg.HistoryPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	s := &session{read: popts, print: wopts, out: out, logger: logger}
	for {
		prompt := cfg.REPL.Prompt
		if s.pending() {
			prompt = continuationPrompt
		}
		text, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			s.reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Print(err)
			return 1
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		s.feed(text)
	}

	if history != "" {
		f, err := os.Create(history)
		if err != nil {
			logger.Printf("write history: %v", err)
			return 0
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			logger.Printf("write history: %v", err)
		}
	}
	return 0
}
