package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alttpo/lexpr"
	"github.com/alttpo/lexpr/internal/config"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "fmt":
		return cmdFmt(args[1:], in, out, errOut)
	case "check":
		return cmdCheck(args[1:], in, out, errOut)
	case "repl":
		return cmdREPL(args[1:], out, errOut)
	case "version":
		fmt.Fprintf(out, "lexpr %s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "lexpr: read, check and convert S-expressions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lexpr fmt [-config <file>] [-from <dialect>] [-to <dialect>] [file]")
	fmt.Fprintln(w, "  lexpr check [-config <file>] [-from <dialect>] [file]")
	fmt.Fprintln(w, "  lexpr repl [-config <file>] [-from <dialect>] [-to <dialect>]")
	fmt.Fprintln(w, "  lexpr version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - dialects: default, r6rs, r7rs, elisp")
	fmt.Fprintln(w, "  - with no file, or file \"-\", input is read from stdin")
	fmt.Fprintf(w, "  - %s names a config file used when -config is not given\n", config.EnvPath)
}

// options holds the flags shared by the subcommands.
type options struct {
	configPath string
	from       string
	to         string
}

func (o *options) register(fs *flag.FlagSet, withTo bool) {
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.from, "from", "", "input dialect")
	if withTo {
		fs.StringVar(&o.to, "to", "", "output dialect")
	}
}

func (o *options) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if o.from != "" {
		cfg.Read.Dialect = o.from
	}
	if o.to != "" {
		cfg.Print.Dialect = o.to
	}
	return cfg, nil
}

func (o *options) resolve() (*config.Config, lexpr.ParseOptions, lexpr.PrintOptions, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, lexpr.ParseOptions{}, lexpr.PrintOptions{}, err
	}
	popts, err := cfg.ParseOptions()
	if err != nil {
		return nil, lexpr.ParseOptions{}, lexpr.PrintOptions{}, err
	}
	wopts, err := cfg.PrintOptions()
	if err != nil {
		return nil, lexpr.ParseOptions{}, lexpr.PrintOptions{}, err
	}
	return cfg, popts, wopts, nil
}

func openInput(fs *flag.FlagSet, in io.Reader) (name string, r io.Reader, closeFn func(), err error) {
	if fs.NArg() == 0 || fs.Arg(0) == "-" {
		return "<stdin>", in, func() {}, nil
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return "", nil, nil, err
	}
	return fs.Arg(0), f, func() { _ = f.Close() }, nil
}

// position renders a parse error as file:line:col: message.
func position(name string, err error) string {
	var e *lexpr.Error
	if errors.As(err, &e) {
		return fmt.Sprintf("%s:%d:%d: %v", name, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", name, err)
}

func cmdFmt(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	logger := log.New(errOut, "lexpr: ", 0)
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var o options
	o.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: lexpr fmt [-config <file>] [-from <dialect>] [-to <dialect>] [file]")
		return 2
	}
	_, popts, wopts, err := o.resolve()
	if err != nil {
		logger.Print(err)
		return 2
	}

	name, r, closeFn, err := openInput(fs, in)
	if err != nil {
		logger.Print(err)
		return 1
	}
	defer closeFn()

	p := lexpr.NewParser(r, popts)
	for {
		v, err := p.Next()
		if err == io.EOF {
			return 0
		}
		if err != nil {
			logger.Print(position(name, err))
			return 1
		}
		if _, err := fmt.Fprintln(out, lexpr.ToString(v, wopts)); err != nil {
			logger.Print(err)
			return 1
		}
	}
}

func cmdCheck(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	logger := log.New(errOut, "lexpr: ", 0)
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var o options
	o.register(fs, false)
	quiet := fs.Bool("q", false, "print nothing on success")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: lexpr check [-config <file>] [-from <dialect>] [file]")
		return 2
	}
	_, popts, _, err := o.resolve()
	if err != nil {
		logger.Print(err)
		return 2
	}

	name, r, closeFn, err := openInput(fs, in)
	if err != nil {
		logger.Print(err)
		return 1
	}
	defer closeFn()

	values, err := lexpr.NewParser(r, popts).All()
	if err != nil {
		logger.Print(position(name, err))
		return 1
	}
	if !*quiet {
		fmt.Fprintf(out, "%s: %d datums ok\n", name, len(values))
	}
	return 0
}
