// Package config loads the lexpr command's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alttpo/lexpr"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "LEXPR_CONFIG"

type Config struct {
	Read  ReadConfig  `yaml:"read"`
	Print PrintConfig `yaml:"print"`
	REPL  REPLConfig  `yaml:"repl"`
}

// ReadConfig starts from the Dialect preset; every other non-empty field
// overrides it.
type ReadConfig struct {
	Dialect   string   `yaml:"dialect"`
	Keywords  []string `yaml:"keywords"`
	NilSymbol string   `yaml:"nil-symbol"`
	TSymbol   string   `yaml:"t-symbol"`
	Brackets  string   `yaml:"brackets"`
}

type PrintConfig struct {
	Dialect      string `yaml:"dialect"`
	KeywordStyle string `yaml:"keyword-style"`
	NilStyle     string `yaml:"nil-style"`
	BoolStyle    string `yaml:"bool-style"`
	VectorStyle  string `yaml:"vector-style"`
	BytesStyle   string `yaml:"bytes-style"`
}

type REPLConfig struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

func Default() *Config {
	return &Config{
		Read:  ReadConfig{Dialect: "default"},
		Print: PrintConfig{Dialect: "default"},
		REPL: REPLConfig{
			Prompt:  "lexpr> ",
			History: "~/.lexpr_history",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadDefault loads the file named by LEXPR_CONFIG, or returns the defaults
// when the variable is unset.
func LoadDefault() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := c.ParseOptions(); err != nil {
		return nil, err
	}
	if _, err := c.PrintOptions(); err != nil {
		return nil, err
	}
	return c, nil
}

func unknown(field, value string) error {
	return fmt.Errorf("config: unknown %s %q", field, value)
}

func (c *Config) ParseOptions() (lexpr.ParseOptions, error) {
	r := c.Read
	d, err := lexpr.ParseDialect(r.Dialect)
	if err != nil {
		return lexpr.ParseOptions{}, fmt.Errorf("config: read: %w", err)
	}
	opts := d.ParseOptions()

	if r.Keywords != nil {
		opts.Keywords = 0
		for _, k := range r.Keywords {
			switch strings.ToLower(k) {
			case "colon-prefix":
				opts.Keywords |= lexpr.KeywordColonPrefix
			case "colon-postfix":
				opts.Keywords |= lexpr.KeywordColonPostfix
			case "octothorpe":
				opts.Keywords |= lexpr.KeywordOctothorpe
			default:
				return opts, unknown("keyword syntax", k)
			}
		}
	}

	switch strings.ToLower(r.NilSymbol) {
	case "":
	case "default":
		opts.NilSymbol = lexpr.NilSymbolDefault
	case "empty-list":
		opts.NilSymbol = lexpr.NilSymbolEmptyList
	case "special":
		opts.NilSymbol = lexpr.NilSymbolSpecial
	default:
		return opts, unknown("nil-symbol", r.NilSymbol)
	}

	switch strings.ToLower(r.TSymbol) {
	case "":
	case "default":
		opts.TSymbol = lexpr.TSymbolDefault
	case "true":
		opts.TSymbol = lexpr.TSymbolTrue
	default:
		return opts, unknown("t-symbol", r.TSymbol)
	}

	switch strings.ToLower(r.Brackets) {
	case "":
	case "list":
		opts.Brackets = lexpr.BracketsList
	case "vector":
		opts.Brackets = lexpr.BracketsVector
	default:
		return opts, unknown("brackets", r.Brackets)
	}

	return opts, nil
}

func (c *Config) PrintOptions() (lexpr.PrintOptions, error) {
	p := c.Print
	d, err := lexpr.ParseDialect(p.Dialect)
	if err != nil {
		return lexpr.PrintOptions{}, fmt.Errorf("config: print: %w", err)
	}
	opts := d.PrintOptions()

	switch strings.ToLower(p.KeywordStyle) {
	case "":
	case "octothorpe":
		opts.KeywordStyle = lexpr.KeywordStyleOctothorpe
	case "colon-prefix":
		opts.KeywordStyle = lexpr.KeywordStyleColonPrefix
	case "colon-postfix":
		opts.KeywordStyle = lexpr.KeywordStyleColonPostfix
	default:
		return opts, unknown("keyword-style", p.KeywordStyle)
	}

	switch strings.ToLower(p.NilStyle) {
	case "":
	case "token":
		opts.NilStyle = lexpr.NilStyleToken
	case "symbol":
		opts.NilStyle = lexpr.NilStyleSymbol
	case "empty-list":
		opts.NilStyle = lexpr.NilStyleEmptyList
	default:
		return opts, unknown("nil-style", p.NilStyle)
	}

	switch strings.ToLower(p.BoolStyle) {
	case "":
	case "token":
		opts.BoolStyle = lexpr.BoolStyleToken
	case "long-token":
		opts.BoolStyle = lexpr.BoolStyleLongToken
	case "symbol":
		opts.BoolStyle = lexpr.BoolStyleSymbol
	default:
		return opts, unknown("bool-style", p.BoolStyle)
	}

	switch strings.ToLower(p.VectorStyle) {
	case "":
	case "octothorpe":
		opts.VectorStyle = lexpr.VectorStyleOctothorpe
	case "brackets":
		opts.VectorStyle = lexpr.VectorStyleBrackets
	default:
		return opts, unknown("vector-style", p.VectorStyle)
	}

	switch strings.ToLower(p.BytesStyle) {
	case "":
	case "r6rs":
		opts.BytesStyle = lexpr.BytesStyleR6RS
	case "r7rs":
		opts.BytesStyle = lexpr.BytesStyleR7RS
	case "elisp":
		opts.BytesStyle = lexpr.BytesStyleElisp
	default:
		return opts, unknown("bytes-style", p.BytesStyle)
	}

	return opts, nil
}

// HistoryPath expands a leading ~ in the REPL history path. An empty path
// disables history.
func (c *Config) HistoryPath() string {
	h := c.REPL.History
	if h == "~" || strings.HasPrefix(h, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(h[1:], "/"))
	}
	return h
}
