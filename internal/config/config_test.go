package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alttpo/lexpr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantRead  lexpr.ParseOptions
		wantPrint lexpr.PrintOptions
		wantErr   bool
	}{
		{
			name:      "xpass: empty file keeps defaults",
			yaml:      "",
			wantRead:  lexpr.DefaultParseOptions(),
			wantPrint: lexpr.DefaultPrintOptions(),
		},
		{
			name:      "xpass: dialect presets",
			yaml:      "read:\n  dialect: elisp\nprint:\n  dialect: r7rs\n",
			wantRead:  lexpr.DialectElisp.ParseOptions(),
			wantPrint: lexpr.DialectR7RS.PrintOptions(),
		},
		{
			name: "xpass: overrides on top of a preset",
			yaml: `
read:
  dialect: r6rs
  keywords: [colon-prefix, octothorpe]
  nil-symbol: special
  t-symbol: "true"
  brackets: vector
print:
  dialect: elisp
  keyword-style: colon-postfix
  bytes-style: r7rs
`,
			wantRead: lexpr.ParseOptions{
				Keywords:  lexpr.KeywordColonPrefix | lexpr.KeywordOctothorpe,
				NilSymbol: lexpr.NilSymbolSpecial,
				TSymbol:   lexpr.TSymbolTrue,
				Brackets:  lexpr.BracketsVector,
			},
			wantPrint: func() lexpr.PrintOptions {
				o := lexpr.DialectElisp.PrintOptions()
				o.KeywordStyle = lexpr.KeywordStyleColonPostfix
				o.BytesStyle = lexpr.BytesStyleR7RS
				return o
			}(),
		},
		{
			name:      "xpass: empty keyword list disables keywords",
			yaml:      "read:\n  keywords: []\n",
			wantRead:  lexpr.ParseOptions{},
			wantPrint: lexpr.DefaultPrintOptions(),
		},
		{
			name:    "xfail: unknown dialect",
			yaml:    "read:\n  dialect: cobol\n",
			wantErr: true,
		},
		{
			name:    "xfail: unknown keyword syntax",
			yaml:    "read:\n  keywords: [sigil]\n",
			wantErr: true,
		},
		{
			name:    "xfail: unknown print style",
			yaml:    "print:\n  vector-style: braces\n",
			wantErr: true,
		},
		{
			name:    "xfail: malformed yaml",
			yaml:    "read: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			gotRead, err := c.ParseOptions()
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(gotRead, tt.wantRead) {
				t.Errorf("ParseOptions() = %+v, want %+v", gotRead, tt.wantRead)
			}
			gotPrint, err := c.PrintOptions()
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(gotPrint, tt.wantPrint) {
				t.Errorf("PrintOptions() = %+v, want %+v", gotPrint, tt.wantPrint)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexpr.yaml")
	err := os.WriteFile(path, []byte("repl:\n  prompt: \"> \"\n  history: \"\"\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.REPL.Prompt != "> " {
		t.Errorf("prompt = %q", c.REPL.Prompt)
	}
	if c.HistoryPath() != "" {
		t.Errorf("history = %q, want disabled", c.HistoryPath())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestLoadDefault(t *testing.T) {
	t.Setenv(EnvPath, "")
	c, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, Default()) {
		t.Errorf("LoadDefault() = %+v, want defaults", c)
	}

	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("print:\n  dialect: elisp\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, path)
	c, err = LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if c.Print.Dialect != "elisp" {
		t.Errorf("dialect = %q", c.Print.Dialect)
	}
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	c := Default()
	if got, want := c.HistoryPath(), filepath.Join(home, ".lexpr_history"); got != want {
		t.Errorf("HistoryPath() = %q, want %q", got, want)
	}
	c.REPL.History = "/tmp/h"
	if got := c.HistoryPath(); got != "/tmp/h" {
		t.Errorf("HistoryPath() = %q", got)
	}
}
