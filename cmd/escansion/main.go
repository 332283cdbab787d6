// Command escansion scans Spanish verse from pre-tagged CoNLL-U input.
//
//	escansion scan poem.conllu [--format=binary] [--best-effort] ...
//	escansion syllabify WORD...
//	escansion structures
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/internal/app"
	"github.com/cours-de-latin/escansion/internal/config"
	"github.com/cours-de-latin/escansion/internal/conllu"
)

// cli defines the command-line interface.
type cli struct {
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level for diagnostics on stderr."`
	JSON     bool   `name:"json" help:"Print JSON instead of text."`

	Scan       scanCmd       `cmd:"" help:"Scan the stanzas of a CoNLL-U file."`
	Syllabify  syllabifyCmd  `cmd:"" help:"Split words into syllables."`
	Structures structuresCmd `cmd:"" help:"List the stanza catalog in matching order."`
}

// env is bound into every command's Run method.
type env struct {
	scanner *escansion.Scanner
	stdin   io.Reader
	stdout  io.Writer
	json    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "escansion:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("escansion"),
		kong.Description("Metrical scansion of Spanish verse."),
		kong.UsageOnError(),
		kong.Writers(stdout, os.Stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := app.NewLogger(config.LogConfig{Level: c.LogLevel, Format: "text"})
	scanner, err := escansion.New(conllu.Tagger{}, escansion.WithLogger(logger))
	if err != nil {
		return err
	}
	return ctx.Run(&env{scanner: scanner, stdin: stdin, stdout: stdout, json: c.JSON})
}
