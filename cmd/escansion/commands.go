package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/internal/api"
)

type scanCmd struct {
	File string `arg:"" optional:"" default:"-" help:"CoNLL-U file, '-' for stdin."`

	Format        string `name:"format" default:"pattern" enum:"pattern,binary,indexed" help:"Rhythm format."`
	Separator     string `name:"separator" default:"-" help:"Separator for the indexed format."`
	NoRhyme       bool   `name:"no-rhyme" help:"Skip rhyme analysis and stanza matching."`
	Offset        int    `name:"offset" default:"4" help:"Rhyme recency window in lines; negative disables it."`
	BestEffort    bool   `name:"best-effort" help:"Report a rhyme scheme for stanzas that match no structure."`
	Lengths       []int  `name:"lengths" sep:"," help:"Expected line lengths, cycled over each stanza."`
	Delimiter     string `name:"delimiter" help:"Regular expression for lines that separate stanzas."`
	NoBlankSplit  bool   `name:"no-blank-split" help:"Do not start a new stanza at blank lines."`
	Tags          bool   `name:"tags" help:"Keep part-of-speech tags and show the words of each line."`
	MaxFusionBits int    `name:"max-fusion-bits" default:"10" help:"Bound on liaison positions enumerated per line."`
}

func (c *scanCmd) options() escansion.Options {
	return escansion.Options{
		RhythmFormat:      escansion.RhythmFormat(c.Format),
		IndexedSeparator:  c.Separator,
		RhymeAnalysis:     !c.NoRhyme,
		Offset:            c.Offset,
		BestEffort:        c.BestEffort,
		ExpectedLengths:   c.Lengths,
		StanzaDelimiter:   c.Delimiter,
		SplitOnBlankLines: !c.NoBlankSplit,
		KeepTags:          c.Tags,
		MaxFusionBits:     c.MaxFusionBits,
	}
}

func (c *scanCmd) Run(e *env) error {
	in := e.stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	stanzas, err := e.scanner.ScanText(context.Background(), string(text), c.options())
	if err != nil {
		return err
	}
	if e.json {
		return writeJSON(e.stdout, api.ToScanResponse(stanzas))
	}
	for i, st := range stanzas {
		if i > 0 {
			fmt.Fprintln(e.stdout)
		}
		printStanza(e.stdout, st, c.Tags)
	}
	return nil
}

func printStanza(w io.Writer, st escansion.Stanza, tags bool) {
	if st.Structure != "" {
		header := fmt.Sprintf("# %s %s", st.Structure, escansion.SchemeOf(st.Lines))
		if st.BestEffort != nil {
			header += " (" + st.BestEffort.String() + ")"
		}
		fmt.Fprintln(w, strings.TrimSpace(header))
	}
	for _, l := range st.Lines {
		fmt.Fprintf(w, "%s\t%s\t%d", l.Line.Text(), l.Rhythm, l.Length)
		if l.Rhyme != "" {
			fmt.Fprintf(w, "\t%s", l.Rhyme)
		}
		fmt.Fprintln(w)
		if !tags {
			continue
		}
		for _, word := range l.Line.Words() {
			syls := make([]string, len(word.Syllables))
			for i, s := range word.Syllables {
				syls[i] = s.Text
			}
			fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", word.Text, strings.Join(syls, "-"), word.StressPosition, word.POS)
		}
	}
}

type syllabifyCmd struct {
	Words []string `arg:"" help:"Words to split."`
}

func (c *syllabifyCmd) Run(e *env) error {
	out := make([]api.SyllabifyResponse, 0, len(c.Words))
	for _, word := range c.Words {
		out = append(out, api.ToSyllabifyResponse(word, e.scanner.Syllabify(word)))
	}
	if e.json {
		return writeJSON(e.stdout, out)
	}
	for _, r := range out {
		line := strings.Join(r.Syllables, "-")
		if r.Alternative != nil {
			line += " | " + strings.Join(r.Alternative, "-")
		}
		fmt.Fprintln(e.stdout, line)
	}
	return nil
}

type structuresCmd struct{}

func (c *structuresCmd) Run(e *env) error {
	resp := api.ToStructuresResponse(escansion.Catalog())
	if e.json {
		return writeJSON(e.stdout, resp)
	}
	for _, st := range resp.Structures {
		fmt.Fprintf(e.stdout, "%s\t%s\t%s\n", st.Name, st.Kind, st.Scheme)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
