package escansion

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Unknown is the structure name reported when no catalog entry matches.
const Unknown = "unknown"

// DefaultMaxFusionBits bounds how many liaison positions of one kind are
// enumerated when a line is regrouped.
const DefaultMaxFusionBits = 10

// Options controls a scan.
type Options struct {
	RhythmFormat RhythmFormat
	// IndexedSeparator joins positions in FormatIndexed; default "-".
	IndexedSeparator string
	RhymeAnalysis    bool
	// Offset is the rhyme recency window; 0 means DefaultOffset and a
	// negative value disables the window.
	Offset int
	// BestEffort reports the rhyme scheme of stanzas that match no
	// catalog entry, choosing the variant where most lines rhyme.
	BestEffort bool
	// ExpectedLengths, when set, is the length each line is regrouped to,
	// cycled over the lines of a stanza.
	ExpectedLengths []int
	// StanzaDelimiter is a regular expression; a line whose text matches
	// it separates two stanzas and is dropped.
	StanzaDelimiter string
	// SplitOnBlankLines starts a new stanza after an empty line.
	SplitOnBlankLines bool
	// KeepTags keeps part of speech and morphology on output words.
	KeepTags      bool
	MaxFusionBits int
}

// DefaultOptions returns the options used by the command-line tool and
// the server when nothing is configured.
func DefaultOptions() Options {
	return Options{
		RhythmFormat:      FormatPattern,
		IndexedSeparator:  "-",
		RhymeAnalysis:     true,
		Offset:            DefaultOffset,
		SplitOnBlankLines: true,
		MaxFusionBits:     DefaultMaxFusionBits,
	}
}

func (o Options) normalize() (Options, *regexp.Regexp, error) {
	f, err := ParseRhythmFormat(string(o.RhythmFormat))
	if err != nil {
		return o, nil, err
	}
	o.RhythmFormat = f
	if o.IndexedSeparator == "" {
		o.IndexedSeparator = "-"
	}
	switch {
	case o.Offset == 0:
		o.Offset = DefaultOffset
	case o.Offset < 0:
		o.Offset = 0
	}
	if o.MaxFusionBits <= 0 {
		o.MaxFusionBits = DefaultMaxFusionBits
	}
	if o.MaxFusionBits > 16 {
		return o, nil, fmt.Errorf("%w: max fusion bits %d", ErrBadOption, o.MaxFusionBits)
	}
	for _, n := range o.ExpectedLengths {
		if n <= 0 {
			return o, nil, fmt.Errorf("%w: expected length %d", ErrBadOption, n)
		}
	}
	var delim *regexp.Regexp
	if o.StanzaDelimiter != "" {
		delim, err = regexp.Compile(o.StanzaDelimiter)
		if err != nil {
			return o, nil, fmt.Errorf("%w: stanza delimiter: %w", ErrBadOption, err)
		}
	}
	return o, delim, nil
}

// ScanText tags text with the Scanner's tagger and scans the tokens.
func (s *Scanner) ScanText(ctx context.Context, text string, opts Options) ([]Stanza, error) {
	if s.tagger == nil {
		return nil, ErrNilTagger
	}
	tokens, err := s.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	return s.ScanTokens(ctx, tokens, opts)
}

// ScanTokens scans an already tagged token stream. Stanzas are analysed
// in parallel and returned in input order.
func (s *Scanner) ScanTokens(ctx context.Context, tokens []Token, opts Options) ([]Stanza, error) {
	opts, delim, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	units := splitStanzas(tokens, delim, opts.SplitOnBlankLines)
	out := make([]Stanza, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.analyzeStanza(s.BuildLines(unit), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitStanzas cuts tokens into stanzas at delimiter lines and, when
// blank is set, at line breaks holding more than one newline.
func splitStanzas(tokens []Token, delim *regexp.Regexp, blank bool) [][]Token {
	var units [][]Token
	var cur, line []Token
	flush := func() {
		if hasAlpha(cur) {
			units = append(units, cur)
		}
		cur = nil
	}
	endLine := func() bool {
		if delim != nil && len(line) > 0 && delim.MatchString(tokenText(line)) {
			line = nil
			flush()
			return true
		}
		cur = append(cur, line...)
		line = nil
		return false
	}

	for _, tok := range tokens {
		if !tok.IsLineBreak() {
			line = append(line, tok)
			continue
		}
		if endLine() {
			continue
		}
		cur = append(cur, tok)
		if blank && strings.Count(tok.Text, "\n") > 1 {
			flush()
		}
	}
	endLine()
	flush()
	return units
}

func tokenText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.POS != POSSpace {
			b.WriteString(t.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func hasAlpha(tokens []Token) bool {
	for _, t := range tokens {
		if t.IsAlpha {
			return true
		}
	}
	return false
}
