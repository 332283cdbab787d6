// Package conllu reads pre-tagged CoNLL-U text as a token stream for the
// scanner. For a description of the format see
// https://universaldependencies.org/format.html
//
// Verse line breaks come from the MISC column (SpacesAfter=\n, the
// UDPipe convention) or from sentence ends; a "# newpar" comment starts
// a new stanza.
package conllu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cours-de-latin/escansion"
)

const (
	fieldSeparator   = "\t"
	numFields        = 10
	miscSeparator    = "|"
	featureSeparator = "="
)

// ErrFormat is returned for rows that are not valid CoNLL-U.
var ErrFormat = errors.New("conllu: bad format")

// Row is one syntactic word row. Only the columns the scanner uses are
// kept.
type Row struct {
	ID    int
	Form  string
	UPOS  string
	Feats string
	Misc  map[string]string
}

// span is a multiword token row such as "1-3 dímelo".
type span struct {
	form     string
	from, to int
}

func parseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

func parseMisc(value string) map[string]string {
	misc := make(map[string]string)
	if value == "_" || value == "" {
		return misc
	}
	for _, kv := range strings.Split(value, miscSeparator) {
		k, v, ok := strings.Cut(kv, featureSeparator)
		if ok {
			misc[k] = v
		}
	}
	return misc
}

// ParseRow parses the ten columns of a word row.
func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != numFields {
		return row, fmt.Errorf("%w: %d fields, want %d", ErrFormat, len(record), numFields)
	}
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return row, fmt.Errorf("%w: ID field %q: %w", ErrFormat, record[0], err)
	}
	row.ID = id
	row.UPOS = parseString(record[3])
	if row.UPOS == "PUNCT" || row.UPOS == "SYM" {
		// symbols are taken as is
		row.Form = record[1]
	} else {
		row.Form = parseString(record[1])
	}
	if row.Form == "" {
		return row, fmt.Errorf("%w: empty FORM field for word %d", ErrFormat, id)
	}
	row.Feats = record[5]
	row.Misc = parseMisc(record[9])
	return row, nil
}

func parseSpanRow(record []string) (span, error) {
	form := parseString(record[1])
	if form == "" {
		return span{}, fmt.Errorf("%w: empty FORM field for token row", ErrFormat)
	}
	from, to, ok := strings.Cut(record[0], "-")
	if !ok {
		return span{}, fmt.Errorf("%w: ID span %q", ErrFormat, record[0])
	}
	id1, err1 := strconv.Atoi(from)
	id2, err2 := strconv.Atoi(to)
	if err := errors.Join(err1, err2); err != nil {
		return span{}, fmt.Errorf("%w: ID span %q: %w", ErrFormat, record[0], err)
	}
	if id2 <= id1 {
		return span{}, fmt.Errorf("%w: ID span %q must cover at least two words", ErrFormat, record[0])
	}
	return span{form: form, from: id1, to: id2}, nil
}

// Tagger is an escansion.Tagger for text that is already in CoNLL-U.
type Tagger struct{}

// Tag implements escansion.Tagger.
func (Tagger) Tag(ctx context.Context, text string) ([]escansion.Token, error) {
	return Read(ctx, strings.NewReader(text))
}

// reader accumulates tokens across rows.
type reader struct {
	tokens  []escansion.Token
	pending *span
	words   []Row
	newpar  bool
}

// Read parses CoNLL-U from r into tokens. Comments other than newpar
// and empty nodes (IDs such as "8.1") are skipped.
func Read(ctx context.Context, r io.Reader) ([]escansion.Token, error) {
	rd := &reader{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			rd.endSentence()
			continue
		}
		if strings.HasPrefix(text, "#") {
			if strings.HasPrefix(strings.TrimSpace(strings.TrimPrefix(text, "#")), "newpar") {
				rd.newpar = true
			}
			continue
		}
		record := strings.Split(text, fieldSeparator)
		if len(record) != numFields {
			return nil, fmt.Errorf("line %d: %w: %d fields, want %d", line, ErrFormat, len(record), numFields)
		}
		if strings.Contains(record[0], ".") {
			continue
		}
		if strings.Contains(record[0], "-") {
			sp, err := parseSpanRow(record)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rd.flushSpan()
			rd.pending = &sp
			continue
		}
		row, err := ParseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rd.addRow(row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read conllu: %w", err)
	}
	rd.endSentence()
	return rd.tokens, nil
}

func (rd *reader) addRow(row Row) {
	if rd.pending == nil {
		rd.startPar()
		rd.emit(token(row.Form, row))
		rd.breakAfter(row.Misc)
		return
	}
	rd.words = append(rd.words, row)
	if row.ID >= rd.pending.to {
		rd.flushSpan()
	}
}

// flushSpan emits a multiword token. A verb followed by enclitics keeps
// its words apart, with AffixSpan set and the verb form cut from the
// surface form so that the accent survives (dímelo → dí + me + lo).
// Other contractions (del, al) become one token tagged as their first
// word.
func (rd *reader) flushSpan() {
	sp := rd.pending
	words := rd.words
	rd.pending, rd.words = nil, nil
	if sp == nil || len(words) == 0 {
		return
	}
	rd.startPar()
	head := words[0]
	pos := escansion.PartOfSpeech(head.UPOS)
	if pos.Is(escansion.POSVerb, escansion.POSAuxiliary) && len(words) > 1 {
		verb := token(verbForm(sp.form, words), head)
		verb.AffixSpan = len(words) - 1
		rd.emit(verb)
		for _, w := range words[1:] {
			rd.emit(token(w.Form, w))
		}
	} else {
		rd.emit(token(sp.form, head))
	}
	rd.breakAfter(words[len(words)-1].Misc)
}

// verbForm returns the part of surface before the enclitic forms, or the
// verb row's own form when surface does not end with them.
func verbForm(surface string, words []Row) string {
	var clitics strings.Builder
	for _, w := range words[1:] {
		clitics.WriteString(w.Form)
	}
	rs := []rune(surface)
	cs := []rune(clitics.String())
	if len(cs) >= len(rs) || !strings.EqualFold(string(rs[len(rs)-len(cs):]), string(cs)) {
		return words[0].Form
	}
	return string(rs[:len(rs)-len(cs)])
}

func token(text string, row Row) escansion.Token {
	return escansion.Token{
		Text:       text,
		POS:        escansion.PartOfSpeech(row.UPOS),
		Morphology: escansion.ParseMorphology(row.Feats),
		IsAlpha:    escansion.IsAlphabetic(text),
	}
}

func (rd *reader) emit(tok escansion.Token) {
	rd.tokens = append(rd.tokens, tok)
}

// breakAfter emits the line break recorded in a SpacesAfter value.
func (rd *reader) breakAfter(misc map[string]string) {
	spaces, ok := misc["SpacesAfter"]
	if !ok {
		return
	}
	spaces = strings.ReplaceAll(spaces, `\n`, "\n")
	if n := strings.Count(spaces, "\n"); n > 0 {
		rd.emit(lineBreak(n))
	}
}

// endSentence closes an open span and ends the line if the last token is
// not already a break.
func (rd *reader) endSentence() {
	rd.flushSpan()
	if len(rd.tokens) == 0 || rd.lastIsBreak() {
		return
	}
	rd.emit(lineBreak(1))
}

// startPar turns the previous break into a blank line when a newpar
// comment opened this sentence.
func (rd *reader) startPar() {
	if !rd.newpar {
		return
	}
	rd.newpar = false
	if len(rd.tokens) == 0 {
		return
	}
	if rd.lastIsBreak() {
		last := &rd.tokens[len(rd.tokens)-1]
		if strings.Count(last.Text, "\n") < 2 {
			last.Text = "\n\n"
		}
		return
	}
	rd.emit(lineBreak(2))
}

func (rd *reader) lastIsBreak() bool {
	return len(rd.tokens) > 0 && rd.tokens[len(rd.tokens)-1].IsLineBreak()
}

func lineBreak(n int) escansion.Token {
	return escansion.Token{Text: strings.Repeat("\n", n), POS: escansion.POSSpace}
}
