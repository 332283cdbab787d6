package escansion

import (
	"log/slog"
	"slices"
	"strings"
)

// bestEffortOrder is the order in which rhyme variants are compared when
// no catalog entry matches; the first variant with the most rhymed lines
// wins.
var bestEffortOrder = []RhymeVariant{
	{Kind: Consonant, Relaxed: true},
	{Kind: Consonant, Relaxed: false},
	{Kind: Assonant, Relaxed: true},
	{Kind: Assonant, Relaxed: false},
}

// stanzaWork carries the state of one stanza analysis. Every regrouping
// produces new group slices; the default grouping is never modified.
type stanzaWork struct {
	s      *Scanner
	lines  []Line
	groups [][]Group
	opts   Options

	// endings are taken from the default grouping
	endings []string
	rhymes  map[RhymeVariant][]Rhyme
	regroup map[[2]int][]Group
	reach   map[int]int
}

type match struct {
	structure Structure
	variant   RhymeVariant
	groups    [][]Group
}

func (s *Scanner) analyzeStanza(lines []Line, opts Options) Stanza {
	w := &stanzaWork{
		s:       s,
		lines:   lines,
		groups:  make([][]Group, len(lines)),
		endings: make([]string, len(lines)),
		opts:    opts,
		rhymes:  make(map[RhymeVariant][]Rhyme),
		regroup: make(map[[2]int][]Group),
		reach:   make(map[int]int),
	}
	for i, l := range lines {
		w.groups[i] = DefaultGroups(lineSyllables(l))
		w.endings[i] = Ending(w.groups[i])
	}

	st := Stanza{}
	var variant *RhymeVariant
	if opts.RhymeAnalysis {
		if m, ok := w.match(); ok {
			if len(opts.ExpectedLengths) == 0 {
				w.groups = m.groups
			}
			st.Structure = m.structure.Name
			variant = &m.variant
		} else {
			st.Structure = Unknown
			if opts.BestEffort {
				v := w.bestEffort()
				variant = &v
				st.BestEffort = &v
				s.logger.Debug("no stanza structure matched", slog.String("variant", v.String()))
			}
		}
	}

	// rhymes come from the default grouping, the one the structure was
	// matched on
	var rhymes []Rhyme
	if variant != nil {
		rhymes = w.rhymesFor(*variant)
	}

	// explicit lengths replace the catalog meters and start from the
	// default grouping
	if n := len(opts.ExpectedLengths); n > 0 {
		for i := range lines {
			if g := w.fit(i, Meter{opts.ExpectedLengths[i%n]}, w.groups[i]); g != nil {
				w.groups[i] = g
			}
		}
	}

	st.Lines = make([]ScannedLine, len(lines))
	for i, l := range lines {
		if !opts.KeepTags {
			l = stripTags(l)
		}
		g := w.groups[i]
		stresses := Stresses(g)
		sl := ScannedLine{
			Line:   l,
			Groups: g,
			Rhythm: FormatStresses(stresses, opts.RhythmFormat, opts.IndexedSeparator),
			Length: len(stresses),
		}
		if opts.RhymeAnalysis {
			if r := LengthRange(g); r.Min != r.Max {
				sl.LengthRange = &r
			}
		}
		if rhymes != nil {
			sl.Rhyme = rhymes[i].Letter
			sl.Ending = rhymes[i].Ending
			sl.EndingStress = rhymes[i].EndingStress
			if sl.EndingStress != 0 {
				sl.RhymeKind = variant.Kind
				sl.Relaxed = variant.Relaxed
			}
		}
		st.Lines[i] = sl
	}
	return st
}

// match walks the catalog in order. For each entry it tries the relaxed
// then the strict rhyme of the entry's kind; when the scheme fits, short
// lines are regrouped towards the expected meter before the lengths are
// checked.
func (w *stanzaWork) match() (match, bool) {
	for _, st := range catalog {
		if len(st.Meters) > 0 && !st.Repeatable && len(st.Meters) != len(w.lines) {
			continue
		}
		for _, relaxed := range []bool{true, false} {
			v := RhymeVariant{Kind: st.Kind, Relaxed: relaxed}
			if !st.Scheme.Match(Scheme(w.rhymesFor(v))) {
				continue
			}
			groups := make([][]Group, len(w.groups))
			ranges := make([]Range, len(w.groups))
			for i, g := range w.groups {
				groups[i] = g
				if m := st.meterAt(i); m != nil {
					if fitted := w.fit(i, m, g); fitted != nil {
						groups[i] = fitted
					}
				}
				ranges[i] = LengthRange(groups[i])
			}
			if st.LengthsFit(ranges) {
				return match{structure: st, variant: v, groups: groups}, true
			}
		}
	}
	return match{}, false
}

// rhymesFor analyses the default grouping under v, once per variant.
func (w *stanzaWork) rhymesFor(v RhymeVariant) []Rhyme {
	if r, ok := w.rhymes[v]; ok {
		return r
	}
	r := AnalyzeRhymes(w.endings, v, w.opts.Offset)
	w.rhymes[v] = r
	return r
}

func (w *stanzaWork) bestEffort() RhymeVariant {
	best, bestCount := bestEffortOrder[0], -1
	for _, v := range bestEffortOrder {
		if n := rhymedCount(w.rhymesFor(v)); n > bestCount {
			best, bestCount = v, n
		}
	}
	return best
}

// fit returns a grouping of line i whose length is one of the values of
// m, or nil when the current grouping already fits or none can be found.
// Only lengths above the current one are searched.
func (w *stanzaWork) fit(i int, m Meter, current []Group) []Group {
	n := len(Stresses(current))
	if slices.Contains(m, n) {
		return nil
	}
	targets := slices.Sorted(slices.Values(m))
	for _, t := range targets {
		if t <= n || t > w.maxReach(i) {
			continue
		}
		if g := w.regroupTo(i, t); g != nil {
			return g
		}
	}
	return nil
}

// regroupTo returns the first alternative grouping of line i with length
// exactly t, memoized per line and target.
func (w *stanzaWork) regroupTo(i, t int) []Group {
	key := [2]int{i, t}
	if g, ok := w.regroup[key]; ok {
		return g
	}
	var found []Group
	for cand := range w.s.Groupings(w.lines[i], w.opts.MaxFusionBits) {
		if len(Stresses(cand)) == t {
			found = cand
			break
		}
	}
	if found != nil {
		w.s.logger.Debug("regrouped line",
			slog.Int("line", i),
			slog.Int("length", t),
			slog.String("text", w.lines[i].Text()))
	}
	w.regroup[key] = found
	return found
}

// maxReach is the longest length line i can take: every syllable of its
// longest syllabification apart, plus the oxytone slot.
func (w *stanzaWork) maxReach(i int) int {
	if r, ok := w.reach[i]; ok {
		return r
	}
	line := w.lines[i]
	r := len(lineSyllables(line)) + 1
	if w.s.hasAlternative(line) {
		r = max(r, len(lineSyllables(w.s.buildLine(line.Tokens, true)))+1)
	}
	w.reach[i] = r
	return r
}

// stripTags returns l with part of speech and morphology removed from
// its words.
func stripTags(l Line) Line {
	out := Line{Tokens: l.Tokens, Elements: make([]Element, len(l.Elements))}
	for i, e := range l.Elements {
		if e.Word == nil {
			out.Elements[i] = e
			continue
		}
		w := *e.Word
		w.POS = ""
		w.Morphology = nil
		out.Elements[i] = Element{Word: &w}
	}
	return out
}

// SchemeOf is a convenience for callers holding scanned lines.
func SchemeOf(lines []ScannedLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Rhyme)
	}
	return b.String()
}
