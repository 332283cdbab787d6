package escansion

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// SchemeMatcher tests a rhyme scheme such as "abba" or "-a-a".
type SchemeMatcher interface {
	Match(scheme string) bool
	String() string
}

type patternScheme struct{ re *regexp.Regexp }

// Pattern matches schemes against a regular expression over letters.
func Pattern(expr string) SchemeMatcher {
	return patternScheme{re: regexp.MustCompile(expr)}
}

func (p patternScheme) Match(scheme string) bool { return p.re.MatchString(scheme) }
func (p patternScheme) String() string          { return p.re.String() }

type predicateScheme struct {
	name string
	fn   func(scheme string) bool
}

// Predicate matches schemes with fn, for forms a regular expression
// cannot describe.
func Predicate(name string, fn func(scheme string) bool) SchemeMatcher {
	return predicateScheme{name: name, fn: fn}
}

func (p predicateScheme) Match(scheme string) bool { return p.fn(scheme) }
func (p predicateScheme) String() string          { return p.name }

// Meter is the set of syllable counts accepted for a line.
type Meter []int

func (m Meter) fits(r Range, fluctuation int) bool {
	for _, v := range m {
		if r.Min-fluctuation <= v && v <= r.Max+fluctuation {
			return true
		}
	}
	return false
}

// Structure is an entry of the stanza catalog.
type Structure struct {
	Kind   RhymeKind
	Name   string
	Scheme SchemeMatcher
	// Meters gives the accepted lengths line by line; empty means any.
	// Repeatable structures cycle through Meters.
	Meters      []Meter
	Fluctuation int
	Repeatable  bool
}

// meterAt returns the meter expected for line i, or nil when the
// structure does not constrain line lengths.
func (st Structure) meterAt(i int) Meter {
	if len(st.Meters) == 0 {
		return nil
	}
	return st.Meters[i%len(st.Meters)]
}

// LengthsFit reports whether every range accepts the expected meter.
func (st Structure) LengthsFit(ranges []Range) bool {
	if len(st.Meters) == 0 {
		return true
	}
	if !st.Repeatable && len(ranges) != len(st.Meters) {
		return false
	}
	for i, r := range ranges {
		if !st.meterAt(i).fits(r, st.Fluctuation) {
			return false
		}
	}
	return true
}

// Shape relabels the letters of scheme in order of first appearance,
// keeping the unrhymed sentinel: "cdcd" becomes "abab".
func Shape(scheme string) string {
	labels := make(map[rune]rune)
	var b strings.Builder
	for _, r := range scheme {
		if string(r) == Unrhymed {
			b.WriteRune(r)
			continue
		}
		l, ok := labels[r]
		if !ok {
			l = letter(len(labels))
			labels[r] = l
		}
		b.WriteRune(l)
	}
	return b.String()
}

// blocksOf accepts schemes made of blocks of size lines whose shapes are
// all in shapes.
func blocksOf(size int, shapes ...string) func(string) bool {
	return func(scheme string) bool {
		rs := []rune(scheme)
		if len(rs) == 0 || len(rs)%size != 0 {
			return false
		}
		for i := 0; i < len(rs); i += size {
			if !slices.Contains(shapes, Shape(string(rs[i:i+size]))) {
				return false
			}
		}
		return true
	}
}

var (
	sonnetQuartets = []string{"abbaabba", "ababcdcd", "abbacddc", "ababbaba"}
	sonnetTercets  = []string{"abcabc", "ababab", "abcbac", "abccba", "abcbca", "abacba", "abcacb"}
)

func isSonnet(scheme string) bool {
	rs := []rune(scheme)
	if len(rs) != 14 || strings.Contains(scheme, Unrhymed) {
		return false
	}
	return slices.Contains(sonnetQuartets, Shape(string(rs[:8]))) &&
		slices.Contains(sonnetTercets, Shape(string(rs[8:])))
}

var chainedCounts = regexp.MustCompile(`^232(333)*3232$`)

// occurrenceCounts replaces each letter by the number of times it occurs
// in scheme; the sentinel counts once.
func occurrenceCounts(scheme string) string {
	count := make(map[rune]int)
	for _, r := range scheme {
		count[r]++
	}
	var b strings.Builder
	for _, r := range scheme {
		n := count[r]
		if string(r) == Unrhymed {
			n = 1
		}
		b.WriteString(strconv.Itoa(min(n, 9)))
	}
	return b.String()
}

// isChainedTercets matches tercetos encadenados: aba bcb cdc ... d.
func isChainedTercets(scheme string) bool {
	return chainedCounts.MatchString(occurrenceCounts(scheme))
}

var quintillaShapes = []string{"ababa", "abaab", "abbab", "aabab", "aabba"}

// fullyRhymed accepts schemes of n lines where every line rhymes and at
// most three rhymes are used.
func fullyRhymed(n int) func(string) bool {
	return func(scheme string) bool {
		rs := []rune(scheme)
		if len(rs) != n || strings.Contains(scheme, Unrhymed) {
			return false
		}
		seen := make(map[rune]bool)
		for _, r := range rs {
			seen[r] = true
		}
		return len(seen) <= 3
	}
}

func fixed(n int, m Meter) []Meter {
	out := make([]Meter, n)
	for i := range out {
		out[i] = m
	}
	return out
}

func meters(counts ...int) []Meter {
	out := make([]Meter, len(counts))
	for i, c := range counts {
		out[i] = Meter{c}
	}
	return out
}

func meterRange(from, to int) Meter {
	var m Meter
	for v := from; v <= to; v++ {
		m = append(m, v)
	}
	return m
}

// catalog is searched in order; the first matching entry wins.
var catalog = []Structure{
	{Kind: Consonant, Name: "sonnet", Scheme: Predicate("sonnet", isSonnet), Meters: fixed(14, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "octava_real", Scheme: Pattern(`^abababcc$`), Meters: fixed(8, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "copla_arte_mayor", Scheme: Pattern(`^abbaacca$`), Meters: fixed(8, Meter{12}), Fluctuation: 1},
	{Kind: Consonant, Name: "espinela", Scheme: Pattern(`^abbaaccddc$`), Meters: fixed(10, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "copla_real", Scheme: Pattern(`^abaabcdccd$`), Meters: fixed(10, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "décima_antigua", Scheme: Predicate("two quintillas", blocksOf(5, quintillaShapes...)), Meters: fixed(10, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "septeto", Scheme: Predicate("seven rhymed lines", fullyRhymed(7)), Meters: fixed(7, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "septilla", Scheme: Predicate("seven rhymed lines", fullyRhymed(7)), Meters: fixed(7, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "sexteto_lira", Scheme: Pattern(`^(ababcc|abcabc)$`), Meters: meters(7, 11, 7, 11, 7, 11), Fluctuation: 1},
	{Kind: Consonant, Name: "sexteto", Scheme: Pattern(`^(ababcc|aabccb|abcabc)$`), Meters: fixed(6, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "lira", Scheme: Pattern(`^ababb$`), Meters: meters(7, 11, 7, 7, 11), Fluctuation: 1},
	{Kind: Consonant, Name: "cuarteto_lira", Scheme: Pattern(`^abab$`), Meters: meters(11, 7, 11, 7), Fluctuation: 1},
	{Kind: Consonant, Name: "serventesio", Scheme: Pattern(`^abab$`), Meters: fixed(4, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "cuarteto", Scheme: Pattern(`^abba$`), Meters: fixed(4, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "cuaderna_vía", Scheme: Pattern(`^aaaa$`), Meters: fixed(4, Meter{14}), Fluctuation: 1},
	{Kind: Consonant, Name: "redondilla", Scheme: Pattern(`^abba$`), Meters: fixed(4, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "cuarteta", Scheme: Pattern(`^abab$`), Meters: fixed(4, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "quintilla", Scheme: Predicate("quintilla", blocksOf(5, quintillaShapes...)), Meters: fixed(5, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "sextilla", Scheme: Pattern(`^(aabccb|ababcc|abcabc)$`), Meters: fixed(6, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "terceto_monorrimo", Scheme: Pattern(`^aaa$`), Meters: fixed(3, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "terceto", Scheme: Pattern(`^(aba|a-a|-aa|aa-)$`), Meters: fixed(3, Meter{11}), Fluctuation: 1},
	{Kind: Consonant, Name: "tercetillo", Scheme: Pattern(`^(aaa|aba|a-a|-aa|aa-)$`), Meters: fixed(3, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "tercetos_encadenados", Scheme: Predicate("chained tercets", isChainedTercets), Meters: []Meter{{11}}, Fluctuation: 1, Repeatable: true},
	{Kind: Assonant, Name: "seguidilla", Scheme: Predicate("seguidilla", blocksOf(4, "-a-a", "abab")), Meters: meters(7, 5, 7, 5), Fluctuation: 1, Repeatable: true},
	{Kind: Assonant, Name: "cantar", Scheme: Pattern(`^-a-a$`), Meters: fixed(4, Meter{8}), Fluctuation: 1},
	{Kind: Assonant, Name: "endecha_real", Scheme: Pattern(`^-a-a$`), Meters: meters(7, 7, 7, 11), Fluctuation: 1},
	{Kind: Assonant, Name: "endecha", Scheme: Pattern(`^-a-a$`), Meters: fixed(4, Meter{7}), Fluctuation: 1},
	{Kind: Assonant, Name: "redondilla", Scheme: Pattern(`^abba$`), Meters: fixed(4, Meter{8}), Fluctuation: 1},
	{Kind: Assonant, Name: "soleá", Scheme: Pattern(`^a-a$`), Meters: fixed(3, Meter{8}), Fluctuation: 1},
	{Kind: Consonant, Name: "estrofa_sáfica", Scheme: Pattern(`^.{4}$`), Meters: meters(11, 11, 11, 5), Fluctuation: 1},
	{Kind: Assonant, Name: "haiku", Scheme: Pattern(`^.{3}$`), Meters: meters(5, 7, 5)},
	{Kind: Assonant, Name: "romance", Scheme: Pattern(`^(.a)+.?$`), Meters: []Meter{{8}}, Fluctuation: 1, Repeatable: true},
	{Kind: Assonant, Name: "romancillo", Scheme: Pattern(`^(.a)+.?$`), Meters: []Meter{{5, 6, 7}}, Repeatable: true},
	{Kind: Assonant, Name: "romance_arte_mayor", Scheme: Pattern(`^(.a)+.?$`), Meters: []Meter{meterRange(9, 16)}, Repeatable: true},
	{Kind: Assonant, Name: "silva_arromanzada", Scheme: Pattern(`^(.a)+.?$`), Meters: []Meter{{7, 11}}, Fluctuation: 1, Repeatable: true},
	{Kind: Consonant, Name: "couplet", Scheme: Pattern(`^aa$`)},
}

// Catalog returns the stanza structures in matching order.
func Catalog() []Structure {
	return slices.Clone(catalog)
}

// MatchStructure returns the first catalog entry of kind whose scheme
// and lengths both accept the input.
func MatchStructure(scheme string, kind RhymeKind, ranges []Range) (Structure, bool) {
	for _, st := range catalog {
		if st.Kind == kind && st.Scheme.Match(scheme) && st.LengthsFit(ranges) {
			return st, true
		}
	}
	return Structure{}, false
}
