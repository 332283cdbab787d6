package escansion

import (
	"slices"
	"strings"
	"unicode"
)

// Syllabification is the result of splitting a word into syllables.
type Syllabification struct {
	Syllables []string
	// Alternative is a second, reader-dependent split, nil when the word
	// has none. AlternativeJoins are the positions in Alternative that
	// the primary split keeps together.
	Alternative      []string
	AlternativeJoins []int
}

// Syllabify splits word into syllables. Concatenating the syllables
// always gives back word unchanged.
func (s *Scanner) Syllabify(word string) Syllabification {
	word = Compose(word)
	if syl, ok := s.cache.Get(word); ok {
		return syl.clone()
	}
	syl := s.tables.syllabify(word)
	s.cache.Add(word, syl)
	return syl.clone()
}

func (syl Syllabification) clone() Syllabification {
	return Syllabification{
		Syllables:        slices.Clone(syl.Syllables),
		Alternative:      slices.Clone(syl.Alternative),
		AlternativeJoins: slices.Clone(syl.AlternativeJoins),
	}
}

func (t *tables) syllabify(word string) Syllabification {
	var out Syllabification
	key := strings.ToLower(word)
	if exc, ok := t.exceptions[key]; ok {
		out.Syllables = cutLike(word, exc)
	} else {
		out.Syllables = splitSyllables(word)
	}
	if alt, ok := t.alternatives[key]; ok {
		out.Alternative = cutLike(word, alt.syllables)
		out.AlternativeJoins = slices.Clone(alt.joins)
	}
	return out
}

// cutLike splits word into pieces of the same rune lengths as parts, so
// the original letter case survives a table lookup.
func cutLike(word string, parts []string) []string {
	rs := []rune(word)
	out := make([]string, 0, len(parts))
	i := 0
	for _, p := range parts {
		n := runeLen(p)
		out = append(out, string(rs[i:i+n]))
		i += n
	}
	return out
}

// prefixCuts force a boundary right after a prefix when the next letter
// satisfies the condition (sin|hueso, sub|rayar).
var prefixCuts = []struct {
	prefix string
	next   func(r rune) bool
}{
	{"des", isConsonantLetter},
	{"sin", isConsonantLetter},
	{"sub", func(r rune) bool { return r == 'r' }},
}

func isConsonantLetter(r rune) bool {
	return unicode.IsLetter(r) && !isVowel(r) && r != 'y'
}

type span struct{ start, end int }

// splitSyllables applies the letter rules to an alphabetic word.
func splitSyllables(word string) []string {
	orig := []rune(word)
	n := len(orig)
	if n == 0 {
		return []string{word}
	}
	lower := make([]rune, n)
	for i, r := range orig {
		lower[i] = unicode.ToLower(r)
	}

	vowel := classifyVowels(lower)
	nuclei := findNuclei(lower, vowel)
	if len(nuclei) == 0 {
		return []string{word}
	}
	nuclei = mergeAcrossH(lower, nuclei)

	forced := -1
	for _, pc := range prefixCuts {
		p := len([]rune(pc.prefix))
		if n > p+1 && string(lower[:p]) == pc.prefix && pc.next(lower[p]) {
			forced = p
			break
		}
	}

	cuts := []int{0}
	for k := 0; k+1 < len(nuclei); k++ {
		from, to := nuclei[k].end, nuclei[k+1].start
		cut := consonantCut(lower, from, to)
		if forced > from && forced <= to {
			cut = forced
		}
		cuts = append(cuts, cut)
	}
	cuts = append(cuts, n)

	out := make([]string, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		out = append(out, string(orig[cuts[i]:cuts[i+1]]))
	}
	return out
}

// classifyVowels marks which letters act as vowels. The u of que, qui,
// gue and gui is silent; y is a vowel only when no vowel follows it.
func classifyVowels(lower []rune) []bool {
	n := len(lower)
	vowel := make([]bool, n)
	for i, r := range lower {
		switch {
		case r == 'u' && i > 0 && (lower[i-1] == 'q' || lower[i-1] == 'g') &&
			i+1 < n && strings.ContainsRune("eiéí", lower[i+1]):
			vowel[i] = false
		case r == 'y':
			vowel[i] = i == n-1 || !isVowel(lower[i+1])
		default:
			vowel[i] = isVowel(r)
		}
	}
	return vowel
}

// findNuclei returns runs of vowels, split wherever two neighbours are
// in hiatus.
func findNuclei(lower []rune, vowel []bool) []span {
	var nuclei []span
	for i := 0; i < len(lower); {
		if !vowel[i] {
			i++
			continue
		}
		start := i
		for i+1 < len(lower) && vowel[i+1] && !inHiatus(lower, i) {
			i++
		}
		nuclei = append(nuclei, span{start, i + 1})
		i++
	}
	return nuclei
}

// inHiatus reports whether lower[i] and lower[i+1] belong to different
// syllables.
func inHiatus(lower []rune, i int) bool {
	a, b := lower[i], lower[i+1]
	if a == 'ü' && i > 0 && lower[i-1] == 'g' {
		return false
	}
	return vowelsInHiatus(a, b)
}

func vowelsInHiatus(a, b rune) bool {
	switch {
	case a == 'ï' || a == 'ë' || a == 'ü' || b == 'ï' || b == 'ë' || b == 'ü':
		return true
	case isStrong(a) && isStrong(b):
		return true
	case isStressedWeak(a) && !isWeakLike(b), isStressedWeak(b) && !isWeakLike(a):
		return true
	}
	return false
}

func isWeakLike(r rune) bool {
	return isWeak(r) || r == 'y'
}

// mergeAcrossH joins two nuclei separated only by h when they would form
// a diphthong without it (prohi|bir, rehu|sar). A weak+h+strong pair is
// joined only at the end of the word (ti|ho becomes tiho).
func mergeAcrossH(lower []rune, nuclei []span) []span {
	out := []span{nuclei[0]}
	for _, next := range nuclei[1:] {
		cur := &out[len(out)-1]
		if cur.end < len(lower) && lower[cur.end] == 'h' && cur.end+1 == next.start &&
			next.end-next.start == 1 {
			a, b := lower[cur.end-1], lower[next.start]
			ok := !vowelsInHiatus(a, b)
			if ok && isWeakLike(a) && isStrong(b) {
				ok = next.start == len(lower)-1
			}
			if ok {
				cur.end = next.end
				continue
			}
		}
		out = append(out, next)
	}
	return out
}

// consonantCut chooses the boundary between two nuclei separated by the
// letters lower[from:to].
func consonantCut(lower []rune, from, to int) int {
	units := consonantUnits(lower, from, to)
	switch len(units) {
	case 0:
		return to
	case 1:
		return units[0].start
	}
	a, b := units[len(units)-2], units[len(units)-1]
	if inseparable(lower, a, b) {
		return a.start
	}
	return b.start
}

// consonantUnits groups ch, ll, rr and a silent qu/gu into single units.
func consonantUnits(lower []rune, from, to int) []span {
	var units []span
	for i := from; i < to; {
		w := 1
		if i+1 < to {
			switch string(lower[i : i+2]) {
			case "ch", "ll", "rr", "qu", "gu":
				w = 2
			}
		}
		units = append(units, span{i, i + w})
		i += w
	}
	return units
}

// inseparable reports whether two consonant units form an onset cluster
// such as bl, cr or tl. The pair dl is split.
func inseparable(lower []rune, a, b span) bool {
	if a.end-a.start != 1 || b.end-b.start != 1 {
		return false
	}
	x, y := lower[a.start], lower[b.start]
	if !strings.ContainsRune("bcdfgkpt", x) || (y != 'l' && y != 'r') {
		return false
	}
	return !(x == 'd' && y == 'l')
}
