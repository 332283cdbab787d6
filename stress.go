package escansion

import "strings"

// stressInput is what the stress rules look at.
type stressInput struct {
	lower     string
	syllables []string
	pos       PartOfSpeech
	morph     Morphology
	// accent is the index of the syllable bearing an acute accent, or -1.
	accent int
}

func (in stressInput) natural() int {
	n := len(in.syllables)
	switch {
	case in.accent >= 0:
		return in.accent - n
	case isParoxytone(in.syllables[n-1]):
		return -2
	default:
		return -1
	}
}

// stressRule is one row of a stress table: the first rule whose match
// returns true decides the position.
type stressRule struct {
	name     string
	match    func(t *tables, in stressInput) bool
	position func(in stressInput) int
}

func unstressed(stressInput) int   { return 0 }
func stressedLast(stressInput) int { return -1 }
func naturalStress(in stressInput) int {
	return in.natural()
}
func always(*tables, stressInput) bool { return true }

func posIs(tags ...PartOfSpeech) func(*tables, stressInput) bool {
	return func(_ *tables, in stressInput) bool { return in.pos.Is(tags...) }
}

func feature(tags []PartOfSpeech, key string, values ...string) func(*tables, stressInput) bool {
	return func(_ *tables, in stressInput) bool {
		return in.pos.Is(tags...) && in.morph.In(key, values...)
	}
}

var (
	pronoun           = []PartOfSpeech{POSPronoun}
	determiner        = []PartOfSpeech{POSDeterminer}
	pronounDeterminer = []PartOfSpeech{POSPronoun, POSDeterminer}
	closedClass       = []PartOfSpeech{POSSubordConj, POSCoordConj, POSDeterminer, POSPronoun, POSAdposition}
	contentClass      = []PartOfSpeech{POSInterjection, POSProperNoun, POSNumeral, POSNoun, POSVerb, POSAuxiliary, POSAdverb, POSAdjective}
)

// finalRules apply to the last word of a line, which is always stressed.
var finalRules = []stressRule{
	{"final monosyllable", func(_ *tables, in stressInput) bool { return len(in.syllables) == 1 }, stressedLast},
	{"accent mark", func(_ *tables, in stressInput) bool { return in.accent >= 0 }, naturalStress},
	{"paroxytone", func(_ *tables, in stressInput) bool { return isParoxytone(in.syllables[len(in.syllables)-1]) }, func(stressInput) int { return -2 }},
	{"oxytone", always, stressedLast},
}

var monosyllableRules = []stressRule{
	{"unstressed form", func(t *tables, in stressInput) bool { return t.unstressedForms[in.lower] }, unstressed},
	{"accent mark", func(_ *tables, in stressInput) bool { return in.accent >= 0 }, stressedLast},
	{"unstressed monosyllable", func(t *tables, in stressInput) bool { return t.unstressedMonosyllables[in.lower] }, unstressed},
	{"stressed monosyllable", func(t *tables, in stressInput) bool { return t.stressedMonosyllables[in.lower] }, stressedLast},
	{"stressed pronoun", func(t *tables, in stressInput) bool { return t.stressedPronouns[in.lower] }, stressedLast},
	{"nominative pronoun", feature(pronoun, "Case", "Nom"), stressedLast},
	{"personal or indefinite pronoun", feature(pronoun, "PronType", "Prs", "Ind"), stressedLast},
	{"demonstrative or indefinite determiner", feature(determiner, "Definite", "Dem", "Ind"), stressedLast},
	{"indefinite or demonstrative determiner", feature(determiner, "PronType", "Ind", "Dem"), stressedLast},
	{"exclamative, interrogative or demonstrative", feature(pronounDeterminer, "PronType", "Exc", "Int", "Dem"), stressedLast},
	{"closed class", posIs(closedClass...), unstressed},
	{"open class", always, stressedLast},
}

var polysyllableRules = []stressRule{
	{"accent mark", func(_ *tables, in stressInput) bool { return in.accent >= 0 }, naturalStress},
	{"unstressed form", func(t *tables, in stressInput) bool { return t.unstressedForms[in.lower] }, unstressed},
	{"unstressed possessive", func(t *tables, in stressInput) bool { return t.unstressedPossessives[in.lower] }, unstressed},
	{"stressed pronoun", func(t *tables, in stressInput) bool { return t.stressedPronouns[in.lower] }, naturalStress},
	{"content word", posIs(contentClass...), naturalStress},
	{"personal or indefinite pronoun", feature(pronoun, "PronType", "Prs", "Ind"), naturalStress},
	{"demonstrative or indefinite determiner", feature(determiner, "PronType", "Dem", "Ind"), naturalStress},
	{"indefinite article", feature(determiner, "Definite", "Ind"), naturalStress},
	{"possessive pronoun", feature(pronoun, "Poss", "Yes"), naturalStress},
	{"exclamative, interrogative or demonstrative", feature(pronounDeterminer, "PronType", "Exc", "Int", "Dem"), naturalStress},
	{"closed class", always, unstressed},
}

// stressPosition evaluates the rule table that applies and returns the
// position together with the name of the rule that decided it.
func (t *tables) stressPosition(word string, syllables []string, pos PartOfSpeech, morph Morphology, lineFinal bool) (int, string) {
	in := stressInput{
		lower:     strings.ToLower(word),
		syllables: syllables,
		pos:       pos,
		morph:     morph,
		accent:    accentIndex(syllables),
	}
	rules := polysyllableRules
	switch {
	case lineFinal:
		rules = finalRules
	case len(syllables) == 1:
		rules = monosyllableRules
	}
	for _, r := range rules {
		if r.match(t, in) {
			return r.position(in), r.name
		}
	}
	return 0, ""
}

// accentIndex returns the index of the first syllable with an acute
// accent, or -1.
func accentIndex(syllables []string) int {
	for i, s := range syllables {
		for _, r := range s {
			if isAccentedVowel(r) {
				return i
			}
		}
	}
	return -1
}

// isParoxytone reports whether a word ending in syllable last is
// naturally stressed on its penultimate syllable: it ends in a vowel,
// or in n or s after a vowel.
func isParoxytone(last string) bool {
	rs := []rune(strings.ToLower(last))
	n := len(rs)
	if n == 0 {
		return false
	}
	if isVowel(rs[n-1]) {
		return true
	}
	return (rs[n-1] == 'n' || rs[n-1] == 's') && n > 1 && isVowel(rs[n-2])
}

// Stress syllabifies and stresses a single word. lineFinal selects the
// rules for the last word of a line.
func (s *Scanner) Stress(text string, pos PartOfSpeech, morph Morphology, lineFinal bool) *Word {
	return s.stressWord(text, s.Syllabify(text).Syllables, pos, morph, lineFinal)
}

func (s *Scanner) stressWord(text string, syllables []string, pos PartOfSpeech, morph Morphology, lineFinal bool) *Word {
	lower := strings.ToLower(text)
	if pos == POSAdverb && strings.HasSuffix(lower, "mente") && runeLen(text) > 5 {
		return s.stressAdverb(text, pos, morph)
	}
	position, _ := s.tables.stressPosition(text, syllables, pos, morph, lineFinal)
	return newWord(text, syllables, position, pos, morph)
}

// stressAdverb handles -mente adverbs: the root is stressed as an
// adjective and the suffix as a noun, so the word carries two stresses.
func (s *Scanner) stressAdverb(text string, pos PartOfSpeech, morph Morphology) *Word {
	rs := []rune(text)
	root, suffix := string(rs[:len(rs)-5]), string(rs[len(rs)-5:])
	rootWord := s.stressWord(root, s.Syllabify(root).Syllables, POSAdjective, nil, false)
	suffixWord := s.stressWord(suffix, s.Syllabify(suffix).Syllables, POSNoun, nil, false)

	w := &Word{
		Text:            text,
		Syllables:       append(rootWord.Syllables, suffixWord.Syllables...),
		StressPosition:  rootWord.StressPosition - len(suffixWord.Syllables),
		SecondaryStress: []int{suffixWord.StressPosition},
		POS:             pos,
		Morphology:      morph,
	}
	for i := range w.Syllables {
		w.Syllables[i].WordEnd = i == len(w.Syllables)-1
		w.Syllables[i].Sinaeresis = false
	}
	markSinaeresis(w.Syllables)
	return w
}

func newWord(text string, syllables []string, position int, pos PartOfSpeech, morph Morphology) *Word {
	n := len(syllables)
	w := &Word{
		Text:           text,
		Syllables:      make([]Syllable, n),
		StressPosition: position,
		POS:            pos,
		Morphology:     morph,
	}
	for i, syl := range syllables {
		w.Syllables[i] = Syllable{
			Text:     syl,
			Stressed: position != 0 && i == n+position,
			WordEnd:  i == n-1,
		}
	}
	markSinaeresis(w.Syllables)
	return w
}

// markSinaeresis flags the word-internal hiatuses that may be read as a
// single syllable: strong+strong, stressed weak+strong, strong+weak and
// strong+h+strong.
func markSinaeresis(syllables []Syllable) {
	for i := 1; i < len(syllables); i++ {
		left := []rune(strings.ToLower(syllables[i-1].Text))
		right := []rune(strings.ToLower(syllables[i].Text))
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		a, b := left[len(left)-1], right[0]
		ok := (isStrong(a) && isStrong(b)) ||
			(isStressedWeak(a) && isStrong(b)) ||
			(isStrong(a) && isWeak(b)) ||
			(isStrong(a) && b == 'h' && len(right) > 1 && isStrong(right[1]))
		if ok {
			syllables[i-1].Sinaeresis = true
		}
	}
}

// forceFinalStress moves the stress of w to its last syllable.
func forceFinalStress(w *Word) {
	for i := range w.Syllables {
		w.Syllables[i].Stressed = i == len(w.Syllables)-1
	}
	w.StressPosition = -1
}
