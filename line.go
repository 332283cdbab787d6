package escansion

import (
	"strings"
	"unicode"
)

// BuildLines splits a token stream into lines. A line-break token ends
// the current line only when at least one real token precedes it.
// Whitespace inside a line is kept as a symbol; a line holding nothing
// but whitespace is dropped.
func (s *Scanner) BuildLines(tokens []Token) []Line {
	var lines []Line
	var seen []Token
	blank := true
	for _, tok := range tokens {
		if tok.IsLineBreak() {
			if !blank {
				lines = append(lines, s.buildLine(seen, false))
			}
			seen, blank = nil, true
			continue
		}
		if !isWhitespace(tok) {
			blank = false
		}
		seen = append(seen, tok)
	}
	if !blank {
		lines = append(lines, s.buildLine(seen, false))
	}
	return lines
}

func isWhitespace(tok Token) bool {
	return tok.POS == POSSpace || strings.TrimSpace(tok.Text) == ""
}

// buildLine turns the tokens of one line into words and symbols. With
// alternative set, words listed in the alternatives table use their
// second syllabification.
func (s *Scanner) buildLine(tokens []Token, alternative bool) Line {
	line := Line{Tokens: tokens}
	lastAlpha := -1
	for i, tok := range tokens {
		if tok.IsAlpha {
			lastAlpha = i
		}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !tok.IsAlpha {
			line.Elements = append(line.Elements, Element{Symbol: tok.Text})
			continue
		}
		if tok.POS.Is(POSVerb, POSAuxiliary) && tok.AffixSpan > 0 {
			w, consumed := s.joinAffixes(tokens[i:], alternative, lastAlpha-i)
			line.Elements = append(line.Elements, Element{Word: w})
			i += consumed - 1
			continue
		}
		text := Compose(tok.Text)
		w := s.stressWord(text, s.syllablesFor(text, alternative), tok.POS, tok.Morphology, i == lastAlpha)
		line.Elements = append(line.Elements, Element{Word: w})
	}
	if words := line.Words(); len(words) > 0 {
		correctFinalStress(words[len(words)-1])
	}
	markSynalepha(line.Words())
	return line
}

// correctFinalStress moves the stress of a line-final word of three or
// more syllables to its last syllable when the word is a verb with
// enclitics stressed on the antepenult, or any word but an adverb
// stressed before the antepenult.
func correctFinalStress(w *Word) {
	if len(w.Syllables) < 3 {
		return
	}
	switch {
	case w.StressPosition == -3 && strings.HasPrefix(string(w.POS), string(POSVerb)+"+"):
		forceFinalStress(w)
	case w.StressPosition <= -4 && w.POS != POSAdverb:
		forceFinalStress(w)
	}
}

func (s *Scanner) syllablesFor(text string, alternative bool) []string {
	syl := s.Syllabify(text)
	if alternative && syl.Alternative != nil {
		return syl.Alternative
	}
	return syl.Syllables
}

// joinAffixes fuses a verb with the enclitic pronouns the tagger split
// off it (di + me + lo → dímelo) and stresses the fused form. lastOffset
// is the index, relative to tokens, of the last alphabetic token of the
// line. It returns the word and the number of tokens consumed.
func (s *Scanner) joinAffixes(tokens []Token, alternative bool, lastOffset int) (*Word, int) {
	verb := tokens[0]
	n := 1
	for n <= verb.AffixSpan && n < len(tokens) && tokens[n].IsAlpha {
		n++
	}
	var text strings.Builder
	tags := make([]string, 0, n)
	for _, tok := range tokens[:n] {
		text.WriteString(Compose(tok.Text))
		tags = append(tags, string(tok.POS))
	}
	fused := text.String()
	w := s.stressWord(fused, s.syllablesFor(fused, alternative), verb.POS, verb.Morphology, n-1 == lastOffset)
	w.POS = PartOfSpeech(strings.Join(tags, "+"))
	return w, n
}

// markSynalepha flags the last syllable of each word that may fuse with
// the first syllable of the next word.
func markSynalepha(words []*Word) {
	for i := 0; i+1 < len(words); i++ {
		left := &words[i].Syllables[len(words[i].Syllables)-1]
		right := words[i+1].Syllables[0]
		if haveProsodicLiaison(left.Text, right.Text) {
			left.Synalepha = true
		}
	}
}

// haveProsodicLiaison reports whether a syllable ending in left may fuse
// with a syllable starting with right. A y followed by a vowel acts as a
// consonant and blocks the fusion.
func haveProsodicLiaison(left, right string) bool {
	rs := []rune(strings.ToLower(right))
	if len(rs) == 0 || left == "" {
		return false
	}
	if rs[0] == 'y' && len(rs) > 1 && isVowel(rs[1]) {
		return false
	}
	return mayEndLiaison(lastRune(left)) && mayStartLiaison(rs[0])
}

// lineSyllables flattens the words of a line into one syllable sequence.
// The syllables are copies, so grouping never touches the words.
func lineSyllables(l Line) []Syllable {
	var out []Syllable
	for _, w := range l.Words() {
		out = append(out, w.Syllables...)
	}
	return out
}

// IsAlphabetic reports whether text is made only of letters. Taggers
// use it to set Token.IsAlpha.
func IsAlphabetic(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
