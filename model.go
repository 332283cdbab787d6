package escansion

import "strings"

// PartOfSpeech is a coarse Universal Dependencies part-of-speech tag.
// Fused enclitic compounds carry joined tags such as "VERB+PRON+PRON".
type PartOfSpeech string

const (
	POSAdjective    PartOfSpeech = "ADJ"
	POSAdposition   PartOfSpeech = "ADP"
	POSAdverb       PartOfSpeech = "ADV"
	POSAuxiliary    PartOfSpeech = "AUX"
	POSCoordConj    PartOfSpeech = "CCONJ"
	POSDeterminer   PartOfSpeech = "DET"
	POSInterjection PartOfSpeech = "INTJ"
	POSNoun         PartOfSpeech = "NOUN"
	POSNumeral      PartOfSpeech = "NUM"
	POSParticle     PartOfSpeech = "PART"
	POSPronoun      PartOfSpeech = "PRON"
	POSProperNoun   PartOfSpeech = "PROPN"
	POSPunctuation  PartOfSpeech = "PUNCT"
	POSSubordConj   PartOfSpeech = "SCONJ"
	POSSymbol       PartOfSpeech = "SYM"
	POSVerb         PartOfSpeech = "VERB"
	POSSpace        PartOfSpeech = "SPACE"
	POSOther        PartOfSpeech = "X"
)

// Is reports whether p is one of the given tags.
func (p PartOfSpeech) Is(tags ...PartOfSpeech) bool {
	for _, t := range tags {
		if p == t {
			return true
		}
	}
	return false
}

// Token is one unit produced by the upstream tagger. Tokens are read-only.
type Token struct {
	Text       string
	POS        PartOfSpeech
	Morphology Morphology
	// IsAlpha is true for tokens made only of letters.
	IsAlpha bool
	// AffixSpan is the number of following tokens that the tagger split
	// off this verb as enclitic pronouns (dímelo → di + me + lo).
	AffixSpan int
}

// IsLineBreak reports whether t is a whitespace token bearing a newline.
func (t Token) IsLineBreak() bool {
	return t.POS == POSSpace && strings.Contains(t.Text, "\n")
}

// Syllable is one orthographic syllable of a word in a line, with the
// liaison markers computed for it.
type Syllable struct {
	Text     string
	Stressed bool
	WordEnd  bool
	// Synalepha and Sinaeresis mark that this syllable may fuse with
	// the following one.
	Synalepha  bool
	Sinaeresis bool
	// SynalephaJoins and SinaeresisJoins hold, for fused groups, the rune
	// index of the last letter before each fusion point.
	SynalephaJoins  []int
	SinaeresisJoins []int
}

// Group is a phonological group: one syllable, or several fused by
// liaison. Stressed is true if any fused member was stressed.
type Group Syllable

// Joins returns the number of fusion points recorded in g.
func (g Group) Joins() int {
	return len(g.SynalephaJoins) + len(g.SinaeresisJoins)
}

// Word is a syllabified, stressed word.
type Word struct {
	Text      string
	Syllables []Syllable
	// StressPosition is the negative offset of the stressed syllable
	// from the end of the word, or 0 for unstressed words.
	StressPosition int
	// SecondaryStress is set only for -mente adverbs.
	SecondaryStress []int
	POS             PartOfSpeech
	Morphology      Morphology
}

// Element is a word or a non-alphabetic symbol within a line.
// Exactly one of Word and Symbol is set.
type Element struct {
	Word   *Word
	Symbol string
}

// Line is a verse line as built from tokens.
type Line struct {
	Elements []Element
	// Tokens are the tagger tokens of the line, kept for regrouping with
	// alternative syllabifications.
	Tokens []Token
}

// Words returns the words of the line, skipping symbols.
func (l Line) Words() []*Word {
	var out []*Word
	for _, e := range l.Elements {
		if e.Word != nil {
			out = append(out, e.Word)
		}
	}
	return out
}

// Text returns the line text rebuilt from its elements, one space
// between elements. Whitespace symbols are skipped.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Elements))
	for _, e := range l.Elements {
		switch {
		case e.Word != nil:
			parts = append(parts, e.Word.Text)
		case strings.TrimSpace(e.Symbol) != "":
			parts = append(parts, e.Symbol)
		}
	}
	return strings.Join(parts, " ")
}

// Range is an inclusive [Min, Max] length range in phonological groups.
type Range struct {
	Min int
	Max int
}

// ScannedLine is the analysis of one line.
type ScannedLine struct {
	Line   Line
	Groups []Group
	Rhythm string
	Length int
	// LengthRange is set only with rhyme analysis and when Min != Max.
	LengthRange *Range
	// Rhyme fields are set only with rhyme analysis.
	Rhyme        string
	Ending       string
	EndingStress int
	RhymeKind    RhymeKind
	Relaxed      bool
}

// Stanza is the analysis of a group of lines.
type Stanza struct {
	Lines []ScannedLine
	// Structure is the matched catalog name, or "unknown".
	Structure string
	// BestEffort is set when no catalog entry matched and the rhyme
	// variant was chosen by best effort.
	BestEffort *RhymeVariant
}
