package escansion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	s, err := New(nil, opts...)
	require.NoError(t, err)
	return s
}

// tok builds a tagged token; feats uses the CoNLL-U FEATS syntax.
func tok(text string, pos PartOfSpeech, feats string) Token {
	return Token{
		Text:       text,
		POS:        pos,
		Morphology: ParseMorphology(feats),
		IsAlpha:    IsAlphabetic(text),
	}
}

func nl() Token { return Token{Text: "\n", POS: POSSpace} }

func blank() Token { return Token{Text: "\n\n", POS: POSSpace} }

// verse tags a line written as "word/POS word/POS". Words without a tag
// are nouns; punctuation gets PUNCT.
func verse(line string) []Token {
	var out []Token
	for _, field := range strings.Fields(line) {
		text, pos, ok := strings.Cut(field, "/")
		switch {
		case ok:
		case !IsAlphabetic(text):
			pos = string(POSPunctuation)
		default:
			pos = string(POSNoun)
		}
		out = append(out, tok(text, PartOfSpeech(pos), ""))
	}
	return out
}

// poem joins lines with line breaks and stanzas with blank lines.
func poem(stanzas ...[]string) []Token {
	var out []Token
	for i, st := range stanzas {
		if i > 0 {
			out = append(out, blank())
		}
		for j, l := range st {
			if j > 0 {
				out = append(out, nl())
			}
			out = append(out, verse(l)...)
		}
	}
	return out
}

func groupTexts(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Text
	}
	return out
}

func syllableTexts(syllables []Syllable) []string {
	out := make([]string, len(syllables))
	for i, s := range syllables {
		out[i] = s.Text
	}
	return out
}
