package escansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStress(t *testing.T) {
	s := newTestScanner(t)
	tests := []struct {
		word      string
		pos       PartOfSpeech
		feats     string
		lineFinal bool
		want      int
	}{
		{"plátano", POSNoun, "", false, -3},
		{"platano", POSDeterminer, "", false, 0},
		{"campo", POSNoun, "", false, -2},
		{"tambor", POSNoun, "", false, -1},
		{"canción", POSNoun, "", false, -1},
		{"yo", POSPronoun, "Case=Nom|Person=1", false, -1},
		{"mi", POSDeterminer, "Poss=Yes", false, 0},
		{"la", POSDeterminer, "Definite=Def", false, 0},
		{"sol", POSNoun, "", false, -1},
		{"esto", POSPronoun, "PronType=Dem", false, -2},
		{"nuestro", POSDeterminer, "Poss=Yes", false, 0},
		{"de", POSAdposition, "", true, -1},
		{"árbol", POSNoun, "", true, -2},
		{"casa", POSNoun, "", true, -2},
		{"azul", POSAdjective, "", true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			w := s.Stress(tt.word, tt.pos, ParseMorphology(tt.feats), tt.lineFinal)
			assert.Equal(t, tt.want, w.StressPosition)
		})
	}
}

func TestStress_RuleNames(t *testing.T) {
	s := newTestScanner(t)
	tests := []struct {
		word      string
		syllables []string
		pos       PartOfSpeech
		feats     string
		lineFinal bool
		want      string
	}{
		{"yo", []string{"yo"}, POSPronoun, "", false, "stressed monosyllable"},
		{"el", []string{"el"}, POSDeterminer, "", false, "unstressed monosyllable"},
		{"sol", []string{"sol"}, POSNoun, "", false, "open class"},
		{"con", []string{"con"}, POSAdposition, "", false, "unstressed monosyllable"},
		{"tal", []string{"tal"}, POSDeterminer, "", false, "closed class"},
		{"plátano", []string{"plá", "ta", "no"}, POSNoun, "", false, "accent mark"},
		{"campo", []string{"cam", "po"}, POSNoun, "", false, "content word"},
		{"para", []string{"pa", "ra"}, POSAdposition, "", false, "unstressed form"},
		{"ante", []string{"an", "te"}, POSAdposition, "", false, "closed class"},
		{"esto", []string{"es", "to"}, POSPronoun, "PronType=Dem", false, "exclamative, interrogative or demonstrative"},
		{"mar", []string{"mar"}, POSNoun, "", true, "final monosyllable"},
		{"campo", []string{"cam", "po"}, POSNoun, "", true, "paroxytone"},
		{"amor", []string{"a", "mor"}, POSNoun, "", true, "oxytone"},
	}
	for _, tt := range tests {
		t.Run(tt.word+"/"+tt.want, func(t *testing.T) {
			_, rule := s.tables.stressPosition(tt.word, tt.syllables, tt.pos, ParseMorphology(tt.feats), tt.lineFinal)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestStress_MarksSyllables(t *testing.T) {
	s := newTestScanner(t)
	w := s.Stress("plátano", POSNoun, nil, false)
	require.Len(t, w.Syllables, 3)
	assert.True(t, w.Syllables[0].Stressed)
	assert.False(t, w.Syllables[1].Stressed)
	assert.True(t, w.Syllables[2].WordEnd)
	assert.False(t, w.Syllables[0].WordEnd)

	w = s.Stress("la", POSDeterminer, nil, false)
	assert.False(t, w.Syllables[0].Stressed, "unstressed words have no stressed syllable")
}

func TestStress_Sinaeresis(t *testing.T) {
	s := newTestScanner(t)
	w := s.Stress("héroe", POSNoun, nil, true)
	assert.Equal(t, []string{"hé", "ro", "e"}, syllableTexts(w.Syllables))
	assert.False(t, w.Syllables[0].Sinaeresis)
	assert.True(t, w.Syllables[1].Sinaeresis)

	w = s.Stress("aéreo", POSAdjective, nil, false)
	assert.True(t, w.Syllables[0].Sinaeresis)
	assert.True(t, w.Syllables[2].Sinaeresis)
}

func TestStress_MenteAdverb(t *testing.T) {
	s := newTestScanner(t)
	w := s.Stress("mismamente", POSAdverb, nil, false)
	assert.Equal(t, []string{"mis", "ma", "men", "te"}, syllableTexts(w.Syllables))
	assert.Equal(t, -4, w.StressPosition)
	assert.Equal(t, []int{-2}, w.SecondaryStress)
	assert.True(t, w.Syllables[0].Stressed)
	assert.True(t, w.Syllables[2].Stressed)
	assert.True(t, w.Syllables[3].WordEnd)
	assert.False(t, w.Syllables[1].WordEnd)

	w = s.Stress("mente", POSNoun, nil, false)
	assert.Nil(t, w.SecondaryStress)
}

func TestIsParoxytone(t *testing.T) {
	for _, last := range []string{"sa", "nes", "man", "tre"} {
		assert.True(t, isParoxytone(last), last)
	}
	for _, last := range []string{"bor", "zul", "ted", "", "ns"} {
		assert.False(t, isParoxytone(last), last)
	}
}

func TestStress_MonosyllablesAreZeroOrFinal(t *testing.T) {
	s := newTestScanner(t)
	words := []string{"el", "la", "de", "que", "yo", "sol", "mar", "con", "tal", "mi", "su", "pues"}
	tags := []PartOfSpeech{POSNoun, POSDeterminer, POSPronoun, POSAdposition, POSVerb, POSCoordConj}
	for _, w := range words {
		for _, pos := range tags {
			got := s.Stress(w, pos, nil, false).StressPosition
			assert.Contains(t, []int{0, -1}, got, "%s/%s", w, pos)
		}
	}
}
