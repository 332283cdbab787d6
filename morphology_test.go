package escansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMorphology(t *testing.T) {
	m := ParseMorphology("Gender=Fem|Number=Sing")
	assert.Equal(t, Morphology{"Gender": "Fem", "Number": "Sing"}, m)
	assert.Equal(t, "Fem", m.Get("Gender"))
	assert.Empty(t, m.Get("Case"))
	assert.True(t, m.In("Number", "Plur", "Sing"))
	assert.False(t, m.In("Case", "Nom"))
	assert.Equal(t, "Gender=Fem|Number=Sing", ParseMorphology("Number=Sing|Gender=Fem").String())

	for _, bad := range []string{"", "_", "Fem", "Gender=Fem|Sing", "=Fem", "A=b=c"} {
		assert.Empty(t, ParseMorphology(bad), bad)
	}
	assert.Equal(t, "_", Morphology{}.String())
}

func TestPartOfSpeech_Is(t *testing.T) {
	assert.True(t, POSVerb.Is(POSAuxiliary, POSVerb))
	assert.False(t, POSNoun.Is(POSVerb))
	assert.False(t, POSNoun.Is())
}

func TestToken_IsLineBreak(t *testing.T) {
	assert.True(t, nl().IsLineBreak())
	assert.True(t, blank().IsLineBreak())
	assert.False(t, Token{Text: " ", POS: POSSpace}.IsLineBreak())
	assert.False(t, Token{Text: "\n", POS: POSPunctuation}.IsLineBreak())
}

func TestAtone(t *testing.T) {
	assert.Equal(t, "camion pinguino Ultimo", Atone("camión pingüino Último"))
	assert.Equal(t, "año", Atone("año"))
}
