package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/escansion"
)

func TestOptionsJSON_Apply(t *testing.T) {
	var o OptionsJSON
	require.NoError(t, json.Unmarshal([]byte(`{"rhythm_format":"indexed","offset":-1,"keep_tags":true,"expected_lengths":[8]}`), &o))

	got := o.Apply(escansion.DefaultOptions())
	assert.Equal(t, escansion.FormatIndexed, got.RhythmFormat)
	assert.Equal(t, -1, got.Offset)
	assert.True(t, got.KeepTags)
	assert.Equal(t, []int{8}, got.ExpectedLengths)
	assert.True(t, got.RhymeAnalysis, "unset fields keep the base value")
	assert.Equal(t, "-", got.IndexedSeparator)
}

func TestToStanzaJSON(t *testing.T) {
	word := &escansion.Word{
		Text:           "casa",
		Syllables:      []escansion.Syllable{{Text: "ca", Stressed: true}, {Text: "sa", WordEnd: true}},
		StressPosition: -2,
		POS:            escansion.POSNoun,
		Morphology:     escansion.Morphology{"Number": "Sing", "Gender": "Fem"},
	}
	st := escansion.Stanza{
		Structure:  escansion.Unknown,
		BestEffort: &escansion.RhymeVariant{Kind: escansion.Assonant, Relaxed: true},
		Lines: []escansion.ScannedLine{{
			Line:        escansion.Line{Elements: []escansion.Element{{Word: word}, {Symbol: ","}}},
			Groups:      []escansion.Group{{Text: "ca", Stressed: true}, {Text: "sa", WordEnd: true}},
			Rhythm:      "+-",
			Length:      2,
			LengthRange: &escansion.Range{Min: 2, Max: 3},
			Rhyme:       "a",
			Ending:      "asa",
			RhymeKind:   escansion.Assonant,
		}},
	}

	sj := ToStanzaJSON(st)
	assert.Equal(t, "unknown", sj.Structure)
	assert.Equal(t, "a", sj.Scheme)
	assert.Equal(t, &VariantJSON{Kind: "assonant", Relaxed: true}, sj.BestEffort)
	require.Len(t, sj.Lines, 1)

	l := sj.Lines[0]
	assert.Equal(t, "casa ,", l.Text)
	assert.Equal(t, []string{"ca", "sa"}, l.Groups)
	assert.Equal(t, &RangeJSON{Min: 2, Max: 3}, l.LengthRange)
	require.Len(t, l.Words, 2)
	assert.Equal(t, []string{"ca", "sa"}, l.Words[0].Syllables)
	assert.Equal(t, "Gender=Fem|Number=Sing", l.Words[0].Morphology)
	assert.Equal(t, ",", l.Words[1].Symbol)
}

func TestToStructuresResponse(t *testing.T) {
	resp := ToStructuresResponse(escansion.Catalog())
	require.NotEmpty(t, resp.Structures)

	first := resp.Structures[0]
	assert.Equal(t, "sonnet", first.Name)
	assert.Equal(t, "consonant", first.Kind)
	assert.Len(t, first.Meters, 14)

	last := resp.Structures[len(resp.Structures)-1]
	assert.Equal(t, "couplet", last.Name)
	assert.Equal(t, "^aa$", last.Scheme)
	assert.Empty(t, last.Meters)
}
