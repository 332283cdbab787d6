package escansion

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineOf(t *testing.T, s *Scanner, text string) Line {
	t.Helper()
	lines := s.BuildLines(verse(text))
	require.Len(t, lines, 1)
	return lines[0]
}

func TestDefaultGroups(t *testing.T) {
	s := newTestScanner(t)
	l := lineOf(t, s, "antiquísimo/ADJ héroe/NOUN")

	groups := DefaultGroups(lineSyllables(l))
	assert.Equal(t, []string{"an", "ti", "quí", "si", "mohé", "roe"}, groupTexts(groups))
	assert.Equal(t, []int{1}, groups[4].SynalephaJoins)
	assert.Equal(t, []int{1}, groups[5].SinaeresisJoins)
	assert.True(t, groups[4].Stressed)
	assert.False(t, groups[4].Synalepha, "flags are cleared once fused")
	assert.Equal(t, "--+-+-", Rhythm(groups, FormatPattern, ""))

	words := l.Words()
	assert.True(t, words[0].Syllables[4].Synalepha, "the words are left untouched")
}

func TestFuse_Runs(t *testing.T) {
	groups := []Group{
		{Text: "a", Synalepha: true},
		{Text: "e", Synalepha: true},
		{Text: "i"},
		{Text: "o", WordEnd: true},
	}
	fused := Fuse(groups, Synalepha, nil, nil)
	require.Len(t, fused, 2)
	assert.Equal(t, "aei", fused[0].Text)
	assert.Equal(t, []int{0, 1}, fused[0].SynalephaJoins)
	assert.Equal(t, "o", fused[1].Text)
	assert.True(t, fused[1].WordEnd)
	assert.True(t, groups[0].Synalepha, "input is not modified")
}

func TestFuse_Positions(t *testing.T) {
	groups := []Group{{Text: "a", Synalepha: true}, {Text: "e", Synalepha: true}, {Text: "i"}}
	fused := Fuse(groups, Synalepha, []bool{false, true, false}, nil)
	assert.Equal(t, []string{"a", "ei"}, groupTexts(fused))

	fused = Fuse(groups, Sinaeresis, []bool{true, false, false}, nil)
	assert.Equal(t, []string{"ae", "i"}, groupTexts(fused))
	assert.Equal(t, []int{0}, fused[0].SinaeresisJoins)
	assert.Empty(t, fused[0].SynalephaJoins)
}

func TestFuse_Veto(t *testing.T) {
	groups := []Group{{Text: "mo", Synalepha: true}, {Text: "hé", Stressed: true}}
	assert.Equal(t, []string{"mo", "hé"}, groupTexts(Fuse(groups, Synalepha, nil, BreakOnH)))
	assert.Equal(t, []string{"mohé"}, groupTexts(Fuse(groups, Synalepha, nil, nil)))

	assert.True(t, BreakOnH(Synalepha, groups[0], groups[1]))
	assert.False(t, BreakOnH(Sinaeresis, groups[0], groups[1]))
}

func TestFusionVectors_Order(t *testing.T) {
	groups := []Group{
		{Text: "a", Synalepha: true},
		{Text: "e", Synalepha: true},
		{Text: "i"},
		{Text: "o", Synalepha: true},
		{Text: "u"},
	}
	got := slices.Collect(FusionVectors(groups, Synalepha, 10))
	const T, F = true, false
	want := [][]bool{
		{F, F, F, F, F},
		{T, F, F, F, F},
		{F, T, F, F, F},
		{F, F, F, T, F},
		{T, F, F, T, F},
		{F, T, F, T, F},
		{T, T, F, F, F},
		{T, T, F, T, F},
	}
	assert.Equal(t, want, got)

	limited := slices.Collect(FusionVectors(groups, Synalepha, 1))
	assert.Equal(t, [][]bool{{F, T, F, T, F}, {T, T, F, T, F}}, limited)

	none := slices.Collect(FusionVectors(groups, Sinaeresis, 10))
	assert.Equal(t, [][]bool{{F, F, F, F, F}}, none)
}

func TestMaskOrder_Shared(t *testing.T) {
	a := maskOrder(3, 0b01)
	b := maskOrder(3, 0b01)
	require.Len(t, a, 8)
	assert.Same(t, &a[0], &b[0], "the order is computed once per shape")
	assert.Equal(t, []uint32{0b000, 0b001, 0b010, 0b100, 0b101, 0b110, 0b011, 0b111}, a)

	// the same bits without neighbours only sort by count
	assert.Equal(t, []uint32{0b000, 0b001, 0b010, 0b100, 0b011, 0b101, 0b110, 0b111}, maskOrder(3, 0))
}

func TestGroupings(t *testing.T) {
	s := newTestScanner(t)
	l := lineOf(t, s, "casa/NOUN azul/ADJ")

	var candidates [][]string
	for g := range s.Groupings(l, DefaultMaxFusionBits) {
		candidates = append(candidates, groupTexts(g))
	}
	require.NotEmpty(t, candidates)
	assert.Equal(t, []string{"ca", "sa", "a", "zul"}, candidates[0])
	assert.Contains(t, candidates, []string{"ca", "saa", "zul"})
}

func TestGroupings_AlternativeFirst(t *testing.T) {
	s := newTestScanner(t)
	l := lineOf(t, s, "puntual/ADJ")

	var first []string
	for g := range s.Groupings(l, DefaultMaxFusionBits) {
		first = groupTexts(g)
		break
	}
	assert.Equal(t, []string{"pun", "tu", "al"}, first)
}

func TestLiaisonKind_String(t *testing.T) {
	assert.Equal(t, "synalepha", Synalepha.String())
	assert.Equal(t, "sinaeresis", Sinaeresis.String())
}

func TestGroups_NeverOutnumberSyllables(t *testing.T) {
	s := newTestScanner(t)
	for _, text := range []string{
		"casa/NOUN azul/ADJ",
		"antiquísimo/ADJ héroe/NOUN",
		"sol/NOUN de/ADP mar/NOUN",
		"aéreo/ADJ",
	} {
		syllables := lineSyllables(lineOf(t, s, text))
		groups := DefaultGroups(syllables)
		assert.LessOrEqual(t, len(groups), len(syllables), text)
	}

	plain := lineSyllables(lineOf(t, s, "sol/NOUN de/ADP mar/NOUN"))
	assert.Len(t, DefaultGroups(plain), len(plain), "no eligible pair leaves the line as is")
}
