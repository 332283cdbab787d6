// Package api holds the JSON shapes shared by the server and the
// command-line tool.
package api

import (
	"github.com/cours-de-latin/escansion"
)

// ---- requests -----------------------------------------------------------

// ScanRequest is the body of POST /api/scan. Text is CoNLL-U; unset
// options keep the configured defaults.
type ScanRequest struct {
	Text    string      `json:"text"`
	Options OptionsJSON `json:"options"`
}

// OptionsJSON overrides scan options field by field.
type OptionsJSON struct {
	RhythmFormat      *string `json:"rhythm_format,omitempty"`
	IndexedSeparator  *string `json:"indexed_separator,omitempty"`
	RhymeAnalysis     *bool   `json:"rhyme_analysis,omitempty"`
	Offset            *int    `json:"offset,omitempty"`
	BestEffort        *bool   `json:"best_effort,omitempty"`
	ExpectedLengths   []int   `json:"expected_lengths,omitempty"`
	StanzaDelimiter   *string `json:"stanza_delimiter,omitempty"`
	SplitOnBlankLines *bool   `json:"split_on_blank_lines,omitempty"`
	KeepTags          *bool   `json:"keep_tags,omitempty"`
	MaxFusionBits     *int    `json:"max_fusion_bits,omitempty"`
}

// Apply returns base with the fields set in o replaced.
func (o OptionsJSON) Apply(base escansion.Options) escansion.Options {
	if o.RhythmFormat != nil {
		base.RhythmFormat = escansion.RhythmFormat(*o.RhythmFormat)
	}
	if o.IndexedSeparator != nil {
		base.IndexedSeparator = *o.IndexedSeparator
	}
	if o.RhymeAnalysis != nil {
		base.RhymeAnalysis = *o.RhymeAnalysis
	}
	if o.Offset != nil {
		base.Offset = *o.Offset
	}
	if o.BestEffort != nil {
		base.BestEffort = *o.BestEffort
	}
	if o.ExpectedLengths != nil {
		base.ExpectedLengths = o.ExpectedLengths
	}
	if o.StanzaDelimiter != nil {
		base.StanzaDelimiter = *o.StanzaDelimiter
	}
	if o.SplitOnBlankLines != nil {
		base.SplitOnBlankLines = *o.SplitOnBlankLines
	}
	if o.KeepTags != nil {
		base.KeepTags = *o.KeepTags
	}
	if o.MaxFusionBits != nil {
		base.MaxFusionBits = *o.MaxFusionBits
	}
	return base
}

// ---- responses ----------------------------------------------------------

type ScanResponse struct {
	Stanzas []StanzaJSON `json:"stanzas"`
}

type StanzaJSON struct {
	Structure  string       `json:"structure,omitempty"`
	Scheme     string       `json:"scheme,omitempty"`
	BestEffort *VariantJSON `json:"best_effort,omitempty"`
	Lines      []LineJSON   `json:"lines"`
}

type VariantJSON struct {
	Kind    string `json:"kind"`
	Relaxed bool   `json:"relaxed"`
}

type RangeJSON struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type LineJSON struct {
	Text         string     `json:"text"`
	Rhythm       string     `json:"rhythm"`
	Length       int        `json:"length"`
	LengthRange  *RangeJSON `json:"length_range,omitempty"`
	Groups       []string   `json:"groups"`
	Rhyme        string     `json:"rhyme,omitempty"`
	Ending       string     `json:"ending,omitempty"`
	EndingStress int        `json:"ending_stress,omitempty"`
	RhymeKind    string     `json:"rhyme_kind,omitempty"`
	Relaxed      bool       `json:"relaxed,omitempty"`
	Words        []WordJSON `json:"words"`
}

// WordJSON is one element of a line; Symbol is set for punctuation.
type WordJSON struct {
	Text            string   `json:"text,omitempty"`
	Symbol          string   `json:"symbol,omitempty"`
	Syllables       []string `json:"syllables,omitempty"`
	Stress          int      `json:"stress,omitempty"`
	SecondaryStress []int    `json:"secondary_stress,omitempty"`
	POS             string   `json:"pos,omitempty"`
	Morphology      string   `json:"morphology,omitempty"`
}

type SyllabifyResponse struct {
	Word             string   `json:"word"`
	Syllables        []string `json:"syllables"`
	Alternative      []string `json:"alternative,omitempty"`
	AlternativeJoins []int    `json:"alternative_joins,omitempty"`
}

type StructureJSON struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Scheme      string  `json:"scheme"`
	Meters      [][]int `json:"meters,omitempty"`
	Fluctuation int     `json:"fluctuation"`
	Repeatable  bool    `json:"repeatable"`
}

type StructuresResponse struct {
	Structures []StructureJSON `json:"structures"`
}

// ---- converters ---------------------------------------------------------

func ToScanResponse(stanzas []escansion.Stanza) ScanResponse {
	out := ScanResponse{Stanzas: make([]StanzaJSON, 0, len(stanzas))}
	for _, st := range stanzas {
		out.Stanzas = append(out.Stanzas, ToStanzaJSON(st))
	}
	return out
}

func ToStanzaJSON(st escansion.Stanza) StanzaJSON {
	sj := StanzaJSON{
		Structure: st.Structure,
		Scheme:    escansion.SchemeOf(st.Lines),
		Lines:     make([]LineJSON, 0, len(st.Lines)),
	}
	if st.BestEffort != nil {
		sj.BestEffort = &VariantJSON{Kind: string(st.BestEffort.Kind), Relaxed: st.BestEffort.Relaxed}
	}
	for _, l := range st.Lines {
		sj.Lines = append(sj.Lines, toLineJSON(l))
	}
	return sj
}

func toLineJSON(l escansion.ScannedLine) LineJSON {
	lj := LineJSON{
		Text:         l.Line.Text(),
		Rhythm:       l.Rhythm,
		Length:       l.Length,
		Groups:       make([]string, len(l.Groups)),
		Rhyme:        l.Rhyme,
		Ending:       l.Ending,
		EndingStress: l.EndingStress,
		RhymeKind:    string(l.RhymeKind),
		Relaxed:      l.Relaxed,
	}
	if l.LengthRange != nil {
		lj.LengthRange = &RangeJSON{Min: l.LengthRange.Min, Max: l.LengthRange.Max}
	}
	for i, g := range l.Groups {
		lj.Groups[i] = g.Text
	}
	for _, e := range l.Line.Elements {
		if e.Word == nil {
			lj.Words = append(lj.Words, WordJSON{Symbol: e.Symbol})
			continue
		}
		wj := WordJSON{
			Text:            e.Word.Text,
			Stress:          e.Word.StressPosition,
			SecondaryStress: e.Word.SecondaryStress,
			POS:             string(e.Word.POS),
		}
		for _, s := range e.Word.Syllables {
			wj.Syllables = append(wj.Syllables, s.Text)
		}
		if len(e.Word.Morphology) > 0 {
			wj.Morphology = e.Word.Morphology.String()
		}
		lj.Words = append(lj.Words, wj)
	}
	return lj
}

func ToSyllabifyResponse(word string, syl escansion.Syllabification) SyllabifyResponse {
	return SyllabifyResponse{
		Word:             word,
		Syllables:        syl.Syllables,
		Alternative:      syl.Alternative,
		AlternativeJoins: syl.AlternativeJoins,
	}
}

func ToStructuresResponse(catalog []escansion.Structure) StructuresResponse {
	out := StructuresResponse{Structures: make([]StructureJSON, 0, len(catalog))}
	for _, st := range catalog {
		sj := StructureJSON{
			Name:        st.Name,
			Kind:        string(st.Kind),
			Scheme:      st.Scheme.String(),
			Fluctuation: st.Fluctuation,
			Repeatable:  st.Repeatable,
		}
		for _, m := range st.Meters {
			sj.Meters = append(sj.Meters, []int(m))
		}
		out.Structures = append(out.Structures, sj)
	}
	return out
}
