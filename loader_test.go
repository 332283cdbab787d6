package escansion

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFS() fstest.MapFS {
	file := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }
	return fstest.MapFS{
		"exceptions.txt":               file("! comment\n\ncasa:cas-a\n"),
		"alternatives.txt":             file("puntual:pun-tu-al:1,2\n"),
		"unstressed_monosyllables.txt": file("el\n"),
		"stressed_monosyllables.txt":   file("yo\n"),
		"unstressed_forms.txt":         file("para\n"),
		"stressed_pronouns.txt":        file("él\n"),
		"unstressed_possessives.txt":   file("nuestro\n"),
	}
}

func TestWithData(t *testing.T) {
	s := newTestScanner(t, WithData(tableFS()))
	assert.Equal(t, []string{"cas", "a"}, s.Syllabify("casa").Syllables)
	assert.Equal(t, []string{"Cas", "a"}, s.Syllabify("Casa").Syllables)
	assert.Equal(t, []string{"pun", "tu", "al"}, s.Syllabify("puntual").Alternative)
	assert.True(t, s.tables.stressedMonosyllables["yo"])
	assert.False(t, s.tables.stressedMonosyllables["fue"])
}

func TestLoadTables_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"exception without syllables", "exceptions.txt", "casa\n"},
		{"exception that does not spell the word", "exceptions.txt", "casa:ca-za\n"},
		{"alternative with two fields", "alternatives.txt", "puntual:pun-tu-al\n"},
		{"alternative that does not spell the word", "alternatives.txt", "puntual:pun-ta-al:1\n"},
		{"alternative position out of range", "alternatives.txt", "puntual:pun-tu-al:3\n"},
		{"alternative position not a number", "alternatives.txt", "puntual:pun-tu-al:x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := tableFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			_, err := New(nil, WithData(fsys))
			require.ErrorIs(t, err, ErrTableFormat)
			assert.Contains(t, err.Error(), tt.file+":1")
		})
	}
}

func TestLoadTables_MissingFile(t *testing.T) {
	fsys := tableFS()
	delete(fsys, "stressed_pronouns.txt")
	_, err := New(nil, WithData(fsys))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEmbeddedTables(t *testing.T) {
	s := newTestScanner(t)
	assert.NotEmpty(t, s.tables.exceptions)
	assert.NotEmpty(t, s.tables.alternatives)
	assert.True(t, s.tables.unstressedMonosyllables["de"])
	assert.True(t, s.tables.unstressedPossessives["nuestro"])
}
