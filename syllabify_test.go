package escansion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyllabify(t *testing.T) {
	s := newTestScanner(t)
	tests := []struct {
		word string
		want string
	}{
		{"casa", "ca-sa"},
		{"perro", "pe-rro"},
		{"hablar", "ha-blar"},
		{"entender", "en-ten-der"},
		{"desentender", "de-sen-ten-der"},
		{"desenmarañados", "de-sen-ma-ra-ña-dos"},
		{"destapar", "des-ta-par"},
		{"destituir", "des-ti-tuir"},
		{"deshacer", "des-ha-cer"},
		{"sinhueso", "sin-hue-so"},
		{"subrayar", "sub-ra-yar"},
		{"atlante", "a-tlan-te"},
		{"adlativo", "ad-la-ti-vo"},
		{"antihumano", "an-tihu-ma-no"},
		{"prohibir", "prohi-bir"},
		{"búho", "bú-ho"},
		{"yihad", "yi-had"},
		{"entrehierro", "en-tre-hie-rro"},
		{"alhábega", "al-há-be-ga"},
		{"aislable", "ais-la-ble"},
		{"coche", "co-che"},
		{"checo", "che-co"},
		{"abarloar", "a-bar-lo-ar"},
		{"año", "a-ño"},
		{"kiwi", "ki-wi"},
		{"desvirtúe", "des-vir-tú-e"},
		{"guerra", "gue-rra"},
		{"antiquísimo", "an-ti-quí-si-mo"},
		{"güegüecho", "güe-güe-cho"},
		{"pingüino", "pin-güi-no"},
		{"güito", "güi-to"},
		{"agüío", "a-güí-o"},
		{"insacïable", "in-sa-cï-a-ble"},
		{"ruïdo", "ru-ï-do"},
		{"ruëa", "ru-ë-a"},
		{"aéreo", "a-é-re-o"},
		{"país", "pa-ís"},
		{"ciudad", "ciu-dad"},
		{"rey", "rey"},
		{"héroe", "hé-ro-e"},
		{"puntual", "pun-tual"},
		{"whisky", "whis-ky"},
		{"Hockey", "Hoc-key"},
		{"sándwich", "sánd-wich"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := s.Syllabify(tt.word)
			assert.Equal(t, tt.want, strings.Join(got.Syllables, "-"))
			assert.Equal(t, tt.word, strings.Join(got.Syllables, ""))
		})
	}
}

func TestSyllabify_Alternatives(t *testing.T) {
	s := newTestScanner(t)

	got := s.Syllabify("arcaizabas")
	assert.Equal(t, []string{"ar", "ca", "i", "za", "bas"}, got.Alternative)
	assert.Equal(t, []int{1, 2}, got.AlternativeJoins)

	got = s.Syllabify("Puntual")
	assert.Equal(t, []string{"Pun", "tual"}, got.Syllables)
	assert.Equal(t, []string{"Pun", "tu", "al"}, got.Alternative, "letter case survives the table lookup")

	assert.Nil(t, s.Syllabify("casa").Alternative)
}

func TestSyllabify_ComposesInput(t *testing.T) {
	s := newTestScanner(t)
	decomposed := "pla\u0301tano"
	assert.Equal(t, []string{"plá", "ta", "no"}, s.Syllabify(decomposed).Syllables)
}

func TestSyllabify_CachedResultIsACopy(t *testing.T) {
	s := newTestScanner(t, WithCacheSize(1))
	first := s.Syllabify("casa")
	first.Syllables[0] = "XX"
	assert.Equal(t, []string{"ca", "sa"}, s.Syllabify("casa").Syllables)
}

func TestSyllabify_NoVowels(t *testing.T) {
	s := newTestScanner(t)
	assert.Equal(t, []string{"pst"}, s.Syllabify("pst").Syllables)
	assert.Equal(t, []string{"y"}, s.Syllabify("y").Syllables)
}
