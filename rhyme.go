package escansion

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// RhymeKind is the kind of rhyme compared between line endings.
type RhymeKind string

const (
	// Consonant rhyme compares everything from the stressed vowel on.
	Consonant RhymeKind = "consonant"
	// Assonant rhyme compares only the vowels.
	Assonant RhymeKind = "assonant"
)

// RhymeVariant is a rhyme kind plus whether phonetic relaxation applies.
type RhymeVariant struct {
	Kind    RhymeKind
	Relaxed bool
}

func (v RhymeVariant) String() string {
	if v.Relaxed {
		return fmt.Sprintf("%s (relaxed)", v.Kind)
	}
	return string(v.Kind)
}

// Unrhymed is the letter given to lines whose ending rhymes with no other.
const Unrhymed = "-"

// DefaultOffset is the default recency window, in lines, within which
// two identical endings count as a rhyme.
const DefaultOffset = 4

// Rhyme is the rhyme analysis of one line.
type Rhyme struct {
	Letter string
	// Ending is the normalized ending in lowercase, "" when unrhymed.
	Ending string
	// EndingStress is the negative offset of the stressed vowel from the
	// end of Ending, 0 when unrhymed.
	EndingStress int
}

// Ending returns the raw rhyme ending of a line: the text from the last
// stressed group on, with the stressed vowel in uppercase. When the
// stressed group is a fusion, only the part after the liaison counts.
func Ending(groups []Group) string {
	if len(groups) == 0 {
		return ""
	}
	k := len(groups) - 1
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i].Stressed {
			k = i
			break
		}
	}
	var b strings.Builder
	b.WriteString(upperStressed(stressedTail(groups[k])))
	for _, g := range groups[k+1:] {
		b.WriteString(strings.ToLower(g.Text))
	}
	return b.String()
}

// stressedTail cuts a fused group at one of its join indices: the first
// join followed by an accented vowel, else the last accented vowel, else
// the last join.
func stressedTail(g Group) string {
	rs := []rune(strings.ToLower(g.Text))
	joins := append(slices.Clone(g.SynalephaJoins), g.SinaeresisJoins...)
	if len(joins) == 0 {
		return string(rs)
	}
	slices.Sort(joins)
	for _, j := range joins {
		if j+1 < len(rs) && isAccented(rs[j+1]) {
			return string(rs[j+1:])
		}
	}
	for i := len(rs) - 1; i >= 0; i-- {
		if isAccented(rs[i]) {
			return string(rs[i:])
		}
	}
	last := joins[len(joins)-1]
	if last+1 >= len(rs) {
		return string(rs)
	}
	return string(rs[last+1:])
}

// upperStressed uppercases the accented vowel of a syllable, or the
// whole syllable when it has no accent mark.
func upperStressed(syllable string) string {
	rs := []rune(syllable)
	for i, r := range rs {
		if isAccented(r) {
			rs[i] = unicode.ToUpper(r)
			return string(rs)
		}
	}
	return strings.ToUpper(syllable)
}

// RhymeCode normalizes a raw ending for comparison.
func RhymeCode(ending string, kind RhymeKind, relaxed bool) string {
	if relaxed {
		ending = collapseVowels(foldHomophones(ending))
	}
	ending = Atone(ending)
	if kind == Assonant {
		return assonance(ending)
	}
	return consonance(ending)
}

func isPlainVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// consonance drops the consonants before the first vowel.
func consonance(s string) string {
	for i, r := range s {
		if isPlainVowel(r) {
			return s[i:]
		}
	}
	return s
}

// assonance keeps only the vowels.
func assonance(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isPlainVowel(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseVowels drops a weak vowel next to a strong one, unless the
// weak vowel carries the stress and the strong one does not.
func collapseVowels(s string) string {
	rs := []rune(s)
	keep := make([]bool, len(rs))
	for i, r := range rs {
		keep[i] = true
		lr := unicode.ToLower(r)
		if !isWeak(lr) && !isStressedWeak(lr) {
			continue
		}
		for _, j := range []int{i - 1, i + 1} {
			if j < 0 || j >= len(rs) || !isStrong(unicode.ToLower(rs[j])) {
				continue
			}
			if !(unicode.IsUpper(r) && !unicode.IsUpper(rs[j])) {
				keep[i] = false
			}
		}
	}
	var b strings.Builder
	for i, r := range rs {
		if keep[i] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldHomophones maps spellings of the same sound onto one letter:
// ll→y, v→b, z→s, ce/ci→se/si, qu→k, ge/gi→je/ji, and a silent h is
// dropped. Letter case is kept.
func foldHomophones(s string) string {
	rs := []rune(s)
	lower := func(i int) rune {
		if i < 0 || i >= len(rs) {
			return 0
		}
		return unicode.ToLower(rs[i])
	}
	frontVowel := func(r rune) bool {
		return strings.ContainsRune("eiéí", r)
	}
	caseOf := func(src, dst rune) rune {
		if unicode.IsUpper(src) {
			return unicode.ToUpper(dst)
		}
		return dst
	}

	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch l := lower(i); {
		case l == 'l' && lower(i+1) == 'l':
			b.WriteRune(caseOf(r, 'y'))
			i++
		case l == 'v':
			b.WriteRune(caseOf(r, 'b'))
		case l == 'z':
			b.WriteRune(caseOf(r, 's'))
		case l == 'c' && frontVowel(lower(i+1)):
			b.WriteRune(caseOf(r, 's'))
		case l == 'q' && lower(i+1) == 'u':
			b.WriteRune(caseOf(r, 'k'))
			i++
		case l == 'g' && frontVowel(lower(i+1)):
			b.WriteRune(caseOf(r, 'j'))
		case l == 'h' && lower(i-1) != 'c':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CodeNumbers numbers codes in order of first appearance and returns
// the numbers with the table mapping each number back to its code.
func CodeNumbers(codes []string) ([]int, []string) {
	seen := make(map[string]int)
	var table []string
	numbers := make([]int, len(codes))
	for i, c := range codes {
		n, ok := seen[c]
		if !ok {
			n = len(table)
			seen[c] = n
			table = append(table, c)
		}
		numbers[i] = n
	}
	return numbers, table
}

// ApplyOffset gives a fresh number to a code whose previous occurrence
// lies more than offset lines back, so distant identical endings do not
// rhyme. The returned table extends table with the fresh numbers.
func ApplyOffset(numbers []int, table []string, offset int) ([]int, []string) {
	out := make([]int, len(numbers))
	table = slices.Clone(table)
	current := make(map[int]int)
	lastSeen := make(map[int]int)
	for i, n := range numbers {
		mapped, ok := current[n]
		switch {
		case !ok:
			mapped = n
		case i-lastSeen[n] > offset:
			mapped = len(table)
			table = append(table, table[n])
		}
		current[n] = mapped
		lastSeen[n] = i
		out[i] = mapped
	}
	return out, table
}

// AssignLetters renumbers codes in order of first appearance, giving -1
// to codes that occur only once. Unique codes do not use up a number.
func AssignLetters(numbers []int) []int {
	count := make(map[int]int)
	for _, n := range numbers {
		count[n]++
	}
	next := 0
	assigned := make(map[int]int)
	out := make([]int, len(numbers))
	for i, n := range numbers {
		if count[n] < 2 {
			out[i] = -1
			continue
		}
		a, ok := assigned[n]
		if !ok {
			a = next
			assigned[n] = a
			next++
		}
		out[i] = a
	}
	return out
}

// Letters writes assigned numbers as rhyme letters, "a" for 0, using
// sentinel for -1. Every letter is a single rune: after "z" and "Z" the
// letters continue from U+0100.
func Letters(assigned []int, sentinel string) []string {
	out := make([]string, len(assigned))
	for i, n := range assigned {
		if n < 0 {
			out[i] = sentinel
			continue
		}
		out[i] = string(letter(n))
	}
	return out
}

func letter(n int) rune {
	switch {
	case n < 26:
		return rune('a' + n)
	case n < 52:
		return rune('A' + n - 26)
	default:
		return rune(0x100 + n - 52)
	}
}

// EndingStress returns the negative offset of the first uppercase
// letter of code from its end, or 0 when there is none.
func EndingStress(code string) int {
	rs := []rune(code)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			return i - len(rs)
		}
	}
	return 0
}

// AnalyzeRhymes compares raw line endings under variant and returns one
// Rhyme per line. offset <= 0 disables the recency window.
func AnalyzeRhymes(endings []string, variant RhymeVariant, offset int) []Rhyme {
	codes := make([]string, len(endings))
	keys := make([]string, len(endings))
	for i, e := range endings {
		codes[i] = RhymeCode(e, variant.Kind, variant.Relaxed)
		keys[i] = codes[i]
		if keys[i] == "" {
			// a line without words rhymes with nothing
			keys[i] = fmt.Sprintf("\x00%d", i)
		}
	}
	numbers, table := CodeNumbers(keys)
	if offset > 0 {
		numbers, _ = ApplyOffset(numbers, table, offset)
	}
	letters := Letters(AssignLetters(numbers), Unrhymed)

	out := make([]Rhyme, len(endings))
	for i, l := range letters {
		out[i].Letter = l
		if l == Unrhymed {
			continue
		}
		out[i].Ending = strings.ToLower(codes[i])
		out[i].EndingStress = EndingStress(codes[i])
	}
	return out
}

// Scheme joins the letters of rhymes into a string such as "abba".
func Scheme(rhymes []Rhyme) string {
	var b strings.Builder
	for _, r := range rhymes {
		b.WriteString(r.Letter)
	}
	return b.String()
}

// rhymedCount is the number of lines that rhyme with another line.
func rhymedCount(rhymes []Rhyme) int {
	n := 0
	for _, r := range rhymes {
		if r.Letter != Unrhymed {
			n++
		}
	}
	return n
}
