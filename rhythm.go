package escansion

import (
	"fmt"
	"strconv"
	"strings"
)

// RhythmFormat selects how a stress pattern is written.
type RhythmFormat string

const (
	// FormatPattern writes "+" for stressed and "-" for unstressed slots.
	FormatPattern RhythmFormat = "pattern"
	// FormatBinary writes "1" and "0".
	FormatBinary RhythmFormat = "binary"
	// FormatIndexed lists the 1-based positions of stressed slots.
	FormatIndexed RhythmFormat = "indexed"
)

// ParseRhythmFormat validates a format name; "" means FormatPattern.
func ParseRhythmFormat(s string) (RhythmFormat, error) {
	switch f := RhythmFormat(strings.ToLower(s)); f {
	case "":
		return FormatPattern, nil
	case FormatPattern, FormatBinary, FormatIndexed:
		return f, nil
	}
	return "", fmt.Errorf("%w: rhythm format %q", ErrBadOption, s)
}

// Stresses returns one stress mark per metrical slot. A line ending on a
// stressed group gains an unstressed slot; a line whose last stress falls
// on the third slot from the end loses one, unless that stress closes
// the penultimate word.
func Stresses(groups []Group) []bool {
	stresses := make([]bool, len(groups))
	var wordEnds []int
	for i, g := range groups {
		stresses[i] = g.Stressed
		if g.WordEnd {
			wordEnds = append(wordEnds, i-len(groups))
		}
	}
	last := 0
	for i := len(stresses) - 1; i >= 0; i-- {
		if stresses[i] {
			last = i - len(stresses)
			break
		}
	}
	switch last {
	case -1:
		stresses = append(stresses, false)
	case -3:
		if len(wordEnds) < 2 || last > wordEnds[len(wordEnds)-2] {
			stresses = stresses[:len(stresses)-1]
		}
	}
	return stresses
}

// FormatStresses encodes stresses. sep separates positions in the
// indexed format and is ignored otherwise.
func FormatStresses(stresses []bool, format RhythmFormat, sep string) string {
	var b strings.Builder
	switch format {
	case FormatIndexed:
		var idx []string
		for i, s := range stresses {
			if s {
				idx = append(idx, strconv.Itoa(i+1))
			}
		}
		return strings.Join(idx, sep)
	case FormatBinary:
		for _, s := range stresses {
			if s {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	default:
		for _, s := range stresses {
			if s {
				b.WriteByte('+')
			} else {
				b.WriteByte('-')
			}
		}
	}
	return b.String()
}

// LengthRange returns the metrical length of groups and the length
// reached if every recorded liaison were undone.
func LengthRange(groups []Group) Range {
	n := len(Stresses(groups))
	joins := 0
	for _, g := range groups {
		joins += g.Joins()
	}
	return Range{Min: n, Max: n + joins}
}

// Rhythm is FormatStresses applied to the stresses of groups.
func Rhythm(groups []Group, format RhythmFormat, sep string) string {
	return FormatStresses(Stresses(groups), format, sep)
}
