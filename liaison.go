package escansion

import (
	"iter"
	"math/bits"
	"slices"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LiaisonKind is the kind of fusion a grouping pass performs.
type LiaisonKind int

const (
	// Synalepha fuses a word-final vowel with the next word's initial vowel.
	Synalepha LiaisonKind = iota
	// Sinaeresis fuses two vowels in hiatus inside a word.
	Sinaeresis
)

func (k LiaisonKind) String() string {
	if k == Sinaeresis {
		return "sinaeresis"
	}
	return "synalepha"
}

// Veto keeps left and right apart even when the fusion vector asks for
// them to be fused.
type Veto func(kind LiaisonKind, left, right Group) bool

// BreakOnH vetoes synalepha before a word starting with h.
func BreakOnH(kind LiaisonKind, _, right Group) bool {
	return kind == Synalepha && unicode.ToLower(firstRune(right.Text)) == 'h'
}

// Groups turns syllables into unfused phonological groups.
func Groups(syllables []Syllable) []Group {
	out := make([]Group, len(syllables))
	for i, s := range syllables {
		out[i] = Group(s)
	}
	return out
}

func (g Group) pending(kind LiaisonKind) bool {
	if kind == Sinaeresis {
		return g.Sinaeresis
	}
	return g.Synalepha
}

// Eligible returns the fusion vector derived from the liaison flags of
// groups.
func Eligible(groups []Group, kind LiaisonKind) []bool {
	out := make([]bool, len(groups))
	for i, g := range groups {
		out[i] = g.pending(kind)
	}
	return out
}

// Fuse performs one kind of liaison over groups and returns a new
// sequence; groups is not modified. positions[i] asks for group i to be
// fused with group i+1; nil means the flags of the groups decide. Runs
// of three or more fuse across repeated passes. veto may be nil.
func Fuse(groups []Group, kind LiaisonKind, positions []bool, veto Veto) []Group {
	cur := slices.Clone(groups)
	pos := make([]bool, len(cur))
	if positions == nil {
		positions = Eligible(groups, kind)
	}
	copy(pos, positions)

	for slices.Contains(pos, true) {
		next := make([]Group, 0, len(cur))
		nextPos := make([]bool, 0, len(cur))
		for i := 0; i < len(cur); i++ {
			if pos[i] && i+1 < len(cur) && (veto == nil || !veto(kind, cur[i], cur[i+1])) {
				next = append(next, join(kind, cur[i], cur[i+1]))
				nextPos = append(nextPos, pos[i+1])
				i++
				continue
			}
			next = append(next, cur[i])
			nextPos = append(nextPos, false)
		}
		cur, pos = next, nextPos
	}

	for i := range cur {
		if kind == Sinaeresis {
			cur[i].Sinaeresis = false
		} else {
			cur[i].Synalepha = false
		}
	}
	return cur
}

// join fuses right into left. Join indices of right are shifted past
// the text of left.
func join(kind LiaisonKind, left, right Group) Group {
	offset := runeLen(left.Text)
	g := Group{
		Text:       left.Text + right.Text,
		Stressed:   left.Stressed || right.Stressed,
		WordEnd:    right.WordEnd,
		Synalepha:  right.Synalepha,
		Sinaeresis: right.Sinaeresis,
	}
	g.SynalephaJoins = mergeJoins(left.SynalephaJoins, right.SynalephaJoins, offset, kind == Synalepha)
	g.SinaeresisJoins = mergeJoins(left.SinaeresisJoins, right.SinaeresisJoins, offset, kind == Sinaeresis)
	return g
}

func mergeJoins(left, right []int, offset int, here bool) []int {
	var out []int
	out = append(out, left...)
	if here {
		out = append(out, offset-1)
	}
	for _, j := range right {
		out = append(out, j+offset)
	}
	return out
}

// DefaultGroups is the reading of a line before any length constraint:
// every eligible sinaeresis, then every eligible synalepha.
func DefaultGroups(syllables []Syllable) []Group {
	return Fuse(Fuse(Groups(syllables), Sinaeresis, nil, nil), Synalepha, nil, nil)
}

// FusionVectors enumerates the fusion vectors over the eligible
// positions of groups. Vectors without two adjacent fusions come first;
// within each class, fewer fusions come first and ties go to the vector
// fusing further left. Only the first maxBits eligible positions are
// enumerated; any beyond stay fused.
func FusionVectors(groups []Group, kind LiaisonKind, maxBits int) iter.Seq[[]bool] {
	eligible := Eligible(groups, kind)
	var idx []int
	for i, ok := range eligible {
		if ok {
			idx = append(idx, i)
		}
	}
	free := min(len(idx), max(maxBits, 0))

	var touching uint32
	for b := 0; b+1 < free; b++ {
		if idx[b]+1 == idx[b+1] {
			touching |= 1 << b
		}
	}
	masks := maskOrder(free, touching)

	return func(yield func([]bool) bool) {
		for _, m := range masks {
			v := make([]bool, len(groups))
			for b, i := range idx {
				v[i] = b >= free || m&(1<<b) != 0
			}
			if !yield(v) {
				return
			}
		}
	}
}

type maskKey struct {
	free     int
	touching uint32
}

// maskOrders holds the sorted masks per number of free bits and set of
// touching bit pairs; bit b of touching means bits b and b+1 are
// neighbouring positions. Cached slices are shared and never modified.
var maskOrders = newMaskCache(64)

func newMaskCache(size int) *lru.Cache[maskKey, []uint32] {
	c, err := lru.New[maskKey, []uint32](size)
	if err != nil {
		panic(err)
	}
	return c
}

func maskOrder(free int, touching uint32) []uint32 {
	key := maskKey{free: free, touching: touching}
	if masks, ok := maskOrders.Get(key); ok {
		return masks
	}
	masks := make([]uint32, 1<<free)
	for m := range masks {
		masks[m] = uint32(m)
	}
	adjacent := func(m uint32) bool {
		return m&(m>>1)&touching != 0
	}
	slices.SortStableFunc(masks, func(a, b uint32) int {
		if aa, ab := adjacent(a), adjacent(b); aa != ab {
			if aa {
				return 1
			}
			return -1
		}
		if ca, cb := bits.OnesCount32(a), bits.OnesCount32(b); ca != cb {
			return ca - cb
		}
		// lowest differing bit decides: the mask that has it fuses further left
		if d := a ^ b; d != 0 {
			if a&(d&-d) != 0 {
				return -1
			}
			return 1
		}
		return 0
	})
	maskOrders.Add(key, masks)
	return masks
}

// liaisonOrders are the pass sequences tried when regrouping a line.
var liaisonOrders = [][]LiaisonKind{
	{Synalepha},
	{Synalepha, Sinaeresis},
	{Sinaeresis},
	{Sinaeresis, Synalepha},
}

// Groupings yields the alternative groupings of a line in priority
// order: the alternative syllabification before the primary one, then
// each liaison order, with and without BreakOnH, then each fusion
// vector. Every candidate is a fresh sequence.
func (s *Scanner) Groupings(line Line, maxBits int) iter.Seq[[]Group] {
	return func(yield func([]Group) bool) {
		readings := []Line{line}
		if s.hasAlternative(line) {
			readings = []Line{s.buildLine(line.Tokens, true), line}
		}
		for _, l := range readings {
			base := Groups(lineSyllables(l))
			for _, order := range liaisonOrders {
				for _, veto := range []Veto{BreakOnH, nil} {
					for v1 := range FusionVectors(base, order[0], maxBits) {
						first := Fuse(base, order[0], v1, veto)
						if len(order) == 1 {
							if !yield(first) {
								return
							}
							continue
						}
						for v2 := range FusionVectors(first, order[1], maxBits) {
							if !yield(Fuse(first, order[1], v2, veto)) {
								return
							}
						}
					}
				}
			}
		}
	}
}

func (s *Scanner) hasAlternative(line Line) bool {
	for _, w := range line.Words() {
		if _, ok := s.tables.alternatives[strings.ToLower(w.Text)]; ok {
			return true
		}
	}
	return false
}
