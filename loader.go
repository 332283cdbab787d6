package escansion

import (
	"bufio"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// alternative is a reader-dependent syllabification of a word.
type alternative struct {
	syllables []string
	joins     []int
}

// tables holds the word lists the syllabifier and stress rules consult.
type tables struct {
	exceptions   map[string][]string
	alternatives map[string]alternative

	unstressedMonosyllables map[string]bool
	stressedMonosyllables   map[string]bool
	unstressedForms         map[string]bool
	stressedPronouns        map[string]bool
	unstressedPossessives   map[string]bool
}

func loadTables(fsys fs.FS) (*tables, error) {
	t := &tables{
		exceptions:   make(map[string][]string),
		alternatives: make(map[string]alternative),
	}
	if err := t.loadExceptions(fsys); err != nil {
		return nil, err
	}
	if err := t.loadAlternatives(fsys); err != nil {
		return nil, err
	}

	sets := []struct {
		name string
		dst  *map[string]bool
	}{
		{"unstressed_monosyllables.txt", &t.unstressedMonosyllables},
		{"stressed_monosyllables.txt", &t.stressedMonosyllables},
		{"unstressed_forms.txt", &t.unstressedForms},
		{"stressed_pronouns.txt", &t.stressedPronouns},
		{"unstressed_possessives.txt", &t.unstressedPossessives},
	}
	for _, s := range sets {
		set, err := loadWordSet(fsys, s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = set
	}
	return t, nil
}

// scanTable calls fn for every non-blank, non-comment line of name.
// Lines starting with "!" are comments.
func scanTable(fsys fs.FS, name string, fn func(line string, n int) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if err := fn(Compose(line), n); err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func loadWordSet(fsys fs.FS, name string) (map[string]bool, error) {
	set := make(map[string]bool)
	err := scanTable(fsys, name, func(line string, _ int) error {
		set[strings.ToLower(line)] = true
		return nil
	})
	return set, err
}

// loadExceptions reads exceptions.txt. Format: "word:syl-la-bles".
func (t *tables) loadExceptions(fsys fs.FS) error {
	return scanTable(fsys, "exceptions.txt", func(line string, _ int) error {
		word, syls, ok := strings.Cut(line, ":")
		if !ok || syls == "" {
			return fmt.Errorf("%w: %q", ErrTableFormat, line)
		}
		parts := strings.Split(syls, "-")
		if strings.Join(parts, "") != word {
			return fmt.Errorf("%w: syllables of %q do not spell it", ErrTableFormat, word)
		}
		t.exceptions[strings.ToLower(word)] = parts
		return nil
	})
}

// loadAlternatives reads alternatives.txt. Format: "word:syl-la-bles:i,j".
func (t *tables) loadAlternatives(fsys fs.FS) error {
	return scanTable(fsys, "alternatives.txt", func(line string, _ int) error {
		eclats := strings.Split(line, ":")
		if len(eclats) != 3 {
			return fmt.Errorf("%w: %q", ErrTableFormat, line)
		}
		alt := alternative{syllables: strings.Split(eclats[1], "-")}
		if strings.Join(alt.syllables, "") != eclats[0] {
			return fmt.Errorf("%w: syllables of %q do not spell it", ErrTableFormat, eclats[0])
		}
		for _, p := range strings.Split(eclats[2], ",") {
			i, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || i < 0 || i >= len(alt.syllables) {
				return fmt.Errorf("%w: bad position %q", ErrTableFormat, p)
			}
			alt.joins = append(alt.joins, i)
		}
		t.alternatives[strings.ToLower(eclats[0])] = alt
		return nil
	})
}
