package escansion

import (
	"sort"
	"strings"
)

// Morphology holds the tagger's feature annotations, e.g.
// {"Case": "Nom", "PronType": "Prs"}.
type Morphology map[string]string

// ParseMorphology parses a feature string of the form
// "Definite=Ind|Gender=Masc|Number=Sing". Malformed input yields an
// empty map rather than an error, so a bad tag never stops a scan.
func ParseMorphology(s string) Morphology {
	m := Morphology{}
	s = strings.TrimSpace(s)
	if s == "" || s == "_" || !strings.Contains(s, "=") {
		return m
	}
	for _, feat := range strings.Split(s, "|") {
		k, v, ok := strings.Cut(feat, "=")
		if !ok || k == "" || strings.Contains(v, "=") {
			return Morphology{}
		}
		m[k] = v
	}
	return m
}

// Get returns the value of feature k, or "" when absent.
func (m Morphology) Get(k string) string {
	return m[k]
}

// In reports whether feature k has one of the given values.
func (m Morphology) In(k string, values ...string) bool {
	v, ok := m[k]
	if !ok {
		return false
	}
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}

// String renders the features sorted by name, "_" when empty.
func (m Morphology) String() string {
	if len(m) == 0 {
		return "_"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, "|")
}
