// Package labels canonicalizes emotion and domain labels and holds the
// static vocabularies and adjacency relations used to compare them.
package labels

import (
	"sort"
	"strings"
)

// dashSeparators split classifier outputs shaped like "3 – Joy".
var dashSeparators = []string{"–", "—"}

// NormalizeEmotionLabel reduces a classifier emotion to a single lower-case token.
// Unknown labels are kept as their trimmed lower-case form.
func NormalizeEmotionLabel(raw string) string {
	if raw == "" {
		return ""
	}
	s := stripDashPrefix(raw)
	for _, name := range canonicalEmotionNames {
		if strings.Contains(s, name) {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func stripDashPrefix(s string) string {
	cut := -1
	width := 0
	for _, sep := range dashSeparators {
		if i := strings.LastIndex(s, sep); i > cut {
			cut = i
			width = len(sep)
		}
	}
	if cut < 0 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[cut+width:])
}

// CanonicalDomain maps a domain surface form to its cluster label.
// Unmapped input is returned lower-cased and trimmed.
func CanonicalDomain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if canon, ok := domainAlias[s]; ok {
		return canon
	}
	return s
}

// CoarseEmotion maps one manual emotion word to its coarse category.
func CoarseEmotion(word string) string {
	if coarse, ok := emotionMap[word]; ok {
		return coarse
	}
	return word
}

// CoarseEmotions maps every manual emotion word and returns the sorted set.
func CoarseEmotions(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, CoarseEmotion(w))
	}
	return sortedSet(out)
}

// CanonicalDomains canonicalizes every manual domain and returns the sorted set.
func CanonicalDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		out = append(out, CanonicalDomain(d))
	}
	return sortedSet(out)
}

func sortedSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
