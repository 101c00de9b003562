package labels

import "strings"

// EmotionsAdjacent reports whether two coarse emotions are related.
// The stored relation is directional, so both directions are checked.
func EmotionsAdjacent(a, b string) bool {
	return listsEmotion(a, b) || listsEmotion(b, a)
}

func listsEmotion(from, to string) bool {
	for _, e := range emotionAdjacency[from] {
		if e == to {
			return true
		}
	}
	return false
}

// DomainsAdjacent reports whether two canonical domains are equal or related.
// An empty label is never adjacent to anything.
func DomainsAdjacent(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	x, y := strings.ToLower(a), strings.ToLower(b)
	if x == y {
		return true
	}
	if _, ok := domainAdjacency[domainPair{x, y}]; ok {
		return true
	}
	_, ok := domainAdjacency[domainPair{y, x}]
	return ok
}
