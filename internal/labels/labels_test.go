package labels

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeEmotionLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"3 – Joy", "joy"},
		{"12 — Sadness", "sadness"},
		{"Joy", "joy"},
		{"  Disgusted ", "disgust"},
		{"Disgust", "disgust"},
		// Canonical names match case-sensitively, so a lower-case form passes through.
		{"disgusted", "disgusted"},
		{"unknown label", "unknown label"},
		{"1 – Fear – Anger", "anger"},
		// Priority order decides between two canonical names.
		{"Mixed Joy", "joy"},
		{"Neutral or Sadness", "sadness"},
		// Lower-case names are not canonical hits.
		{"joyful", "joyful"},
	}
	for _, tc := range tests {
		if got := NormalizeEmotionLabel(tc.raw); got != tc.want {
			t.Errorf("NormalizeEmotionLabel(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeEmotionLabelDeterministic(t *testing.T) {
	inputs := []string{"3 – Joy", "weird", "", "Mixed", " Fear "}
	for _, in := range inputs {
		first := NormalizeEmotionLabel(in)
		for i := 0; i < 5; i++ {
			if got := NormalizeEmotionLabel(in); got != first {
				t.Fatalf("NormalizeEmotionLabel(%q) not deterministic: %q vs %q", in, got, first)
			}
		}
	}
}

func TestCanonicalDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"EXERCISE", "exercise/fitness"},
		{" fitness ", "exercise/fitness"},
		{"Marriage", "relationships/marriage/partnership"},
		{"finance", "money/finances"},
		{"love/romance", "love/romance"},
		{"Underwater Basketry", "underwater basketry"},
	}
	for _, tc := range tests {
		if got := CanonicalDomain(tc.raw); got != tc.want {
			t.Errorf("CanonicalDomain(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCanonicalDomainIdempotent(t *testing.T) {
	inputs := []string{"fitness", "Work", "politics", "nonsense", "", "Self/Growth/Habits"}
	for alias := range domainAlias {
		inputs = append(inputs, alias)
	}
	for _, in := range inputs {
		once := CanonicalDomain(in)
		if twice := CanonicalDomain(once); twice != once {
			t.Errorf("CanonicalDomain not idempotent for %q: %q then %q", in, once, twice)
		}
	}
	for _, canon := range CanonicalDomainLabels() {
		if got := CanonicalDomain(canon); got != canon {
			t.Errorf("canonical label %q maps to %q", canon, got)
		}
	}
}

func TestCoarseEmotions(t *testing.T) {
	got := CoarseEmotions([]string{"proud", "happy", "ashamed", "curious"})
	want := []string{"curious", "joy", "sadness"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CoarseEmotions mismatch (-want +got):\n%s", diff)
	}
	if got := CoarseEmotions(nil); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestCoarseEmotionMapsIntoCoarseSet(t *testing.T) {
	coarse := make(map[string]bool)
	for _, c := range CoarseEmotionSet {
		coarse[c] = true
	}
	for word, c := range emotionMap {
		if !coarse[c] {
			t.Errorf("%q maps to %q which is not a coarse emotion", word, c)
		}
	}
}

func TestCanonicalDomains(t *testing.T) {
	got := CanonicalDomains([]string{"love", "romance", "Work", ""})
	want := []string{"", "love/romance", "work/career"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CanonicalDomains mismatch (-want +got):\n%s", diff)
	}
}

func TestEmotionsAdjacentSymmetric(t *testing.T) {
	for from, tos := range emotionAdjacency {
		for _, to := range tos {
			if !EmotionsAdjacent(from, to) || !EmotionsAdjacent(to, from) {
				t.Errorf("expected %q and %q adjacent in both directions", from, to)
			}
		}
	}
	for _, e := range CoarseEmotionSet {
		if e == "mixed" {
			continue
		}
		if !EmotionsAdjacent("mixed", e) {
			t.Errorf("mixed should be adjacent to %q", e)
		}
	}
	if EmotionsAdjacent("joy", "sadness") {
		t.Error("joy and sadness should not be adjacent")
	}
	// surprise lists nothing itself; only mixed reaches it.
	for _, e := range []string{"joy", "sadness", "anger", "fear", "disgust", "neutral"} {
		if EmotionsAdjacent("surprise", e) {
			t.Errorf("surprise should not be adjacent to %q", e)
		}
	}
	// Surface forms outside the table never match.
	if EmotionsAdjacent("disgusted", "anger") {
		t.Error("disgusted is not a table key and should not be adjacent to anger")
	}
}

func TestDomainsAdjacent(t *testing.T) {
	for p := range domainAdjacency {
		if !DomainsAdjacent(p.a, p.b) || !DomainsAdjacent(p.b, p.a) {
			t.Errorf("expected %q and %q adjacent in both orders", p.a, p.b)
		}
	}
	if !DomainsAdjacent("family", "FAMILY") {
		t.Error("identical domains should be adjacent")
	}
	if DomainsAdjacent("", "") {
		t.Error("empty domains should not be adjacent")
	}
	if DomainsAdjacent("family", "work/career") {
		t.Error("family and work/career should not be adjacent")
	}
}
