// Package bucket assigns the three agreement tiers for emotion and domain.
package bucket

import (
	"strings"

	"labeleval/internal/domain"
	"labeleval/internal/labels"
)

// Emotion buckets a normalized classifier emotion against the coarse manual set.
// Empty manual tokens are ignored.
func Emotion(manual []string, classifier string) domain.Bucket {
	mset := toSet(manual, true)
	if len(mset) == 0 && classifier == "" {
		return domain.BucketTolerant
	}
	if _, ok := mset[classifier]; ok {
		return domain.BucketExact
	}
	if classifier == "mixed" && len(mset) > 1 {
		return domain.BucketTolerant
	}
	for m := range mset {
		if labels.EmotionsAdjacent(classifier, m) {
			return domain.BucketTolerant
		}
	}
	return domain.BucketMismatch
}

// Domain buckets a canonical classifier domain against the canonical manual set.
// A compound classifier label counts as exact when any of its parts is a manual label.
func Domain(manual []string, classifier string) domain.Bucket {
	mset := toSet(manual, true)
	if len(mset) == 0 && classifier == "" {
		return domain.BucketTolerant
	}
	if _, ok := mset[classifier]; ok {
		return domain.BucketExact
	}
	if strings.Contains(classifier, "/") {
		for _, part := range strings.Split(classifier, "/") {
			if _, ok := mset[part]; ok {
				return domain.BucketExact
			}
		}
	}
	for m := range mset {
		if labels.DomainsAdjacent(classifier, m) {
			return domain.BucketTolerant
		}
	}
	return domain.BucketMismatch
}

func toSet(values []string, skipEmpty bool) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if skipEmpty && v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
