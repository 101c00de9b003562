// Package confusion tallies (manual, predicted) pairs from mismatching records.
package confusion

import (
	"sort"

	"labeleval/internal/domain"
)

// Pair is one manual/predicted co-occurrence with its count.
type Pair struct {
	Manual    string
	Predicted string
	Count     int
}

type key struct {
	manual, predicted string
}

// Table is a sparse cross-tabulation. Absent cells are zero.
type Table struct {
	counts map[key]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{counts: make(map[key]int)}
}

// Add increments the (manual, predicted) cell by n.
func (t *Table) Add(manual, predicted string, n int) {
	if n <= 0 {
		return
	}
	t.counts[key{manual, predicted}] += n
}

// Count returns the (manual, predicted) cell.
func (t *Table) Count(manual, predicted string) int {
	return t.counts[key{manual, predicted}]
}

// Total is the sum of all cells.
func (t *Table) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Len is the number of non-zero cells.
func (t *Table) Len() int {
	return len(t.counts)
}

// Rows returns the sorted manual values observed.
func (t *Table) Rows() []string {
	seen := make(map[string]struct{})
	for k := range t.counts {
		seen[k.manual] = struct{}{}
	}
	return sortedKeys(seen)
}

// Cols returns the sorted predicted values observed.
func (t *Table) Cols() []string {
	seen := make(map[string]struct{})
	for k := range t.counts {
		seen[k.predicted] = struct{}{}
	}
	return sortedKeys(seen)
}

// Pairs returns every non-zero cell ordered by manual then predicted.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.counts))
	for k, n := range t.counts {
		out = append(out, Pair{Manual: k.manual, Predicted: k.predicted, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Manual != out[j].Manual {
			return out[i].Manual < out[j].Manual
		}
		return out[i].Predicted < out[j].Predicted
	})
	return out
}

// Merge adds every cell of other into t.
func (t *Table) Merge(other *Table) {
	for k, n := range other.counts {
		t.counts[k] += n
	}
}

// Build tallies the mismatching records of one axis. Each manual label of a
// bucket-3 record contributes one pair with the record's predicted label.
func Build(records []domain.Record, axis domain.Axis) *Table {
	t := NewTable()
	for _, r := range records {
		var (
			b         domain.Bucket
			manual    []string
			predicted string
		)
		switch axis {
		case domain.AxisEmotion:
			b, manual, predicted = r.BucketEmotion, r.ManualEmotionsCoarse, r.ClassifierEmotionNorm
		case domain.AxisDomain:
			b, manual, predicted = r.BucketDomain, r.ManualDomainsCanon, r.ClassifierDomainNorm
		default:
			continue
		}
		if b != domain.BucketMismatch {
			continue
		}
		for _, m := range manual {
			t.Add(m, predicted, 1)
		}
	}
	return t
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
