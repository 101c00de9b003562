// Package report renders run summaries for the terminal, Slack and HTML.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"labeleval/internal/confusion"
	"labeleval/internal/domain"
)

type summaryDoc struct {
	RunID          string         `yaml:"run_id,omitempty"`
	Records        int            `yaml:"records"`
	EmotionBuckets map[int]int    `yaml:"emotion_buckets"`
	DomainBuckets  map[int]int    `yaml:"domain_buckets"`
	Outputs        summaryOutputs `yaml:"outputs"`
}

type summaryOutputs struct {
	AugmentedCSV        string `yaml:"augmented_csv"`
	EmotionConfusionCSV string `yaml:"emotion_confusion_csv"`
	DomainConfusionCSV  string `yaml:"domain_confusion_csv"`
	HeatmapHTML         string `yaml:"heatmap_html,omitempty"`
}

func bucketMap(c domain.BucketCounts) map[int]int {
	out := make(map[int]int, len(domain.Buckets))
	for _, b := range domain.Buckets {
		out[int(b)] = c[b]
	}
	return out
}

// WriteSummary prints the run summary as a YAML mapping.
func WriteSummary(w io.Writer, s domain.RunSummary) error {
	doc := summaryDoc{
		RunID:          s.RunID,
		Records:        s.RecordCount,
		EmotionBuckets: bucketMap(s.EmotionBuckets),
		DomainBuckets:  bucketMap(s.DomainBuckets),
		Outputs: summaryOutputs{
			AugmentedCSV:        s.Outputs.AugmentedCSV,
			EmotionConfusionCSV: s.Outputs.EmotionConfusionCSV,
			DomainConfusionCSV:  s.Outputs.DomainConfusionCSV,
			HeatmapHTML:         s.Outputs.HeatmapHTML,
		},
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// TopPairs returns the n most frequent pairs, ties broken by label.
func TopPairs(t *confusion.Table, n int) []confusion.Pair {
	if t == nil {
		return nil
	}
	pairs := t.Pairs()
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Count > pairs[j].Count
	})
	if n >= 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

func formatBuckets(c domain.BucketCounts) string {
	parts := make([]string, 0, len(domain.Buckets))
	for _, b := range domain.Buckets {
		parts = append(parts, fmt.Sprintf("%s %d", b, c[b]))
	}
	return strings.Join(parts, " · ")
}

// FormatSlackSummary renders the Slack message for a run. Tables may be nil.
func FormatSlackSummary(s domain.RunSummary, emotion, dom *confusion.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Label evaluation* `%s` (%d records)\n", s.InputPath, s.RecordCount)
	fmt.Fprintf(&b, "Emotion: %s\n", formatBuckets(s.EmotionBuckets))
	fmt.Fprintf(&b, "Domain: %s", formatBuckets(s.DomainBuckets))
	writeTop := func(title string, t *confusion.Table) {
		top := TopPairs(t, 3)
		if len(top) == 0 {
			return
		}
		fmt.Fprintf(&b, "\nTop %s confusions:", title)
		for _, p := range top {
			fmt.Fprintf(&b, "\n• %s → %s (%d)", displayLabel(p.Manual), displayLabel(p.Predicted), p.Count)
		}
	}
	writeTop("emotion", emotion)
	writeTop("domain", dom)
	if s.RunID != "" {
		fmt.Fprintf(&b, "\nRun `%s`", s.RunID)
	}
	return b.String()
}

func displayLabel(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
