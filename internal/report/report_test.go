package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"labeleval/internal/confusion"
	"labeleval/internal/domain"
)

func sampleSummary() domain.RunSummary {
	return domain.RunSummary{
		RunID:          "run-1",
		InputPath:      "rig.csv",
		RecordCount:    6,
		EmotionBuckets: domain.BucketCounts{domain.BucketExact: 3, domain.BucketTolerant: 1, domain.BucketMismatch: 2},
		DomainBuckets:  domain.BucketCounts{domain.BucketExact: 4, domain.BucketTolerant: 2},
		Outputs: domain.OutputPaths{
			AugmentedCSV:        "rig_with_buckets.csv",
			EmotionConfusionCSV: "rig_emotion_cm.csv",
			DomainConfusionCSV:  "rig_domain_cm.csv",
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary()); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	want := `run_id: run-1
records: 6
emotion_buckets:
  1: 3
  2: 1
  3: 2
domain_buckets:
  1: 4
  2: 2
  3: 0
outputs:
  augmented_csv: rig_with_buckets.csv
  emotion_confusion_csv: rig_emotion_cm.csv
  domain_confusion_csv: rig_domain_cm.csv
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestTopPairs(t *testing.T) {
	table := confusion.NewTable()
	table.Add("joy", "anger", 1)
	table.Add("fear", "joy", 5)
	table.Add("sadness", "joy", 5)
	table.Add("anger", "surprise", 2)

	got := TopPairs(table, 3)
	want := []confusion.Pair{
		{Manual: "fear", Predicted: "joy", Count: 5},
		{Manual: "sadness", Predicted: "joy", Count: 5},
		{Manual: "anger", Predicted: "surprise", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("TopPairs mismatch (-want +got):\n%s", diff)
	}
	if TopPairs(nil, 3) != nil {
		t.Fatal("nil table should yield no pairs")
	}
}

func TestFormatSlackSummary(t *testing.T) {
	emotion := confusion.NewTable()
	emotion.Add("joy", "", 2)
	got := FormatSlackSummary(sampleSummary(), emotion, nil)

	for _, want := range []string{
		"*Label evaluation* `rig.csv` (6 records)",
		"Emotion: exact 3 · tolerant 1 · mismatch 2",
		"Domain: exact 4 · tolerant 2 · mismatch 0",
		"Top emotion confusions:\n• joy → (none) (2)",
		"Run `run-1`",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("slack summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Top domain confusions") {
		t.Errorf("empty domain table should not be listed:\n%s", got)
	}
}

func TestRenderHeatmaps(t *testing.T) {
	emotion := confusion.NewTable()
	emotion.Add("joy", "anger", 2)
	var buf bytes.Buffer
	if err := RenderHeatmaps(&buf, emotion, confusion.NewTable()); err != nil {
		t.Fatalf("RenderHeatmaps failed: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Emotion mismatches", "Domain mismatches", "heatmap"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}
