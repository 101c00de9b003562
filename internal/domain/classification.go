package domain

import (
	"fmt"
	"time"
)

// Bucket is the agreement tier between classifier and manual labels on one axis.
type Bucket int

const (
	BucketExact    Bucket = 1
	BucketTolerant Bucket = 2
	BucketMismatch Bucket = 3
)

// Buckets lists every tier in report order.
var Buckets = []Bucket{BucketExact, BucketTolerant, BucketMismatch}

func (b Bucket) String() string {
	switch b {
	case BucketExact:
		return "exact"
	case BucketTolerant:
		return "tolerant"
	case BucketMismatch:
		return "mismatch"
	}
	return fmt.Sprintf("bucket(%d)", int(b))
}

// Axis names which label family a bucket or confusion pair belongs to.
type Axis string

const (
	AxisEmotion Axis = "emotion"
	AxisDomain  Axis = "domain"
)

// Record is one evaluated row. Row is the 0-based position in the input
// and is the record's identity.
type Record struct {
	Row     int
	Columns map[string]string

	ManualEmotions    []string
	ManualDomains     []string
	ClassifierEmotion string
	ClassifierDomain  string

	ManualEmotionsCoarse  []string
	ClassifierEmotionNorm string
	ManualDomainsCanon    []string
	ClassifierDomainNorm  string

	BucketEmotion Bucket
	BucketDomain  Bucket
}

// BucketCounts tallies records per tier.
type BucketCounts map[Bucket]int

// NewBucketCounts returns counts with every tier present at zero.
func NewBucketCounts() BucketCounts {
	c := make(BucketCounts, len(Buckets))
	for _, b := range Buckets {
		c[b] = 0
	}
	return c
}

// RunSummary is what gets printed, stored and posted for one evaluation.
type RunSummary struct {
	RunID          string
	InputPath      string
	RecordCount    int
	EmotionBuckets BucketCounts
	DomainBuckets  BucketCounts
	Outputs        OutputPaths
	CreatedAt      time.Time
}

// OutputPaths are the files one evaluation writes.
type OutputPaths struct {
	AugmentedCSV        string
	EmotionConfusionCSV string
	DomainConfusionCSV  string
	HeatmapHTML         string
}

// StoredRun is a row of the run history.
type StoredRun struct {
	RunID       string    `csv:"run_id"`
	InputPath   string    `csv:"input_path"`
	RecordCount int       `csv:"record_count"`
	EmotionB1   int       `csv:"emotion_b1"`
	EmotionB2   int       `csv:"emotion_b2"`
	EmotionB3   int       `csv:"emotion_b3"`
	DomainB1    int       `csv:"domain_b1"`
	DomainB2    int       `csv:"domain_b2"`
	DomainB3    int       `csv:"domain_b3"`
	CreatedAt   time.Time `csv:"created_at"`
}
