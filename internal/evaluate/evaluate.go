// Package evaluate runs one evaluation batch: normalize, bucket, tally and
// write the outputs.
package evaluate

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"labeleval/internal/bucket"
	"labeleval/internal/confusion"
	"labeleval/internal/csvio"
	"labeleval/internal/domain"
	"labeleval/internal/labels"
)

// Result is an evaluated record set with its aggregates.
type Result struct {
	Records        []domain.Record
	EmotionBuckets domain.BucketCounts
	DomainBuckets  domain.BucketCounts
	EmotionTable   *confusion.Table
	DomainTable    *confusion.Table
}

// Enrich fills the derived fields and bucket codes of r.
func Enrich(r *domain.Record) {
	r.ManualEmotionsCoarse = labels.CoarseEmotions(r.ManualEmotions)
	r.ClassifierEmotionNorm = labels.NormalizeEmotionLabel(r.ClassifierEmotion)
	r.ManualDomainsCanon = labels.CanonicalDomains(r.ManualDomains)
	r.ClassifierDomainNorm = labels.CanonicalDomain(r.ClassifierDomain)
	r.BucketEmotion = bucket.Emotion(r.ManualEmotionsCoarse, r.ClassifierEmotionNorm)
	r.BucketDomain = bucket.Domain(r.ManualDomainsCanon, r.ClassifierDomainNorm)
}

// Records enriches every record in place and aggregates the batch.
func Records(records []domain.Record) *Result {
	res := &Result{
		Records:        records,
		EmotionBuckets: domain.NewBucketCounts(),
		DomainBuckets:  domain.NewBucketCounts(),
	}
	for i := range records {
		Enrich(&records[i])
		res.EmotionBuckets[records[i].BucketEmotion]++
		res.DomainBuckets[records[i].BucketDomain]++
	}
	res.EmotionTable = confusion.Build(records, domain.AxisEmotion)
	res.DomainTable = confusion.Build(records, domain.AxisDomain)
	return res
}

// Request describes one file-to-file evaluation.
type Request struct {
	InputPath string
	Outputs   domain.OutputPaths
	Columns   csvio.Options
}

// WithDefaults fills empty output paths from the input path.
func (r Request) WithDefaults() Request {
	if r.Outputs.AugmentedCSV == "" {
		r.Outputs.AugmentedCSV = csvio.DeriveOutputPath(r.InputPath, csvio.SuffixAugmented)
	}
	if r.Outputs.EmotionConfusionCSV == "" {
		r.Outputs.EmotionConfusionCSV = csvio.DeriveOutputPath(r.InputPath, csvio.SuffixEmotionCM)
	}
	if r.Outputs.DomainConfusionCSV == "" {
		r.Outputs.DomainConfusionCSV = csvio.DeriveOutputPath(r.InputPath, csvio.SuffixDomainCM)
	}
	return r
}

// File reads the input, evaluates it and writes the three CSV outputs.
func File(req Request) (domain.RunSummary, *Result, error) {
	if err := req.Validate(); err != nil {
		return domain.RunSummary{}, nil, err
	}
	req = req.WithDefaults()
	in, err := csvio.ReadFile(req.InputPath, req.Columns)
	if err != nil {
		return domain.RunSummary{}, nil, err
	}
	log.Printf("evaluate: loaded %d records from %s (derived_manual=%t)", len(in.Records), req.InputPath, in.DerivedManual)

	res := Records(in.Records)

	if err := csvio.WriteFile(req.Outputs.AugmentedCSV, func(w io.Writer) error {
		return csvio.WriteAugmented(w, in.Header, res.Records)
	}); err != nil {
		return domain.RunSummary{}, nil, err
	}
	if err := csvio.WriteFile(req.Outputs.EmotionConfusionCSV, func(w io.Writer) error {
		return csvio.WriteConfusion(w, res.EmotionTable)
	}); err != nil {
		return domain.RunSummary{}, nil, err
	}
	if err := csvio.WriteFile(req.Outputs.DomainConfusionCSV, func(w io.Writer) error {
		return csvio.WriteConfusion(w, res.DomainTable)
	}); err != nil {
		return domain.RunSummary{}, nil, err
	}

	summary := domain.RunSummary{
		RunID:          uuid.NewString(),
		InputPath:      req.InputPath,
		RecordCount:    len(res.Records),
		EmotionBuckets: res.EmotionBuckets,
		DomainBuckets:  res.DomainBuckets,
		Outputs:        req.Outputs,
		CreatedAt:      time.Now().UTC(),
	}
	log.Printf("evaluate: run=%s records=%d emotion_mismatch=%d domain_mismatch=%d",
		summary.RunID, summary.RecordCount,
		res.EmotionBuckets[domain.BucketMismatch], res.DomainBuckets[domain.BucketMismatch])
	return summary, res, nil
}

// Validate checks that the request names an input.
func (r Request) Validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	return nil
}
