package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"labeleval/internal/confusion"
	"labeleval/internal/domain"
)

// DerivedColumns are appended to the augmented output in this order. A
// column already present in the input keeps its position.
var DerivedColumns = []string{
	ColManualEmotions,
	ColManualDomains,
	"manual_emotions_coarse",
	"classifier_emotion_norm",
	"classifier_domain_norm",
	"manual_domains_canon",
	"bucket_emotion",
	"bucket_domain",
}

// Output path suffixes substituted for the input's .csv extension.
const (
	SuffixAugmented = "_with_buckets"
	SuffixEmotionCM = "_emotion_cm"
	SuffixDomainCM  = "_domain_cm"
)

// DeriveOutputPath replaces a trailing .csv of input with suffix+".csv". An
// input without that extension gets suffix+".csv" appended so the input is
// never overwritten.
func DeriveOutputPath(input, suffix string) string {
	if strings.EqualFold(filepath.Ext(input), ".csv") {
		return input[:len(input)-len(".csv")] + suffix + ".csv"
	}
	return input + suffix + ".csv"
}

// AugmentedHeader is the input header plus any derived column it lacks.
func AugmentedHeader(header []string) []string {
	out := append([]string(nil), header...)
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, c := range DerivedColumns {
		if !present[c] {
			out = append(out, c)
		}
	}
	return out
}

func derivedValue(r domain.Record, column string) (string, bool) {
	switch column {
	case ColManualEmotions:
		return FormatList(r.ManualEmotions), true
	case ColManualDomains:
		return FormatList(r.ManualDomains), true
	case "manual_emotions_coarse":
		return FormatList(r.ManualEmotionsCoarse), true
	case "classifier_emotion_norm":
		return r.ClassifierEmotionNorm, true
	case "classifier_domain_norm":
		return r.ClassifierDomainNorm, true
	case "manual_domains_canon":
		return FormatList(r.ManualDomainsCanon), true
	case "bucket_emotion":
		return strconv.Itoa(int(r.BucketEmotion)), true
	case "bucket_domain":
		return strconv.Itoa(int(r.BucketDomain)), true
	}
	return "", false
}

// WriteAugmented writes every record with its derived columns.
func WriteAugmented(w io.Writer, header []string, records []domain.Record) error {
	cw := csv.NewWriter(w)
	out := AugmentedHeader(header)
	if err := cw.Write(out); err != nil {
		return err
	}
	row := make([]string, len(out))
	for _, r := range records {
		for i, col := range out {
			if v, ok := derivedValue(r, col); ok {
				row[i] = v
				continue
			}
			row[i] = r.Columns[col]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteConfusion writes t as a matrix: the first column holds manual values,
// the header holds predicted values, cells are counts.
func WriteConfusion(w io.Writer, t *confusion.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Cols()
	if err := cw.Write(append([]string{"manual"}, cols...)); err != nil {
		return err
	}
	for _, m := range t.Rows() {
		row := make([]string, 0, len(cols)+1)
		row = append(row, m)
		for _, p := range cols {
			row = append(row, strconv.Itoa(t.Count(m, p)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
