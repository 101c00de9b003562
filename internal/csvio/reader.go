// Package csvio reads evaluation inputs and writes the augmented record set
// and confusion tables.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/csimplestring/go-csv/detector"

	"labeleval/internal/domain"
)

const (
	ColManualEmotions = "manual_emotions"
	ColManualDomains  = "manual_domains"

	emotionAnswerPrefix = "Answer.f1."
	domainAnswerPrefix  = "Answer.t1."
	answerSuffix        = ".raw"
)

// Default classifier column names, tried in order.
var (
	DefaultEmotionColumns = []string{"classifier_emotion", "EmotionPro"}
	DefaultDomainColumns  = []string{"classifier_domain", "DomainPro"}
)

var (
	ErrMissingManualColumns    = errors.New("input has neither manual_emotions/manual_domains columns nor Answer.f1./Answer.t1. annotation columns")
	ErrMissingClassifierColumn = errors.New("input is missing a classifier label column")
)

// Options selects the classifier columns. Empty fields use the defaults.
type Options struct {
	EmotionColumn string
	DomainColumn  string
}

// Input is a loaded record set with its original header order.
type Input struct {
	Header  []string
	Records []domain.Record
	// DerivedManual is set when manual labels came from annotation columns.
	DerivedManual bool
	// UnparsableCells counts list cells that fell back to an empty list.
	UnparsableCells int
}

// ReadFile loads path. Files without a .csv extension have their delimiter
// detected from the content.
func ReadFile(path string, opts Options) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	delim := ','
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		delim = DetectDelimiter(bytes.NewReader(data))
	}
	in, err := Read(bytes.NewReader(data), delim, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

// DetectDelimiter returns the most likely delimiter, preferring a comma.
func DetectDelimiter(r io.Reader) rune {
	d := detector.New()
	candidates := d.DetectDelimiter(r, '"')
	for _, c := range candidates {
		if c == "," {
			return ','
		}
	}
	if len(candidates) > 0 && len(candidates[0]) > 0 {
		return rune(candidates[0][0])
	}
	return ','
}

// Read parses a delimited record set with a header row.
func Read(r io.Reader, delim rune, opts Options) (*Input, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrMissingManualColumns)
	}
	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	emotionCol, err := pickColumn(index, opts.EmotionColumn, DefaultEmotionColumns)
	if err != nil {
		return nil, err
	}
	domainCol, err := pickColumn(index, opts.DomainColumn, DefaultDomainColumns)
	if err != nil {
		return nil, err
	}

	_, hasEmotions := index[ColManualEmotions]
	_, hasDomains := index[ColManualDomains]
	derived := !hasEmotions || !hasDomains
	var emotionAnswers, domainAnswers []string
	if derived {
		for _, name := range header {
			switch {
			case strings.HasPrefix(name, emotionAnswerPrefix):
				emotionAnswers = append(emotionAnswers, name)
			case strings.HasPrefix(name, domainAnswerPrefix):
				domainAnswers = append(domainAnswers, name)
			}
		}
		if len(emotionAnswers) == 0 && len(domainAnswers) == 0 {
			return nil, ErrMissingManualColumns
		}
	}

	in := &Input{Header: header, DerivedManual: derived}
	for i, row := range rows[1:] {
		cols := make(map[string]string, len(header))
		for j, name := range header {
			if _, seen := cols[name]; !seen && j < len(row) {
				cols[name] = row[j]
			}
		}
		rec := domain.Record{
			Row:               i,
			Columns:           cols,
			ClassifierEmotion: cols[emotionCol],
			ClassifierDomain:  cols[domainCol],
		}
		if derived {
			rec.ManualEmotions = answerLabels(cols, emotionAnswers, emotionAnswerPrefix)
			rec.ManualDomains = answerLabels(cols, domainAnswers, domainAnswerPrefix)
		} else {
			rec.ManualEmotions = in.listCell(cols[ColManualEmotions])
			rec.ManualDomains = in.listCell(cols[ColManualDomains])
		}
		in.Records = append(in.Records, rec)
	}
	if in.UnparsableCells > 0 {
		log.Printf("csv: %d list cells could not be parsed and were treated as empty", in.UnparsableCells)
	}
	return in, nil
}

func (in *Input) listCell(cell string) []string {
	items, ok := ParseList(cell)
	if !ok {
		if strings.TrimSpace(cell) != "" {
			in.UnparsableCells++
		}
		return []string{}
	}
	return items
}

func pickColumn(index map[string]int, configured string, defaults []string) (string, error) {
	if configured != "" {
		if _, ok := index[configured]; ok {
			return configured, nil
		}
		return "", fmt.Errorf("%w: %s", ErrMissingClassifierColumn, configured)
	}
	for _, name := range defaults {
		if _, ok := index[name]; ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: one of %s", ErrMissingClassifierColumn, strings.Join(defaults, ", "))
}

// answerLabels collects the label tokens of every annotation column marked true.
func answerLabels(cols map[string]string, names []string, prefix string) []string {
	out := []string{}
	for _, name := range names {
		if !isTrue(cols[name]) {
			continue
		}
		label := strings.ReplaceAll(strings.Replace(name, prefix, "", 1), answerSuffix, "")
		out = append(out, strings.ToLower(strings.TrimSpace(label)))
	}
	return out
}

func isTrue(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "true")
}
