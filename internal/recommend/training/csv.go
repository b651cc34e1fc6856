// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package training

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/scholarmatch/internal/recommend"
	"github.com/tomtom215/scholarmatch/internal/recommend/profile"
)

// Column names of authors_scientific_interests.csv.
const (
	ColAuthorID       = "Author_ID"
	ColAuthorName     = "Author_Name"
	ColInterestsList  = "Interests_List"
	ColKeywordsList   = "Keywords_List"
	ColInterestsCount = "Interests_Count"
	ColArticlesCount  = "Articles_Count"
	ColMainInterest   = "Main_Interest"
	ColCluster        = "Cluster"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("required column not found")

// ReadStats counts what happened to each CSV row.
type ReadStats struct {
	Rows       int `json:"rows"`
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

// CSVSource reads the author corpus from an authors_scientific_interests.csv
// file.
type CSVSource struct {
	Path string

	// Stats is filled in by LoadCorpus.
	Stats ReadStats
}

// LoadCorpus implements CorpusSource.
func (s *CSVSource) LoadCorpus(ctx context.Context) ([]recommend.AuthorRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open corpus csv: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	records, stats, err := ReadAuthorsCSV(ctx, f)
	s.Stats = stats
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return records, nil
}

// Name identifies the source in logs.
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// ReadAuthorsCSV parses author rows. Rows without an Author_ID are skipped,
// repeated Author_IDs keep the first row, and count columns are only parsed
// when they are plain digits.
func ReadAuthorsCSV(ctx context.Context, r io.Reader) ([]recommend.AuthorRecord, ReadStats, error) {
	var stats ReadStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	for _, required := range []string{ColAuthorID, ColInterestsList} {
		if _, ok := cols[required]; !ok {
			return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	get := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	seen := make(map[string]struct{})
	var records []recommend.AuthorRecord
	for {
		if stats.Rows%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		id := get(row, ColAuthorID)
		if id == "" {
			stats.Skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			stats.Duplicates++
			continue
		}
		seen[id] = struct{}{}

		records = append(records, recommend.AuthorRecord{
			ID:             id,
			Name:           OptionalString(get(row, ColAuthorName)),
			Interests:      profile.SplitList(get(row, ColInterestsList), "|"),
			Keywords:       profile.SplitList(get(row, ColKeywordsList), "|"),
			InterestsCount: OptionalDigits(get(row, ColInterestsCount)),
			ArticlesCount:  OptionalDigits(get(row, ColArticlesCount)),
			MainInterest:   OptionalString(get(row, ColMainInterest)),
			Cluster:        OptionalDigits(get(row, ColCluster)),
		})
		stats.Imported++
	}
	return records, stats, nil
}

// OptionalString returns nil for an empty string.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalDigits parses s only when it consists of ASCII digits.
func OptionalDigits(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
