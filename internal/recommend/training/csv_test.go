// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package training

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = "\ufeffAuthor_ID,Author_Name,Interests_List,Keywords_List,Interests_Count,Articles_Count,Main_Interest,Cluster\n" +
	"A1,Ada Lovelace,machine learning | bioinformatics,neural networks|gene expression,2,50,machine learning,3\n" +
	",Nobody,genomics,,1,1,,\n" +
	"A2,,protein folding,,1,n/a,,\n" +
	"A1,Ada Duplicate,astronomy,,1,1,,\n" +
	"A3,\"Hubble, Edwin\",astronomy|cosmology,,2,17,astronomy,0\n"

func TestReadAuthorsCSV(t *testing.T) {
	records, stats, err := ReadAuthorsCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadAuthorsCSV() error = %v", err)
	}

	want := ReadStats{Rows: 5, Imported: 3, Skipped: 1, Duplicates: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	a1 := records[0]
	if a1.ID != "A1" || a1.Name == nil || *a1.Name != "Ada Lovelace" {
		t.Errorf("A1 = %+v, first row should win", a1)
	}
	if !reflect.DeepEqual(a1.Interests, []string{"machine learning", "bioinformatics"}) {
		t.Errorf("A1 interests = %q", a1.Interests)
	}
	if !reflect.DeepEqual(a1.Keywords, []string{"neural networks", "gene expression"}) {
		t.Errorf("A1 keywords = %q", a1.Keywords)
	}
	if a1.ArticlesCount == nil || *a1.ArticlesCount != 50 || a1.Cluster == nil || *a1.Cluster != 3 {
		t.Errorf("A1 counts = %v/%v", a1.ArticlesCount, a1.Cluster)
	}

	a2 := records[1]
	if a2.Name != nil || a2.MainInterest != nil || a2.Keywords != nil {
		t.Errorf("A2 optional fields should be absent: %+v", a2)
	}
	if a2.ArticlesCount != nil {
		t.Errorf("A2 articles = %d, want nil for non-digit value", *a2.ArticlesCount)
	}
	if a2.DisplayName() != "Unknown" {
		t.Errorf("A2 display name = %q", a2.DisplayName())
	}

	a3 := records[2]
	if a3.Name == nil || *a3.Name != "Hubble, Edwin" {
		t.Errorf("A3 name = %v, quoted comma should be kept", a3.Name)
	}
	if a3.Cluster == nil || *a3.Cluster != 0 {
		t.Errorf("A3 cluster = %v, want 0", a3.Cluster)
	}
}

func TestReadAuthorsCSV_MissingColumn(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"no interests column", "Author_ID,Author_Name\nA1,Ada\n"},
		{"no id column", "Author_Name,Interests_List\nAda,genomics\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadAuthorsCSV(context.Background(), strings.NewReader(tt.csv))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestReadAuthorsCSV_Empty(t *testing.T) {
	if _, _, err := ReadAuthorsCSV(context.Background(), strings.NewReader("")); err == nil {
		t.Error("expected error for input without a header")
	}

	records, stats, err := ReadAuthorsCSV(context.Background(), strings.NewReader("Author_ID,Interests_List\n"))
	if err != nil {
		t.Fatalf("ReadAuthorsCSV() error = %v", err)
	}
	if len(records) != 0 || stats.Rows != 0 {
		t.Errorf("records = %v, stats = %+v; want none", records, stats)
	}
}

func TestReadAuthorsCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ReadAuthorsCSV(ctx, strings.NewReader(sampleCSV)); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors_scientific_interests.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	src := &CSVSource{Path: path}
	records, err := src.LoadCorpus(context.Background())
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if len(records) != 3 || src.Stats.Duplicates != 1 {
		t.Errorf("records = %d, stats = %+v", len(records), src.Stats)
	}
	if src.Name() != "csv:"+path {
		t.Errorf("Name() = %q", src.Name())
	}

	missing := &CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	if _, err := missing.LoadCorpus(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestOptionalDigits(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"  ", nil},
		{"12", intPtr(12)},
		{" 7 ", intPtr(7)},
		{"0", intPtr(0)},
		{"-3", nil},
		{"3.0", nil},
		{"n/a", nil},
	}
	for _, tt := range tests {
		got := OptionalDigits(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("OptionalDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func intPtr(i int) *int { return &i }
