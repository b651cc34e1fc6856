// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

func TestAuthorRecord_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		record        AuthorRecord
		wantName      string
		wantArticles  int
		wantInterests int
	}{
		{
			name:     "absent fields",
			record:   AuthorRecord{ID: "x"},
			wantName: UnknownAuthorName,
		},
		{
			name:     "empty name",
			record:   AuthorRecord{ID: "x", Name: strPtr("")},
			wantName: UnknownAuthorName,
		},
		{
			name: "all present",
			record: AuthorRecord{
				ID:             "x",
				Name:           strPtr("Barbara McClintock"),
				ArticlesCount:  intPtr(12),
				InterestsCount: intPtr(3),
			},
			wantName:      "Barbara McClintock",
			wantArticles:  12,
			wantInterests: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.DisplayName(); got != tt.wantName {
				t.Errorf("DisplayName() = %q, want %q", got, tt.wantName)
			}
			if got := tt.record.Articles(); got != tt.wantArticles {
				t.Errorf("Articles() = %d, want %d", got, tt.wantArticles)
			}
			if got := tt.record.InterestCount(); got != tt.wantInterests {
				t.Errorf("InterestCount() = %d, want %d", got, tt.wantInterests)
			}
		})
	}
}

func TestRecommendation_MainInterestNull(t *testing.T) {
	data, err := json.Marshal(Recommendation{AuthorID: "A1", AuthorName: "Ada"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"main_interest":null`) {
		t.Errorf("absent main interest should serialize as null: %s", data)
	}
}

func TestInputError(t *testing.T) {
	err := error(NewInputError("top_k", "must be >= 1, got 0"))

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InputError does not match ErrInvalidInput")
	}
	if err.Error() != "invalid top_k: must be >= 1, got 0" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestArtifactLoadError(t *testing.T) {
	err := error(NewArtifactLoadError("/models/index.gob.gz", fs.ErrNotExist))

	if !errors.Is(err, ErrArtifactLoad) {
		t.Error("ArtifactLoadError does not match ErrArtifactLoad")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("ArtifactLoadError hides its cause")
	}
	var loadErr *ArtifactLoadError
	if !errors.As(err, &loadErr) || loadErr.Path != "/models/index.gob.gz" {
		t.Errorf("errors.As() = %+v", loadErr)
	}

	bare := NewArtifactLoadError("/models", nil)
	if !errors.Is(bare, ErrArtifactLoad) || bare.Error() != "load artifact /models" {
		t.Errorf("bare error = %q", bare.Error())
	}
}

func TestModelNotLoadedIsShared(t *testing.T) {
	if !errors.Is(algorithms.ErrModelNotLoaded, ErrModelNotLoaded) {
		t.Error("algorithms.ErrModelNotLoaded should be the engine sentinel")
	}
}
