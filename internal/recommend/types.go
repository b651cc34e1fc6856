// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"time"
)

// UnknownAuthorName is reported for corpus authors without a name.
const UnknownAuthorName = "Unknown"

// AuthorRecord is one row of the training corpus. Pointer fields are nil when
// the source row had no usable value.
type AuthorRecord struct {
	// ID is the unique author identifier.
	ID string `json:"author_id"`

	// Name is the display name.
	Name *string `json:"author_name,omitempty"`

	// Interests is the ordered curated interest list.
	Interests []string `json:"interests,omitempty"`

	// Keywords is the ordered curated keyword list.
	Keywords []string `json:"keywords,omitempty"`

	// InterestsCount is the number of interests reported by the source.
	InterestsCount *int `json:"interests_count,omitempty"`

	// ArticlesCount is the number of published articles.
	ArticlesCount *int `json:"articles_count,omitempty"`

	// MainInterest is the designated primary topic.
	MainInterest *string `json:"main_interest,omitempty"`

	// Cluster is an optional topic cluster tag.
	Cluster *int `json:"cluster,omitempty"`
}

// DisplayName returns the author's name or UnknownAuthorName.
func (a *AuthorRecord) DisplayName() string {
	if a.Name == nil || *a.Name == "" {
		return UnknownAuthorName
	}
	return *a.Name
}

// Articles returns ArticlesCount, or 0 when absent.
func (a *AuthorRecord) Articles() int {
	return intOrZero(a.ArticlesCount)
}

// InterestCount returns InterestsCount, or 0 when absent.
func (a *AuthorRecord) InterestCount() int {
	return intOrZero(a.InterestsCount)
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Recommendation is one ranked collaborator suggestion.
type Recommendation struct {
	AuthorID          string  `json:"author_id"`
	AuthorName        string  `json:"author_name"`
	TotalScore        float64 `json:"total_score"`
	SimilarityScore   float64 `json:"similarity_score"`
	ProductivityScore float64 `json:"productivity_score"`
	DiversityScore    float64 `json:"diversity_score"`
	ArticlesCount     int     `json:"articles_count"`
	InterestsCount    int     `json:"interests_count"`

	// MainInterest is nil when the author has no main interest label.
	MainInterest *string `json:"main_interest"`
}

// Request contains parameters for a recommendation request.
type Request struct {
	// Interests are the researcher's stated interests.
	Interests []string `json:"interests"`

	// Publications is optional publication text used to mine extra keywords.
	Publications []string `json:"publications,omitempty"`

	// TopK is the number of recommendations to return.
	TopK int `json:"top_k"`

	// RequestID is used for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response contains ranked recommendations and request metadata.
type Response struct {
	// Recommendations are ordered by TotalScore, highest first.
	Recommendations []Recommendation `json:"recommendations"`

	// ProcessingTime is the wall-clock time spent in seconds.
	ProcessingTime float64 `json:"processing_time"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about the recommendation process.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// CandidatesConsidered is the number of neighbors fetched from the index.
	CandidatesConsidered int `json:"candidates_considered"`

	// CandidatesFiltered is the number dropped by the similarity floor.
	CandidatesFiltered int `json:"candidates_filtered"`

	CacheHit     bool      `json:"cache_hit"`
	ModelVersion string    `json:"model_version"`
	Timestamp    time.Time `json:"timestamp"`
}

// Health is the engine health surface.
type Health struct {
	// ModelLoaded is true only when corpus, vectorizer and index are present.
	ModelLoaded bool `json:"model_loaded"`

	// AuthorsCount is the corpus size, 0 when unloaded.
	AuthorsCount int `json:"authors_count"`

	// VocabularySize is the fitted vocabulary size, 0 when unloaded.
	VocabularySize int `json:"vocabulary_size"`

	// ModelVersion identifies the loaded artifact set.
	ModelVersion string `json:"model_version,omitempty"`
}

// Metrics contains engine performance counters.
type Metrics struct {
	RequestCount       int64  `json:"request_count"`
	CacheHits          int64  `json:"cache_hits"`
	CacheMisses        int64  `json:"cache_misses"`
	ErrorCount         int64  `json:"error_count"`
	CandidatesFiltered int64  `json:"candidates_filtered"`
	AvgLatencyMS       int64  `json:"avg_latency_ms"`
	ModelLoaded        bool   `json:"model_loaded"`
	ModelVersion       string `json:"model_version,omitempty"`
	CorpusSize         int    `json:"corpus_size"`
}
