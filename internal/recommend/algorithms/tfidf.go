// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package algorithms

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerConfig contains configuration for the TF-IDF vectorizer.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary at the most frequent terms. 0 = unlimited.
	// Default: 1000.
	MaxFeatures int `json:"max_features"`

	// NGramMin is the smallest n-gram length.
	// Default: 1.
	NGramMin int `json:"ngram_min"`

	// NGramMax is the largest n-gram length.
	// Default: 2.
	NGramMax int `json:"ngram_max"`

	// MinDF is the minimum number of profiles a term must appear in.
	// Default: 5.
	MinDF int `json:"min_df"`

	// MaxDF is the maximum document frequency. Values <= 1 are a proportion
	// of the corpus, larger values an absolute profile count.
	// Default: 0.7.
	MaxDF float64 `json:"max_df"`

	// StopWords removes English stop words before n-gram construction.
	// Default: true.
	StopWords bool `json:"stop_words"`

	// SublinearTF replaces tf with 1 + ln(tf).
	// Default: false.
	SublinearTF bool `json:"sublinear_tf"`
}

// DefaultVectorizerConfig returns the production vectorizer configuration.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: 1000,
		NGramMin:    1,
		NGramMax:    2,
		MinDF:       5,
		MaxDF:       0.7,
		StopWords:   true,
	}
}

// Validate checks the configuration for invalid values.
func (c VectorizerConfig) Validate() error {
	if c.MaxFeatures < 0 {
		return fmt.Errorf("max_features must be >= 0, got %d", c.MaxFeatures)
	}
	if c.NGramMin < 1 || c.NGramMax < c.NGramMin {
		return fmt.Errorf("invalid ngram range (%d, %d)", c.NGramMin, c.NGramMax)
	}
	if c.MinDF < 1 {
		return fmt.Errorf("min_df must be >= 1, got %d", c.MinDF)
	}
	if c.MaxDF <= 0 {
		return fmt.Errorf("max_df must be > 0, got %g", c.MaxDF)
	}
	return nil
}

// VectorizerState is the serializable form of a fitted vectorizer.
type VectorizerState struct {
	Config VectorizerConfig
	Terms  []string
	IDF    []float64
}

// Vectorizer converts profile strings into TF-IDF weighted sparse vectors.
type Vectorizer struct {
	config     VectorizerConfig
	vocabulary map[string]int32
	terms      []string
	idf        []float64
	fitted     bool
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	return &Vectorizer{config: cfg}
}

// NewVectorizerFromState restores a fitted vectorizer from its saved state.
func NewVectorizerFromState(state VectorizerState) (*Vectorizer, error) {
	if len(state.Terms) != len(state.IDF) {
		return nil, errorf(ErrDimensionMismatch, "vocabulary has %d terms but %d idf weights", len(state.Terms), len(state.IDF))
	}
	if len(state.Terms) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v := &Vectorizer{
		config:     state.Config,
		vocabulary: make(map[string]int32, len(state.Terms)),
		terms:      append([]string(nil), state.Terms...),
		idf:        append([]float64(nil), state.IDF...),
		fitted:     true,
	}
	for i, term := range v.terms {
		if _, dup := v.vocabulary[term]; dup {
			return nil, fmt.Errorf("duplicate vocabulary term %q", term)
		}
		v.vocabulary[term] = int32(i)
	}
	return v, nil
}

// State returns the serializable form of the vectorizer.
func (v *Vectorizer) State() VectorizerState {
	return VectorizerState{
		Config: v.config,
		Terms:  append([]string(nil), v.terms...),
		IDF:    append([]float64(nil), v.idf...),
	}
}

// Config returns the vectorizer configuration.
func (v *Vectorizer) Config() VectorizerConfig {
	return v.config
}

// IsFitted reports whether Fit has completed successfully.
func (v *Vectorizer) IsFitted() bool {
	return v != nil && v.fitted
}

// Dim returns the vocabulary size (0 before fitting).
func (v *Vectorizer) Dim() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// Fit learns the vocabulary and IDF weights from profiles and returns the
// TF-IDF matrix of those same profiles.
func (v *Vectorizer) Fit(profiles []string) (*Matrix, error) {
	if err := v.config.Validate(); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrEmptyCorpus
	}

	docCounts := make([]map[string]int, len(profiles))
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, p := range profiles {
		counts := make(map[string]int)
		for _, term := range v.analyze(p) {
			counts[term]++
		}
		for term, c := range counts {
			df[term]++
			tf[term] += c
		}
		docCounts[i] = counts
	}

	n := len(profiles)
	maxDocs := v.config.MaxDF
	if maxDocs <= 1 {
		maxDocs *= float64(n)
	}
	if maxDocs < float64(v.config.MinDF) {
		return nil, ErrInvalidDFRange
	}

	kept := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.config.MinDF && float64(count) <= maxDocs {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}

	if v.config.MaxFeatures > 0 && len(kept) > v.config.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if tf[kept[i]] != tf[kept[j]] {
				return tf[kept[i]] > tf[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.config.MaxFeatures]
	}
	sort.Strings(kept)

	v.terms = kept
	v.vocabulary = make(map[string]int32, len(kept))
	v.idf = make([]float64, len(kept))
	for i, term := range kept {
		v.vocabulary[term] = int32(i)
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	v.fitted = true

	matrix := &Matrix{Rows: make([]SparseVector, n), Dim: len(kept)}
	for i, counts := range docCounts {
		matrix.Rows[i] = v.weigh(counts)
	}
	return matrix, nil
}

// Transform converts a profile into a vector in the fitted space. Terms
// outside the vocabulary are ignored. Calling Transform twice with the same
// input yields identical vectors.
func (v *Vectorizer) Transform(profile string) (SparseVector, error) {
	if !v.IsFitted() {
		return SparseVector{}, ErrModelNotLoaded
	}
	counts := make(map[string]int)
	for _, term := range v.analyze(profile) {
		counts[term]++
	}
	return v.weigh(counts), nil
}

// weigh turns raw term counts into an L2-normalized TF-IDF vector.
func (v *Vectorizer) weigh(counts map[string]int) SparseVector {
	vec := SparseVector{Dim: len(v.terms)}
	for term := range counts {
		if idx, ok := v.vocabulary[term]; ok {
			vec.Indices = append(vec.Indices, idx)
		}
	}
	sort.Slice(vec.Indices, func(i, j int) bool { return vec.Indices[i] < vec.Indices[j] })

	vec.Values = make([]float64, len(vec.Indices))
	var sumSq float64
	for i, idx := range vec.Indices {
		w := float64(counts[v.terms[idx]])
		if v.config.SublinearTF {
			w = 1 + math.Log(w)
		}
		w *= v.idf[idx]
		vec.Values[i] = w
		sumSq += w * w
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// analyze tokenizes a profile and expands it into n-grams.
func (v *Vectorizer) analyze(profile string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(profile), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if v.config.StopWords && isStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	minN, maxN := v.config.NGramMin, v.config.NGramMax
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	terms := make([]string, 0, len(tokens)*(maxN-minN+1))
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				terms = append(terms, tokens[i])
				continue
			}
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// errorf wraps a sentinel with formatted context.
func errorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
