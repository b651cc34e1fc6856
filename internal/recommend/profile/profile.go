// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

// Package profile builds the text profiles that are fed to the TF-IDF
// vectorizer, both for corpus authors at training time and for researchers
// at query time.
package profile

import (
	"regexp"
	"sort"
	"strings"
)

// MaxPublicationKeywords is the number of publication keywords appended to a
// query profile.
const MaxPublicationKeywords = 10

// wordPattern matches whole Unicode word runs, so "schrödinger" is one
// word rather than "schr" and "dinger".
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// publicationStopWords are generic academic words that carry no topic.
var publicationStopWords = map[string]struct{}{
	"research":   {},
	"study":      {},
	"analysis":   {},
	"method":     {},
	"results":    {},
	"conclusion": {},
}

// Build returns the query profile for a researcher: the interests in order
// (duplicates kept), followed by up to ten keywords mined from publications.
// Empty input yields "".
func Build(interests, publications []string) string {
	parts := make([]string, 0, len(interests)+MaxPublicationKeywords)
	parts = append(parts, interests...)

	if len(publications) > 0 {
		parts = append(parts, Keywords(publications, MaxPublicationKeywords)...)
	}
	return strings.Join(parts, " ")
}

// BuildAuthor returns the training profile of a corpus author from the raw
// pipe-delimited interest and keyword lists plus the main interest label.
func BuildAuthor(interestsList, keywordsList, mainInterest string) string {
	var parts []string
	if interests := SplitList(interestsList, "|"); len(interests) > 0 {
		parts = append(parts, strings.Join(interests, " "))
	}
	parts = append(parts, SplitList(keywordsList, "|")...)
	if mainInterest != "" {
		parts = append(parts, mainInterest)
	}
	return strings.Join(parts, " ")
}

// SplitList splits raw on sep, trims each element and drops empty ones.
func SplitList(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.Split(raw, sep)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Keywords returns the n most frequent non-stop-word keywords across the
// publications. Equal counts keep first-seen order.
func Keywords(publications []string, n int) []string {
	text := strings.ToLower(strings.Join(publications, " "))

	counter := newOrderedCounter()
	for _, word := range wordPattern.FindAllString(text, -1) {
		if !isKeyword(word) {
			continue
		}
		if _, stop := publicationStopWords[word]; stop {
			continue
		}
		counter.add(word)
	}
	return counter.mostCommon(n)
}

// isKeyword reports whether word is four or more ASCII lower-case letters.
func isKeyword(word string) bool {
	if len(word) < 4 {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

// orderedCounter counts occurrences and remembers first-seen order.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(word string) {
	if _, seen := c.counts[word]; !seen {
		c.order = append(c.order, word)
	}
	c.counts[word]++
}

func (c *orderedCounter) mostCommon(n int) []string {
	words := append([]string(nil), c.order...)
	sort.SliceStable(words, func(i, j int) bool {
		return c.counts[words[i]] > c.counts[words[j]]
	})
	if n >= 0 && len(words) > n {
		words = words[:n]
	}
	return words
}
