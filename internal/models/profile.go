// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package models

import (
	"strconv"

	"github.com/goccy/go-json"
)

// NotAvailable is shown for profile values the data set does not carry.
const NotAvailable = "N/A"

// IntOrNA encodes as a JSON number when Valid, otherwise as "N/A".
type IntOrNA struct {
	Value int
	Valid bool
}

// IntValue returns a valid IntOrNA.
func IntValue(v int) IntOrNA {
	return IntOrNA{Value: v, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (v IntOrNA) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte(`"` + NotAvailable + `"`), nil
	}
	return []byte(strconv.Itoa(v.Value)), nil
}

// UnmarshalJSON accepts a number or any string, which decodes as not valid.
func (v *IntOrNA) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = IntValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = IntOrNA{}
	return nil
}

// Metric is one labelled headline number of a scientist profile.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ScientistInfo identifies the scientist.
type ScientistInfo struct {
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Affiliation string   `json:"affiliation"`
	Orcid       string   `json:"orcid"`
	Metrics     []Metric `json:"metrics"`
}

// Analytics holds the derived activity index.
type Analytics struct {
	Index       float64 `json:"index"`
	Average     float64 `json:"average"`
	Performance string  `json:"performance"`
}

// TopicDistribution is one slice of the interests chart.
type TopicDistribution struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Publication is one entry of the profile's publication list.
type Publication struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Journal   string  `json:"journal"`
	Year      IntOrNA `json:"year"`
	Citations IntOrNA `json:"citations"`
	Summary   string  `json:"summary"`
}

// ScientistProfileResponse is returned by GET /api/v1/authors/{authorID}/profile.
type ScientistProfileResponse struct {
	Scientist         ScientistInfo       `json:"scientist"`
	Analytics         Analytics           `json:"analytics"`
	TopicDistribution []TopicDistribution `json:"topicDistribution"`
	Publications      []Publication       `json:"publications"`
}
