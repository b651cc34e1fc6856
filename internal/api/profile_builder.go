// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/scholarmatch/internal/models"
	"github.com/tomtom215/scholarmatch/internal/recommend"
)

// topicColors is the chart palette, cycled by topic position.
var topicColors = []string{
	"#5BC0F8", "#7C3AED", "#F2A541", "#142850", "#38B2AC",
	"#EC4899", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
}

const (
	maxSummaryRunes = 200
	performance     = "Overall Performance"
)

// buildScientistProfile assembles the profile page of an author. user is
// the registered user linked through an external id, or nil.
func buildScientistProfile(interest *models.AuthorInterest, pubs []models.Author, user *models.User) models.ScientistProfileResponse {
	articles := len(pubs)
	if interest.ArticlesCount != nil && *interest.ArticlesCount != 0 {
		articles = *interest.ArticlesCount
	}

	return models.ScientistProfileResponse{
		Scientist:         scientistInfo(interest, user, articles),
		Analytics:         profileAnalytics(interest),
		TopicDistribution: topicDistribution(interest, articles),
		Publications:      profilePublications(pubs),
	}
}

func scientistInfo(interest *models.AuthorInterest, user *models.User, articles int) models.ScientistInfo {
	name := optionalOr(interest.AuthorName, models.NotAvailable)

	username := recommend.DeriveUsername(optionalOr(interest.AuthorName, ""))
	orcid := models.NotAvailable
	if user != nil {
		username = user.Login
		orcid = optionalOr(user.OrcidID, models.NotAvailable)
	}

	return models.ScientistInfo{
		Username:    username,
		Name:        name,
		Affiliation: models.NotAvailable,
		Orcid:       orcid,
		Metrics: []models.Metric{
			{Label: "H-Index", Value: models.NotAvailable},
			{Label: "Citations", Value: models.NotAvailable},
			{Label: "Publications", Value: strconv.Itoa(max(articles, 0))},
		},
	}
}

// profileAnalytics derives the activity index from the interest and article
// counts. Both counts must be present and non-zero.
func profileAnalytics(interest *models.AuthorInterest) models.Analytics {
	a := models.Analytics{Performance: performance}
	ic, ac := interest.InterestsCount, interest.ArticlesCount
	if ic == nil || ac == nil || *ic == 0 || *ac == 0 {
		return a
	}
	base := float64(*ic+*ac) / 2
	a.Index = roundTenth(base * 0.4)
	a.Average = roundTenth(base * 0.45)
	return a
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// topicDistribution splits the article count across the author's
// interests, giving the remainder to the first topics. Every topic gets at
// least 1. Without interests the main interest, or "Other", takes all.
func topicDistribution(interest *models.AuthorInterest, articles int) []models.TopicDistribution {
	topics := recommend.ParseInterests(optionalOr(interest.InterestsList, ""))
	if len(topics) == 0 {
		return []models.TopicDistribution{{
			Label: optionalOr(interest.MainInterest, "Other"),
			Value: max(articles, 1),
			Color: topicColors[0],
		}}
	}

	base, remainder := 1, 0
	if articles > 0 {
		base = articles / len(topics)
		remainder = articles % len(topics)
	}

	out := make([]models.TopicDistribution, len(topics))
	for i, label := range topics {
		value := base
		if i < remainder {
			value++
		}
		out[i] = models.TopicDistribution{
			Label: label,
			Value: max(value, 1),
			Color: topicColors[i%len(topicColors)],
		}
	}
	return out
}

func profilePublications(pubs []models.Author) []models.Publication {
	out := make([]models.Publication, len(pubs))
	for i := range pubs {
		p := &pubs[i]

		var year models.IntOrNA
		if p.PublicationYear != nil {
			if y, err := strconv.Atoi(strings.TrimSpace(*p.PublicationYear)); err == nil {
				year = models.IntValue(y)
			}
		}

		summary := optionalOr(p.Citation, optionalOr(p.Title, models.NotAvailable))
		if runes := []rune(summary); len(runes) > maxSummaryRunes {
			summary = string(runes[:maxSummaryRunes-3]) + "..."
		}

		out[i] = models.Publication{
			ID:      i + 1,
			Title:   optionalOr(p.Title, models.NotAvailable),
			Journal: optionalOr(p.JournalBook, models.NotAvailable),
			Year:    year,
			Summary: summary,
		}
	}
	return out
}

// optionalOr returns *s, or fallback when s is nil or empty.
func optionalOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
