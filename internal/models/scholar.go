// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package models

// User is a registered user. InterestsList holds the comma-separated
// interests set through PUT /api/v1/users/interests.
type User struct {
	ID              int     `json:"id"`
	Login           string  `json:"login"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	GoogleScholarID *string `json:"google_scholar_id"`
	ScopusID        *string `json:"scopus_id"`
	WosID           *string `json:"wos_id"`
	RsciID          *string `json:"rsci_id"`
	OrcidID         *string `json:"orcid_id"`
	InterestsList   *string `json:"interests_list"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Author is one publication row of an unregistered author, imported from
// authors_expanded_with_ids.csv. An author with many articles has many rows.
type Author struct {
	ID              int     `json:"id"`
	PMID            *string `json:"pmid"`
	Title           *string `json:"title"`
	AuthorsOriginal *string `json:"authors_original"`
	Citation        *string `json:"citation"`
	JournalBook     *string `json:"journal_book"`
	PublicationYear *string `json:"publication_year"`
	CreateDate      *string `json:"create_date"`
	PMCID           *string `json:"pmcid"`
	NIHMSID         *string `json:"nihms_id"`
	DOI             *string `json:"doi"`
	AuthorName      *string `json:"author_name"`
	AuthorID        *string `json:"author_id"`
}

// AuthorInterest is the curated interest profile of one author, imported
// from authors_scientific_interests.csv. The list columns keep the raw
// source text.
type AuthorInterest struct {
	ID             int     `json:"id"`
	AuthorID       string  `json:"author_id"`
	AuthorName     *string `json:"author_name"`
	InterestsList  *string `json:"interests_list"`
	KeywordsList   *string `json:"keywords_list"`
	InterestsCount *int    `json:"interests_count"`
	ArticlesCount  *int    `json:"articles_count"`
	MainInterest   *string `json:"main_interest"`
	Cluster        *int    `json:"cluster"`
}

// UserPublication is a publication attached to a registered user.
type UserPublication struct {
	ID              int     `json:"id"`
	UserID          int     `json:"user_id"`
	Title           string  `json:"title"`
	Coauthors       *string `json:"coauthors"`
	Citations       *string `json:"citations"`
	Journal         *string `json:"journal"`
	PublicationYear *string `json:"publication_year"`
	AuthorName      *string `json:"author_name"`
}

// SearchResponse is returned by GET /api/v1/search. AuthorInterests holds
// the interest rows of the matched authors.
type SearchResponse struct {
	RegisteredUsers     []User           `json:"registered_users"`
	UnregisteredAuthors []Author         `json:"unregistered_authors"`
	AuthorInterests     []AuthorInterest `json:"author_interests"`
}

// UpdateInterestsRequest is the body of PUT /api/v1/users/interests.
type UpdateInterestsRequest struct {
	Login         string   `json:"login" validate:"required,notblank,min=3,max=255"`
	InterestsList []string `json:"interests_list" validate:"required,max=100,dive,notblank,nocontrol,max=255"`
}

// ImportResult reports a CSV import into one table.
type ImportResult struct {
	Table      string `json:"table"`
	Rows       int    `json:"rows"`
	Imported   int    `json:"imported"`
	Skipped    int    `json:"skipped"`
	Duplicates int    `json:"duplicates"`
	DurationMS int64  `json:"duration_ms"`
}
