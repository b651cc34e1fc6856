// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package models defines the persisted rows and API payloads shared by the
database and api packages.

Database rows:

  - User: registered user, interests stored as one comma-separated string
  - Author: one publication row of an unregistered author
  - AuthorInterest: curated interest profile of an author
  - UserPublication: publication attached to a registered user

API payloads:

  - APIResponse, Metadata, APIError: envelope of the /api/v1 endpoints
  - SearchResponse, UpdateInterestsRequest
  - ScientistProfileResponse and its parts

Nullable columns are pointers and encode as JSON null. The package imports
nothing from the rest of the module.
*/
package models
