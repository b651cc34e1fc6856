// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

/*
Package validation validates API request structs with go-playground/validator.

A single validator instance is shared by all handlers; it caches struct
metadata and is safe for concurrent use. Errors name fields by their json
tag, and slice elements carry their index:

	type RecommendRequest struct {
	    Interests []string `json:"interests" validate:"required,min=1,dive,notblank"`
	}

	// {"interests": ["ml", " "]} fails with field "interests[1]"

Custom tags:

  - notblank: string is not empty after trimming whitespace
  - nocontrol: string contains no control characters

ValidateStruct returns a *RequestValidationError. ToAPIError turns it into
the VALIDATION_ERROR body the API returns with status 400.
*/
package validation
