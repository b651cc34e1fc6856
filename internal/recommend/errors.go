// ScholarMatch - Research Collaboration Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scholarmatch

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/scholarmatch/internal/recommend/algorithms"
)

// Sentinel errors for the recommendation engine.
var (
	// ErrModelNotLoaded is returned by every engine operation when no model
	// artifact set was loaded. It is the same value the algorithms package
	// returns for an unfitted vectorizer or unbuilt index.
	ErrModelNotLoaded = algorithms.ErrModelNotLoaded

	// ErrInvalidInput is returned for requests that can never succeed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArtifactLoad is returned when a model artifact set cannot be loaded.
	ErrArtifactLoad = errors.New("artifact load failed")
)

// InputError describes a rejected request field.
type InputError struct {
	Field  string
	Reason string
}

// NewInputError creates an InputError for the given field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// ArtifactLoadError records which artifact failed to load and why.
type ArtifactLoadError struct {
	Path string
	Err  error
}

// NewArtifactLoadError wraps err for the artifact at path.
func NewArtifactLoadError(path string, err error) *ArtifactLoadError {
	return &ArtifactLoadError{Path: path, Err: err}
}

// Error implements the error interface.
func (e *ArtifactLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load artifact %s", e.Path)
	}
	return fmt.Sprintf("load artifact %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrArtifactLoad and the underlying cause to errors.Is.
func (e *ArtifactLoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrArtifactLoad}
	}
	return []error{ErrArtifactLoad, e.Err}
}
