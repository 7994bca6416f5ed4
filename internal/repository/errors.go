// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to distinguish
// between "the row is not there" and a failing database.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue id has no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id has no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrCategoryNotFound is returned when a category id has no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrQuestionNotFound is returned when a question id has no row.  The
// trivia delete handler turns it into 422.
var ErrQuestionNotFound = errors.New("question not found")

// ErrInvalidReference is returned when a write points at a parent row that
// does not exist (a show for a missing venue, a question for a missing
// category).  Handlers translate it into 400.
var ErrInvalidReference = errors.New("invalid reference")
