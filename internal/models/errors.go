package models

import "errors"

// Domain errors shared by repositories and handlers. Handlers map these to
// HTTP status codes; repositories translate storage failures (duplicate
// key, missing row) into them so callers never match on driver errors.
var (
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrMissingPayloadRef   = errors.New("activity payload reference missing or ambiguous")
	ErrInvalidLikeTarget   = errors.New("invalid like target type")
	ErrInvalidComment      = errors.New("comment text must be between 1 and 1000 characters")
	ErrInvalidTimeframe    = errors.New("timeframe must be one of 24h, 7d, 30d")
	ErrAlreadyLiked        = errors.New("already liked")
	ErrNotLiked            = errors.New("not liked")
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("not the owner of this record")
	ErrDuplicateListItem   = errors.New("media already in list")
)
