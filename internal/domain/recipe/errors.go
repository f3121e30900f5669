package recipe

import "errors"

// Domain validation errors
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 255 characters")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidAuthor   = errors.New("author id is required")
)
