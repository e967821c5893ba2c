package domain

import "errors"

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidID     = errors.New("invalid link id")
	ErrUnknownIndex  = errors.New("unknown index")
	ErrUnknownAction = errors.New("unknown action")
)
