package property

import "errors"

var (
	ErrNotFound         = errors.New("property not found")
	ErrDuplicateSlug    = errors.New("slug already in use")
	ErrInvalidReference = errors.New("referenced record does not exist")
)
