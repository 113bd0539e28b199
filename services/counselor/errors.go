package counselor

import "errors"

var (
	ErrProfileNotFound = errors.New("counselor profile not found")
	ErrNotBookable     = errors.New("counselor is not active or not yet approved")
)
