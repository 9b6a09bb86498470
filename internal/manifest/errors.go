package manifest

import "errors"

// ErrMalformed is returned when a manifest is missing fields or is internally inconsistent.
var ErrMalformed = errors.New("malformed manifest")
