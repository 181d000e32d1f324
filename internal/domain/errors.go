package domain

import "errors"

// ErrConfiguration marks a setup defect: a malformed route, a non-positive
// yield ratio, an inverted date range. It is surfaced to the caller
// immediately and never retried.
var ErrConfiguration = errors.New("configuration error")
