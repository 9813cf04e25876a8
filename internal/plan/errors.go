package plan

import "errors"

var (
	// ErrSamePath indicates source and destination are the same path.
	ErrSamePath = errors.New("source and destination must differ")

	// ErrInvalidOption indicates a conversion option failed validation.
	// Option validation is the only non-path way plan construction fails.
	ErrInvalidOption = errors.New("invalid option")
)
