package config

import "errors"

// ErrUnknownProfile is returned when a requested profile is not defined in
// the config file.
var ErrUnknownProfile = errors.New("unknown profile")
