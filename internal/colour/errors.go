package colour

import "errors"

// ErrInvalidArgument is returned for configuration errors such as a palette size below
// one, an empty colour set or a ragged matrix. These are never transient.
var ErrInvalidArgument = errors.New("invalid argument")
