package index

import "errors"

var ErrMissingDependencies = errors.New("missing dependencies")
