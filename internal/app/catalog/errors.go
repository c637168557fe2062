package catalog

import "errors"

var ErrSchemaDirRequired = errors.New("schema directory is required")
