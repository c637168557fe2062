package check

import "errors"

var ErrInvalidSchema = errors.New("invalid json schema")
var ErrUnsupportedDraft = errors.New("unsupported json schema draft")
