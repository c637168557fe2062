package domain

import "errors"

var ErrSchemaNotFound = errors.New("schema not found")
var ErrSchemaInvalidJSON = errors.New("schema is not valid JSON")
var ErrSchemaIO = errors.New("schema read failed")
var ErrEmptyVersionSet = errors.New("no schema versions available")
var ErrMalformedVersion = errors.New("malformed schema version")
var ErrInvalidSelector = errors.New("invalid schema selector")
