package spaceschemasdk

import (
	"errors"

	checkapp "github.com/osvaldoandrade/spaceschema/internal/app/check"
	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

var (
	ErrDirRequired     = errors.New("spaceschema-sdk: schema dir required")
	ErrGitRepoRequired = errors.New("spaceschema-sdk: git repo path required")
	ErrInvalidSource   = errors.New("spaceschema-sdk: unknown schema source")
	ErrIndexPath       = errors.New("spaceschema-sdk: index db path required")
)

// Lookup and scan failures match these with errors.Is.
var (
	ErrNotFound         = domain.ErrSchemaNotFound
	ErrInvalidJSON      = domain.ErrSchemaInvalidJSON
	ErrEmptyVersionSet  = domain.ErrEmptyVersionSet
	ErrMalformedVersion = domain.ErrMalformedVersion
	ErrIO               = domain.ErrSchemaIO
	ErrInvalidSelector  = domain.ErrInvalidSelector
	ErrUnsupportedDraft = checkapp.ErrUnsupportedDraft
)
