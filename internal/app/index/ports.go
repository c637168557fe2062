package index

import (
	"context"
	"time"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Resolver interface {
	Catalog() domain.Catalog
	Get(ctx context.Context, selector domain.Selector, parsed bool) (domain.Schema, error)
}

type Store interface {
	Begin(ctx context.Context) (StoreTx, error)
	ListVersions(ctx context.Context) ([]VersionRecord, error)
	LatestRun(ctx context.Context) (Run, bool, error)
}

type StoreTx interface {
	ReplaceVersions(ctx context.Context, records []VersionRecord) error
	InsertRun(ctx context.Context, run Run) error
	Commit() error
	Rollback() error
}

type Hasher interface {
	Digest(data []byte) string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() (string, error)
}
