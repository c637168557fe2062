package resolver

import "context"

type SchemaSource interface {
	ReadSchema(ctx context.Context, dir, name string) ([]byte, error)
}

// Cache memoizes raw schema content by resolved version. Concurrent misses for
// one version share a single fill; failed fills are not stored.
type Cache interface {
	Load(ctx context.Context, version int, fill func(context.Context) ([]byte, error)) ([]byte, bool, error)
}

type Decoder interface {
	Decode(data []byte) (any, error)
}

type Metrics interface {
	RecordLookup(ctx context.Context, version int, outcome Outcome)
}
