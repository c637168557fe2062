package check

import (
	"context"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Resolver interface {
	Catalog() domain.Catalog
	Get(ctx context.Context, selector domain.Selector, parsed bool) (domain.Schema, error)
}

type Compiler interface {
	Compile(ctx context.Context, name string, schema []byte) error
}
