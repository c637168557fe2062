package diff

import (
	"context"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Resolver interface {
	Get(ctx context.Context, selector domain.Selector, parsed bool) (domain.Schema, error)
}

type Differ interface {
	MergePatch(ctx context.Context, original, modified []byte) ([]byte, error)
}
