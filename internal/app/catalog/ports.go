package catalog

import (
	"context"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Lister interface {
	ListSchemaFiles(ctx context.Context, dir string) ([]domain.SchemaFile, error)
}
