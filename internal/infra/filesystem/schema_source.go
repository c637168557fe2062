package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

// SchemaSource reads schema files from a local directory.
type SchemaSource struct{}

func (SchemaSource) ListSchemaFiles(ctx context.Context, dir string) ([]domain.SchemaFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %w", domain.ErrSchemaIO, dir, err)
	}

	files := make([]domain.SchemaFile, 0, len(entries))
	for _, entry := range entries {
		if !domain.IsSchemaFileName(entry.Name()) {
			continue
		}
		// Stat follows symlinks so linked schema files are listed with their target size.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrSchemaIO, entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, domain.SchemaFile{Name: entry.Name(), Size: info.Size()})
	}
	return files, nil
}

func (SchemaSource) ReadSchema(ctx context.Context, dir, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("%w: read schema %s: %w", domain.ErrSchemaIO, path, err)
	}
	return data, nil
}
