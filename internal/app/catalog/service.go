package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Service struct {
	lister Lister
}

func NewService(lister Lister) *Service {
	return &Service{lister: lister}
}

// Scan lists dir once and builds the version catalog. Candidates are visited
// in lexical order, so the first draft-marked file is deterministic.
func (s *Service) Scan(ctx context.Context, dir string, opts ScanOptions) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return domain.Catalog{}, ErrSchemaDirRequired
	}

	files, err := s.lister.ListSchemaFiles(ctx, dir)
	if err != nil {
		if errors.Is(err, domain.ErrSchemaIO) {
			return domain.Catalog{}, err
		}
		return domain.Catalog{}, fmt.Errorf("%w: list %s: %w", domain.ErrSchemaIO, dir, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	entries := make(map[int]domain.CatalogEntry)
	draftSeen := false
	for _, file := range files {
		name := path.Base(file.Name)
		if !domain.IsSchemaFileName(name) {
			continue
		}

		normalized := name
		isDraft := domain.IsDraftFileName(name)
		if isDraft {
			if draftSeen || file.Size == 0 {
				continue
			}
			draftSeen = true
			normalized = domain.StripDraftMarker(name)
		}

		version, err := domain.ParseVersion(normalized)
		if err != nil {
			if opts.Strict {
				return domain.Catalog{}, err
			}
			version = 0
		}

		// The draft keeps its own file even when a released file shares the version.
		if existing, ok := entries[version]; ok && existing.Draft {
			continue
		}
		entries[version] = domain.CatalogEntry{
			Version:  version,
			FileName: name,
			Size:     file.Size,
			Draft:    isDraft,
		}
	}

	sorted := make([]domain.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		sorted = append(sorted, entry)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	return domain.NewCatalog(dir, sorted, stableVersion(sorted, draftSeen)), nil
}

func stableVersion(entries []domain.CatalogEntry, draftSeen bool) int {
	count := len(entries)
	switch {
	case count == 0:
		return 0
	case draftSeen && count > 1:
		return entries[count-2].Version
	default:
		return entries[count-1].Version
	}
}
