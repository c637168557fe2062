package index

import (
	"context"
	"errors"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type ExportService struct {
	resolver Resolver
	store    Store
	hasher   Hasher
	clock    Clock
	idGen    IDGenerator
}

func NewExportService(resolver Resolver, store Store, hasher Hasher, clock Clock, idGen IDGenerator) *ExportService {
	return &ExportService{
		resolver: resolver,
		store:    store,
		hasher:   hasher,
		clock:    clock,
		idGen:    idGen,
	}
}

// Export replaces the stored version rows with the current catalog and
// records the run, in one transaction.
func (s *ExportService) Export(ctx context.Context) (ExportResult, error) {
	if err := s.ensureDeps(); err != nil {
		return ExportResult{}, err
	}

	catalog := s.resolver.Catalog()
	records, missing, err := s.buildRecords(ctx, catalog)
	if err != nil {
		return ExportResult{}, err
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return ExportResult{}, err
	}
	run := Run{
		RunID:         runID,
		Root:          catalog.Root(),
		ScannedAt:     s.clock.Now().UTC(),
		Versions:      catalog.Len(),
		DraftVersion:  catalog.DraftVersion(),
		StableVersion: catalog.Stable(),
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := tx.ReplaceVersions(ctx, records); err != nil {
		return ExportResult{}, err
	}
	if err := tx.InsertRun(ctx, run); err != nil {
		return ExportResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExportResult{}, err
	}
	committed = true

	return ExportResult{Run: run, Records: records, Missing: missing}, nil
}

func (s *ExportService) buildRecords(ctx context.Context, catalog domain.Catalog) ([]VersionRecord, int, error) {
	latest, err := catalog.Latest()
	hasLatest := err == nil

	entries := catalog.Entries()
	records := make([]VersionRecord, 0, len(entries))
	missing := 0
	for _, entry := range entries {
		record := VersionRecord{
			Version:  entry.Version,
			Label:    domain.VersionLabel(entry.Version),
			FileName: entry.FileName,
			Size:     entry.Size,
			Draft:    catalog.IsDraft(entry.Version),
			Stable:   entry.Version == catalog.Stable(),
			Latest:   hasLatest && entry.Version == latest,
		}

		schema, err := s.resolver.Get(ctx, domain.VersionSelector(entry.Version), false)
		switch {
		case err == nil:
			record.SHA256 = s.hasher.Digest(schema.Raw)
		case errors.Is(err, domain.ErrSchemaNotFound):
			missing++
		default:
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, missing, nil
}

func (s *ExportService) ensureDeps() error {
	if s.resolver == nil || s.store == nil {
		return ErrMissingDependencies
	}
	if s.hasher == nil || s.clock == nil || s.idGen == nil {
		return ErrMissingDependencies
	}
	return nil
}
