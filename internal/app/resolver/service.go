package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

// Service resolves selectors against a scanned catalog and serves schema
// content through the cache. The catalog is never re-scanned.
type Service struct {
	catalog domain.Catalog
	source  SchemaSource
	cache   Cache
	decoder Decoder
	metrics Metrics
}

func NewService(catalog domain.Catalog, source SchemaSource, cache Cache, decoder Decoder, metrics Metrics) *Service {
	return &Service{
		catalog: catalog,
		source:  source,
		cache:   cache,
		decoder: decoder,
		metrics: metrics,
	}
}

func (s *Service) Catalog() domain.Catalog {
	return s.catalog
}

func (s *Service) StableVersion() int {
	return s.catalog.Stable()
}

func (s *Service) LatestVersion() (int, error) {
	return s.catalog.Latest()
}

func (s *Service) DraftVersion() int {
	return s.catalog.DraftVersion()
}

func (s *Service) Versions() []int {
	return s.catalog.Versions()
}

func (s *Service) VersionStrings() []string {
	return s.catalog.VersionStrings()
}

func (s *Service) IsDraftVersion(version int) bool {
	return s.catalog.IsDraft(version)
}

// Resolve maps a selector to a concrete version. Unknown aliases map to 0.
func (s *Service) Resolve(selector domain.Selector) (int, error) {
	if !selector.IsAlias() {
		return selector.Version, nil
	}
	switch selector.Alias {
	case domain.AliasStable:
		return s.catalog.Stable(), nil
	case domain.AliasLatest:
		return s.catalog.Latest()
	default:
		return 0, nil
	}
}

// Get returns the schema for selector. With parsed set, Value holds the
// decoded document.
func (s *Service) Get(ctx context.Context, selector domain.Selector, parsed bool) (domain.Schema, error) {
	version, err := s.Resolve(selector)
	if err != nil {
		return domain.Schema{}, err
	}

	raw, err := s.load(ctx, version)
	if err != nil {
		return domain.Schema{}, err
	}

	schema := domain.Schema{
		Version:  version,
		FileName: s.catalog.FileName(version),
		Draft:    s.catalog.IsDraft(version),
		Raw:      raw,
	}
	if !parsed {
		return schema, nil
	}

	value, err := s.decoder.Decode(raw)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("%w: %s: %w", domain.ErrSchemaInvalidJSON, schema.FileName, err)
	}
	schema.Value = value
	return schema, nil
}

func (s *Service) load(ctx context.Context, version int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, hit, err := s.cache.Load(ctx, version, func(ctx context.Context) ([]byte, error) {
		return s.source.ReadSchema(ctx, s.catalog.Root(), s.catalog.FileName(version))
	})
	if err != nil {
		if errors.Is(err, domain.ErrSchemaNotFound) {
			s.record(ctx, version, OutcomeNotFound)
			return nil, err
		}
		s.record(ctx, version, OutcomeError)
		if errors.Is(err, domain.ErrSchemaIO) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSchemaIO, err)
	}

	if hit {
		s.record(ctx, version, OutcomeHit)
	} else {
		s.record(ctx, version, OutcomeLoaded)
	}
	return bytes.Clone(raw), nil
}

func (s *Service) record(ctx context.Context, version int, outcome Outcome) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordLookup(ctx, version, outcome)
}
