package spaceschemasdk

import (
	"context"
	"fmt"
	"strings"

	catalogapp "github.com/osvaldoandrade/spaceschema/internal/app/catalog"
	resolverapp "github.com/osvaldoandrade/spaceschema/internal/app/resolver"
	"github.com/osvaldoandrade/spaceschema/internal/domain"
	"github.com/osvaldoandrade/spaceschema/internal/infra/filesystem"
	"github.com/osvaldoandrade/spaceschema/internal/infra/gitsource"
	"github.com/osvaldoandrade/spaceschema/internal/infra/jsoncodec"
	"github.com/osvaldoandrade/spaceschema/internal/infra/schemacache"
	"github.com/osvaldoandrade/spaceschema/internal/infra/telemetry"
)

type schemaSource interface {
	catalogapp.Lister
	resolverapp.SchemaSource
}

// Client serves one scanned schema catalog. The directory is listed once in
// Open; later lookups only read files.
type Client struct {
	cfg      Config
	catalog  domain.Catalog
	resolver *resolverapp.Service
	cache    *schemacache.Cache
	codec    jsoncodec.Codec
	revision string
}

// Open scans the configured source and returns a ready client.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	source, revision, err := openSource(ctx, normalized)
	if err != nil {
		return nil, err
	}

	catalog, err := catalogapp.NewService(source).Scan(ctx, normalized.Dir, catalogapp.ScanOptions{Strict: normalized.Strict})
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewLookupMetrics(normalized.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("create lookup metrics: %w", err)
	}

	cache := schemacache.New()
	codec := jsoncodec.Codec{}
	var recorder resolverapp.Metrics
	if metrics != nil {
		recorder = metrics
	}

	return &Client{
		cfg:      normalized,
		catalog:  catalog,
		resolver: resolverapp.NewService(catalog, source, cache, codec, recorder),
		cache:    cache,
		codec:    codec,
		revision: revision,
	}, nil
}

func openSource(ctx context.Context, cfg Config) (schemaSource, string, error) {
	if cfg.Source != SourceGit {
		return filesystem.SchemaSource{}, "", nil
	}
	source := gitsource.New(cfg.Git.RepoPath, cfg.Git.Revision)
	revision, err := source.Commit(ctx)
	if err != nil {
		return nil, "", err
	}
	return source, revision, nil
}

// Close releases client resources. It is safe to call more than once.
func (c *Client) Close() error {
	return nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// Revision is the commit the git source pinned, or empty for the filesystem.
func (c *Client) Revision() string {
	return c.revision
}

func (c *Client) StableVersion() int {
	return c.resolver.StableVersion()
}

func (c *Client) LatestVersion() (int, error) {
	return c.resolver.LatestVersion()
}

func (c *Client) DraftVersion() int {
	return c.resolver.DraftVersion()
}

func (c *Client) Versions() []int {
	return c.resolver.Versions()
}

func (c *Client) VersionStrings() []string {
	return c.resolver.VersionStrings()
}

func (c *Client) IsDraftVersion(version int) bool {
	return c.resolver.IsDraftVersion(version)
}

// Entries describes every catalogued version in ascending order.
func (c *Client) Entries() []Entry {
	entries := c.catalog.Entries()
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Entry{
			Version:  entry.Version,
			Label:    domain.VersionLabel(entry.Version),
			FileName: entry.FileName,
			Size:     entry.Size,
			Draft:    c.catalog.IsDraft(entry.Version),
			Stable:   entry.Version == c.catalog.Stable(),
		})
	}
	return out
}

// Get resolves selector ("stable", "latest", "13" or "0.13") and returns the
// schema. Unknown aliases resolve to version 0.
func (c *Client) Get(ctx context.Context, selector string, parsed bool) (Schema, error) {
	sel, err := parseSelector(selector)
	if err != nil {
		return Schema{}, err
	}
	return c.get(ctx, sel, parsed)
}

func (c *Client) GetVersion(ctx context.Context, version int, parsed bool) (Schema, error) {
	return c.get(ctx, domain.VersionSelector(version), parsed)
}

// Canonical returns the RFC 8785 form of the selected schema.
func (c *Client) Canonical(ctx context.Context, selector string) ([]byte, error) {
	schema, err := c.Get(ctx, selector, true)
	if err != nil {
		return nil, err
	}
	return c.codec.Canonicalize(ctx, schema.Raw)
}

// CachedVersions reports how many versions have been loaded so far.
func (c *Client) CachedVersions() int {
	return c.cache.Len()
}

func (c *Client) get(ctx context.Context, selector domain.Selector, parsed bool) (Schema, error) {
	schema, err := c.resolver.Get(ctx, selector, parsed)
	if err != nil {
		return Schema{}, err
	}
	return Schema{
		Version:  schema.Version,
		Label:    schema.Label(),
		FileName: schema.FileName,
		Draft:    schema.Draft,
		Raw:      schema.Raw,
		Value:    schema.Value,
	}, nil
}

func parseSelector(value string) (domain.Selector, error) {
	if strings.TrimSpace(value) == "" {
		return domain.Selector{}, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	return domain.ParseSelector(value), nil
}
