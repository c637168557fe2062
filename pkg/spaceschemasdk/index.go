package spaceschemasdk

import (
	"context"
	"strings"

	indexapp "github.com/osvaldoandrade/spaceschema/internal/app/index"
	"github.com/osvaldoandrade/spaceschema/internal/infra/hash"
	"github.com/osvaldoandrade/spaceschema/internal/infra/ident"
	"github.com/osvaldoandrade/spaceschema/internal/infra/sqliteindex"
	"github.com/osvaldoandrade/spaceschema/internal/platform"
)

// ExportIndex writes the catalog to the SQLite database at Index.DBPath,
// replacing the rows of any earlier export.
func (c *Client) ExportIndex(ctx context.Context) (IndexExport, error) {
	store, err := c.openIndex()
	if err != nil {
		return IndexExport{}, err
	}
	defer store.Close()

	clock := platform.RealClock{}
	service := indexapp.NewExportService(
		c.resolver,
		store,
		hash.SHA256{},
		clock,
		ident.NewULIDGeneratorWithClock(clock.Now),
	)
	result, err := service.Export(ctx)
	if err != nil {
		return IndexExport{}, err
	}

	return IndexExport{
		DBPath:   c.cfg.Index.DBPath,
		Run:      toIndexRun(result.Run),
		Versions: toIndexVersions(result.Records),
		Missing:  result.Missing,
	}, nil
}

// ShowIndex reads back the last export.
func (c *Client) ShowIndex(ctx context.Context) (IndexSnapshot, error) {
	store, err := c.openIndex()
	if err != nil {
		return IndexSnapshot{}, err
	}
	defer store.Close()

	snapshot, err := indexapp.NewShowService(store).Show(ctx)
	if err != nil {
		return IndexSnapshot{}, err
	}
	return IndexSnapshot{
		DBPath:   c.cfg.Index.DBPath,
		Run:      toIndexRun(snapshot.Run),
		HasRun:   snapshot.HasRun,
		Versions: toIndexVersions(snapshot.Records),
	}, nil
}

func (c *Client) openIndex() (*sqliteindex.Store, error) {
	if strings.TrimSpace(c.cfg.Index.DBPath) == "" {
		return nil, ErrIndexPath
	}
	return sqliteindex.OpenWithOptions(c.cfg.Index.DBPath, sqliteindex.OpenOptions{Fast: c.cfg.Index.Fast})
}

func toIndexRun(run indexapp.Run) IndexRun {
	return IndexRun{
		RunID:         run.RunID,
		Root:          run.Root,
		ScannedAt:     run.ScannedAt,
		Versions:      run.Versions,
		DraftVersion:  run.DraftVersion,
		StableVersion: run.StableVersion,
	}
}

func toIndexVersions(records []indexapp.VersionRecord) []IndexVersion {
	out := make([]IndexVersion, 0, len(records))
	for _, record := range records {
		out = append(out, IndexVersion{
			Version:  record.Version,
			Label:    record.Label,
			FileName: record.FileName,
			Size:     record.Size,
			SHA256:   record.SHA256,
			Draft:    record.Draft,
			Stable:   record.Stable,
			Latest:   record.Latest,
		})
	}
	return out
}
