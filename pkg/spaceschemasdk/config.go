package spaceschemasdk

import (
	"path/filepath"
	"strings"

	"github.com/osvaldoandrade/spaceschema/internal/app/paths"
	"go.opentelemetry.io/otel/metric"
)

type Source string

const (
	SourceFilesystem Source = "fs"
	SourceGit        Source = "git"
)

// Config defines where schemas are read from and how the catalog is scanned.
type Config struct {
	// Dir is the schema directory. With SourceGit it is a path inside the
	// commit tree and defaults to the repository root.
	Dir    string
	Source Source
	Git    GitConfig
	// Strict rejects file names whose version part is not an integer.
	Strict bool
	// Draft selects the JSON Schema draft used by Check. Empty keeps the
	// compiler default.
	Draft         string
	Index         IndexConfig
	MeterProvider metric.MeterProvider
}

type GitConfig struct {
	RepoPath string
	Revision string
}

// IndexConfig configures the SQLite catalog export.
type IndexConfig struct {
	DBPath string
	Fast   bool
}

// DefaultConfig reads released and draft schemas from dir on the local
// filesystem.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:    dir,
		Source: SourceFilesystem,
		Index: IndexConfig{
			DBPath: filepath.Join(dir, defaultIndexFile),
			Fast:   true,
		},
	}
}

const (
	defaultIndexFile = "spaceschema.db"
	defaultRevision  = "HEAD"
)

func normalizeConfig(cfg Config) (Config, error) {
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Source == "" {
		cfg.Source = SourceFilesystem
	}

	switch cfg.Source {
	case SourceFilesystem:
		if cfg.Dir == "" {
			return cfg, ErrDirRequired
		}
		dir, err := paths.Absolute(cfg.Dir)
		if err != nil {
			return cfg, err
		}
		cfg.Dir = dir
	case SourceGit:
		if strings.TrimSpace(cfg.Git.RepoPath) == "" {
			return cfg, ErrGitRepoRequired
		}
		repoPath, err := paths.Absolute(cfg.Git.RepoPath)
		if err != nil {
			return cfg, err
		}
		cfg.Git.RepoPath = repoPath
		if cfg.Dir == "" {
			cfg.Dir = "."
		}
		if strings.TrimSpace(cfg.Git.Revision) == "" {
			cfg.Git.Revision = defaultRevision
		}
	default:
		return cfg, ErrInvalidSource
	}
	return cfg, nil
}
